package usecase

import "testing"

func TestPartitionCoversAll(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 101} {
		for _, workers := range []int{1, 2, 3, 7, 10} {
			covered := 0
			prevEnd := 0
			for w := 0; w < workers; w++ {
				start, end := Partition(w, workers, n)
				if start != prevEnd {
					t.Fatalf("n=%d workers=%d: worker %d starts at %d, expected %d", n, workers, w, start, prevEnd)
				}
				if end < start {
					t.Fatalf("n=%d workers=%d: worker %d has negative range [%d,%d)", n, workers, w, start, end)
				}
				covered += end - start
				prevEnd = end
			}
			if covered != n {
				t.Fatalf("n=%d workers=%d: covered %d items", n, workers, covered)
			}
		}
	}
}

func TestPartitionEvenness(t *testing.T) {
	// 10 items over 3 workers: sizes 4, 3, 3.
	sizes := []int{}
	for w := 0; w < 3; w++ {
		start, end := Partition(w, 3, 10)
		sizes = append(sizes, end-start)
	}
	if sizes[0] != 4 || sizes[1] != 3 || sizes[2] != 3 {
		t.Fatalf("unexpected sizes %v", sizes)
	}
}

func TestPartitionSingleWorker(t *testing.T) {
	start, end := Partition(0, 1, 42)
	if start != 0 || end != 42 {
		t.Fatalf("single worker should own everything, got [%d,%d)", start, end)
	}
}

func TestPartitionOutOfRangeIndex(t *testing.T) {
	start, end := Partition(5, 3, 10)
	if start != end {
		t.Fatalf("out-of-range worker should own nothing, got [%d,%d)", start, end)
	}
}
