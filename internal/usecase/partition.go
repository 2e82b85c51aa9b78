package usecase

// Partition returns the half-open range [start, end) of a list of n items
// owned by one worker in a fleet of workerCount. Ranges are contiguous and
// cover the list exactly; the first n%workerCount workers take one extra
// item. A single-worker fleet owns everything.
func Partition(workerIndex, workerCount, n int) (start, end int) {
	if workerCount <= 1 || n <= 0 {
		return 0, n
	}
	if workerIndex < 0 || workerIndex >= workerCount {
		return 0, 0
	}

	base := n / workerCount
	rem := n % workerCount

	start = workerIndex*base + min(workerIndex, rem)
	size := base
	if workerIndex < rem {
		size++
	}
	return start, start + size
}
