package checkpoint

import (
	"context"
	"testing"
)

func TestMemoryStoreMarkAndCheck(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	done, err := s.Done(ctx, "211748286")
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if done {
		t.Fatalf("expected target to be pending")
	}

	if err := s.MarkDone(ctx, "211748286"); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	done, err = s.Done(ctx, "211748286")
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if !done {
		t.Fatalf("expected target to be done")
	}

	done, _ = s.Done(ctx, "211748287")
	if done {
		t.Fatalf("unrelated target should be pending")
	}
}
