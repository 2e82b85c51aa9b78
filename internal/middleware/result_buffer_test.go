package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"StarSpin/internal/domain/models"
)

type flakyProc struct {
	mu   sync.Mutex
	fail bool
	seen int
}

func (p *flakyProc) Process(_ context.Context, _ *models.RotationResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("backend down")
	}
	p.seen++
	return nil
}

type countMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func (m *countMetrics) RecordTarget(string)           {}
func (m *countMetrics) RecordLatency(string, float64) {}
func (m *countMetrics) RecordSignificantPeaks(int)    {}
func (m *countMetrics) RecordHarmonic(string)         {}
func (m *countMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errors == nil {
		m.errors = map[string]int{}
	}
	m.errors[kind]++
}

func TestResultBufferRejectsInvalid(t *testing.T) {
	proc := &flakyProc{}
	b := NewResultBuffer(proc, &countMetrics{})

	if err := b.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if err := b.Process(context.Background(), &models.RotationResult{}); err == nil {
		t.Fatalf("expected error for empty target")
	}
	if proc.seen != 0 {
		t.Fatalf("invalid results must not reach the backend")
	}
}

func TestResultBufferForwards(t *testing.T) {
	proc := &flakyProc{}
	b := NewResultBuffer(proc, &countMetrics{})

	err := b.Process(context.Background(), &models.RotationResult{Target: "a"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.seen != 1 {
		t.Fatalf("expected 1 forwarded result, got %d", proc.seen)
	}
}

func TestResultBufferStopDeliversPending(t *testing.T) {
	proc := &flakyProc{fail: true}
	b := NewResultBuffer(proc, &countMetrics{}, WithBufferSize(4))
	b.Start(context.Background())

	// Backend down: the result is buffered and acknowledged, so the
	// caller will checkpoint its target as done.
	if err := b.Process(context.Background(), &models.RotationResult{Target: "a"}); err != nil {
		t.Fatalf("expected buffered result, got %v", err)
	}

	// The backend recovers while the flusher may be mid-backoff. Stop
	// must still hand over everything that was acknowledged.
	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()
	b.Stop()

	proc.mu.Lock()
	seen := proc.seen
	proc.mu.Unlock()
	if seen != 1 {
		t.Fatalf("expected 1 delivered result after stop, got %d", seen)
	}
}

func TestResultBufferAbsorbsBackendError(t *testing.T) {
	proc := &flakyProc{fail: true}
	b := NewResultBuffer(proc, &countMetrics{}, WithBufferSize(2))

	// Buffered, not an error.
	if err := b.Process(context.Background(), &models.RotationResult{Target: "a"}); err != nil {
		t.Fatalf("expected buffered result, got %v", err)
	}
	if err := b.Process(context.Background(), &models.RotationResult{Target: "b"}); err != nil {
		t.Fatalf("expected buffered result, got %v", err)
	}
	// Buffer full: now the error surfaces.
	if err := b.Process(context.Background(), &models.RotationResult{Target: "c"}); err == nil {
		t.Fatalf("expected overflow error")
	}
	if len(b.bufCh) != 2 {
		t.Fatalf("expected 2 buffered results, got %d", len(b.bufCh))
	}
}
