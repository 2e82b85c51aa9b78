package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StarSpin/internal/domain/models"
	domrepo "StarSpin/internal/domain/repository"
)

// Proc is the minimal result processor interface the buffer needs.
type Proc interface {
	Process(ctx context.Context, res *models.RotationResult) error
}

// ResultBuffer sits between the analysis pipeline and the result backend.
// It validates results and, when the backend is briefly unavailable,
// buffers them for background retry instead of failing the target. A
// target buffered here counts as processed; losing it on overflow is
// recorded, not fatal.
type ResultBuffer struct {
	proc    Proc
	metrics domrepo.Metrics
	bufSize int
	bufCh   chan *models.RotationResult
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	mu      sync.Mutex
}

type BufferOption func(*ResultBuffer)

// WithBufferSize sets the retry buffer capacity.
func WithBufferSize(n int) BufferOption {
	return func(b *ResultBuffer) {
		if n > 0 {
			b.bufSize = n
		}
	}
}

// NewResultBuffer creates a buffering stage in front of proc.
func NewResultBuffer(proc Proc, metrics domrepo.Metrics, opts ...BufferOption) *ResultBuffer {
	b := &ResultBuffer{
		proc:    proc,
		metrics: metrics,
		bufSize: 1000,
		bufCh:   make(chan *models.RotationResult, 1000),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.bufSize != cap(b.bufCh) {
		b.bufCh = make(chan *models.RotationResult, b.bufSize)
	}
	return b
}

// Start launches background flushing of buffered results.
func (b *ResultBuffer) Start(ctx context.Context) {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	go func() {
		defer close(b.doneCh)
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-b.stopCh:
				return
			case res := <-b.bufCh:
				if res == nil {
					continue
				}
				if err := b.proc.Process(ctx, res); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					b.metrics.RecordError("buffer_flush")
					// Requeue before waiting so a concurrent Stop still
					// sees the result in the buffer and can drain it.
					select {
					case b.bufCh <- res:
					default:
						b.metrics.RecordError("buffer_drop")
					}
					select {
					case <-b.stopCh:
						return
					case <-time.After(backoff):
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing and makes a final delivery attempt
// for anything still buffered. A result acknowledged by Process must not
// disappear at shutdown: the caller has already checkpointed its target.
func (b *ResultBuffer) Stop() {
	b.mu.Lock()
	started := b.started
	b.started = false
	b.mu.Unlock()
	if started {
		close(b.stopCh)
		<-b.doneCh
	}
	b.drain()
}

func (b *ResultBuffer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for {
		select {
		case res := <-b.bufCh:
			if res == nil {
				continue
			}
			if err := b.proc.Process(ctx, res); err != nil {
				b.metrics.RecordError("buffer_drain")
			}
		default:
			return
		}
	}
}

// Process validates and forwards a result, buffering it on backend errors.
func (b *ResultBuffer) Process(ctx context.Context, res *models.RotationResult) error {
	start := time.Now()
	if err := validateResult(res); err != nil {
		b.metrics.RecordError("buffer_validate")
		return err
	}

	if err := b.proc.Process(ctx, res); err != nil {
		b.metrics.RecordError("buffer_process")
		// buffer non-blocking
		select {
		case b.bufCh <- res:
			b.metrics.RecordLatency("buffer_depth", float64(len(b.bufCh)))
			return nil
		default:
			b.metrics.RecordError("buffer_full")
		}
		return fmt.Errorf("result backend: %w", err)
	}
	b.metrics.RecordLatency("buffer_process", time.Since(start).Seconds())
	return nil
}

func validateResult(res *models.RotationResult) error {
	if res == nil {
		return fmt.Errorf("result nil")
	}
	if res.Target == "" {
		return fmt.Errorf("target empty")
	}
	if res.Threshold < 0 {
		return fmt.Errorf("negative threshold")
	}
	return nil
}
