package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// DefaultJobTimeout caps how long one day's enrichment may run.
const DefaultJobTimeout = 30 * time.Second

// MergeFunc applies a resolved Patch to the current state. It is expected to
// call Patch.Apply against a fresh read of the day, not the snapshot the
// patch was computed from.
type MergeFunc func(ctx context.Context, p Patch) error

// Dispatcher runs enrichment in the background, one goroutine per submitted
// day snapshot. Jobs for different days never wait on each other. Several
// jobs for the same day may be in flight at once; Patch.Apply drops any leg
// whose stops have moved or changed location since its snapshot, so the
// older result cannot overwrite the newer one.
type Dispatcher struct {
	pipeline *Pipeline
	merge    MergeFunc
	log      *slog.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts a Dispatcher. Call Close to stop it.
func NewDispatcher(p *Pipeline, merge MergeFunc, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		pipeline: p,
		merge:    merge,
		log:      log,
		timeout:  DefaultJobTimeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit schedules enrichment of a snapshot of day, with stay as the
// lodging for its night (nil if none or ambiguous). It returns immediately.
// Submissions after Close are dropped.
func (d *Dispatcher) Submit(day domain.Day, stay *domain.Lodging) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		jobsTotal.WithLabelValues("dropped").Inc()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	snapshot := day.Clone()
	var lodging *domain.Lodging
	if stay != nil {
		l := *stay
		lodging = &l
	}
	go d.run(snapshot, lodging)
}

func (d *Dispatcher) run(day domain.Day, stay *domain.Lodging) {
	defer d.wg.Done()
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	patch, err := d.pipeline.Enrich(ctx, day, stay)
	if err != nil {
		jobsTotal.WithLabelValues("dropped").Inc()
		d.log.DebugContext(ctx, "enrichment abandoned", "day_id", day.ID, "error", err)
		return
	}
	if patch.Empty() {
		jobsTotal.WithLabelValues("empty").Inc()
		return
	}
	if err := d.merge(ctx, patch); err != nil {
		jobsTotal.WithLabelValues("merge_failed").Inc()
		d.log.WarnContext(ctx, "enrichment merge failed", "day_id", day.ID, "error", err)
		return
	}
	jobsTotal.WithLabelValues("merged").Inc()
}

// Wait blocks until every job submitted so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close stops accepting work, cancels jobs in flight and waits for them to
// return. Cancelled jobs merge nothing.
// It is safe to call more than once.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.cancel()
	d.wg.Wait()
	return nil
}
