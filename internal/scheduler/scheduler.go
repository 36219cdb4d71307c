// Package scheduler re-runs an evaluation on a cadence tied to the unit it
// last produced: once a second while seconds are shown, once a minute while
// minutes are shown, and so on.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/relative"
	"github.com/zjrosen/reltime/internal/tracing"
)

// Sentinel errors returned by Start.
var (
	ErrAlreadyStarted = errors.New("scheduler already started")
	ErrStopped        = errors.New("scheduler stopped")
)

// Evaluator is run on every tick. It reports the unit now displayed, or
// false when there is nothing to refresh, in which case no trigger is armed.
type Evaluator interface {
	Tick(ctx context.Context, now time.Time) (relative.Unit, bool)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, now time.Time) (relative.Unit, bool)

// Tick calls f.
func (f EvaluatorFunc) Tick(ctx context.Context, now time.Time) (relative.Unit, bool) {
	return f(ctx, now)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used for "now" and for tickers.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTracer sets the tracer used for tick spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Scheduler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithID sets the identifier attached to logs and spans.
func WithID(id string) Option {
	return func(s *Scheduler) {
		if id != "" {
			s.id = id
		}
	}
}

type request struct {
	eval  Evaluator // nil for a plain refresh
	rearm bool
	ack   chan struct{}
}

// Scheduler owns a single repeating ticker. All ticks run sequentially on
// one loop goroutine; at most one ticker is armed at any time.
type Scheduler struct {
	id     string
	clock  clockwork.Clock
	tracer trace.Tracer

	requests chan request
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	eval    Evaluator
	started bool
	ticker  clockwork.Ticker
	unit    relative.Unit
	armed   bool

	// Bookkeeping for tests.
	arms      int
	active    int
	maxActive int
}

// New creates a stopped scheduler for eval.
func New(eval Evaluator, opts ...Option) *Scheduler {
	s := &Scheduler{
		id:       uuid.NewString(),
		clock:    clockwork.NewRealClock(),
		tracer:   otel.Tracer("github.com/zjrosen/reltime/internal/scheduler"),
		eval:     eval,
		requests: make(chan request),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the scheduler's identifier.
func (s *Scheduler) ID() string {
	return s.id
}

// Start runs the first tick synchronously, arms the ticker and launches the
// loop. The loop ends on Stop or when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	select {
	case <-s.stop:
		s.mu.Unlock()
		return ErrStopped
	default:
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	s.tick(ctx, s.clock.Now(), false)
	go s.loop(ctx)
	return nil
}

// Refresh runs an immediate tick. The ticker is only replaced if the unit
// changed. It is a no-op on a stopped scheduler.
func (s *Scheduler) Refresh() {
	s.send(request{})
}

// Reconfigure swaps the evaluator, runs an immediate tick and re-arms the
// ticker from scratch. Before Start it only swaps the evaluator.
func (s *Scheduler) Reconfigure(eval Evaluator) {
	if eval == nil {
		return
	}
	s.mu.Lock()
	started := s.started
	if !started {
		s.eval = eval
	}
	s.mu.Unlock()
	if started {
		s.send(request{eval: eval, rearm: true})
	}
}

func (s *Scheduler) send(req request) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}

	req.ack = make(chan struct{})
	select {
	case s.requests <- req:
	case <-s.done:
		return
	case <-s.stop:
		return
	}
	select {
	case <-req.ack:
	case <-s.done:
	}
}

// Stop cancels the active ticker and ends the loop. It is safe to call more
// than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		started := s.started
		close(s.stop)
		s.mu.Unlock()

		if started {
			<-s.done
			return
		}
		s.disarm()
		close(s.done)
	})
}

// Done is closed once the loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Unit returns the unit of the armed ticker.
func (s *Scheduler) Unit() (relative.Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit, s.armed
}

// Interval returns the current refresh cadence, or 0 when nothing is armed.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return 0
	}
	return s.unit.Duration()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	defer s.disarm()

	for {
		var tickC <-chan time.Time
		s.mu.Lock()
		if s.ticker != nil {
			tickC = s.ticker.Chan()
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			log.Debug(log.CatSched, "context done", "id", s.id)
			return
		case <-s.stop:
			log.Debug(log.CatSched, "stopped", "id", s.id)
			return
		case now := <-tickC:
			s.tick(ctx, now, false)
		case req := <-s.requests:
			if req.eval != nil {
				s.mu.Lock()
				s.eval = req.eval
				s.mu.Unlock()
			}
			s.tick(ctx, s.clock.Now(), req.rearm)
			close(req.ack)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time, rearm bool) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanTick, trace.WithAttributes(
		attribute.String(tracing.AttrSchedulerID, s.id),
	))
	defer span.End()

	s.mu.Lock()
	eval := s.eval
	s.mu.Unlock()
	if eval == nil {
		span.SetStatus(codes.Error, "no evaluator")
		s.disarm()
		return
	}

	unit, ok := eval.Tick(ctx, now)
	if !ok || !unit.Valid() {
		if s.disarm() {
			span.AddEvent(tracing.EventTimerCancelled)
		}
		log.Debug(log.CatSched, "nothing to refresh", "id", s.id)
		return
	}

	span.SetAttributes(
		attribute.String(tracing.AttrUnit, unit.String()),
		attribute.Int64(tracing.AttrIntervalMs, unit.Millis()),
		attribute.Bool(tracing.AttrRearmed, rearm),
	)

	s.mu.Lock()
	prev, armed := s.unit, s.armed
	s.mu.Unlock()
	if armed && prev == unit && !rearm {
		return
	}

	if s.disarm() {
		span.AddEvent(tracing.EventTimerCancelled)
	}
	s.arm(unit)
	span.AddEvent(tracing.EventTimerArmed)

	if armed && prev != unit {
		log.Debug(log.CatSched, "cadence changed", "id", s.id, "from", prev, "to", unit, "interval", unit.Duration())
	} else {
		log.Debug(log.CatSched, "armed", "id", s.id, "unit", unit, "interval", unit.Duration())
	}
}

func (s *Scheduler) arm(unit relative.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticker = s.clock.NewTicker(unit.Duration())
	s.unit = unit
	s.armed = true
	s.arms++
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
}

// disarm stops the active ticker, reporting whether there was one.
func (s *Scheduler) disarm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil {
		return false
	}
	s.ticker.Stop()
	s.ticker = nil
	s.armed = false
	s.active--
	return true
}
