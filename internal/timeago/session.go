package timeago

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/locale"
	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/pubsub"
	"github.com/zjrosen/reltime/internal/relative"
	"github.com/zjrosen/reltime/internal/scheduler"
	"github.com/zjrosen/reltime/internal/timestamp"
	"github.com/zjrosen/reltime/internal/tracing"
)

// ErrRunning is returned by Run when the session already has a scheduler.
var ErrRunning = errors.New("session already running")

// Result is the output of one evaluation.
type Result struct {
	Text      string
	Unit      relative.Unit
	Magnitude int64
	At        time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithFormatterCache replaces the process-wide formatter cache.
func WithFormatterCache(c *FormatterCache) Option {
	return func(s *Session) {
		if c != nil {
			s.formatters = c
		}
	}
}

// WithTracer sets the tracer for evaluation and scheduler spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Session displays one timestamp. It evaluates on demand, and once Run is
// called a scheduler keeps the text fresh and every Result is published.
type Session struct {
	formatters *FormatterCache
	tracer     trace.Tracer
	broker     *pubsub.Broker[Result]

	mu        sync.RWMutex
	ts        timestamp.Timestamp
	opts      config.Resolved
	formatter *Formatter
	current   Result
	nextEvent pubsub.EventType
	sched     *scheduler.Scheduler
	closed    bool

	closeOnce sync.Once
}

// New negotiates the locale and builds the formatter for ts.
func New(ts timestamp.Timestamp, opts config.Resolved, sopts ...Option) (*Session, error) {
	if !ts.Valid() {
		return nil, fmt.Errorf("creating session: %w", timestamp.ErrInvalid)
	}
	s := &Session{
		formatters: defaultFormatters,
		tracer:     otel.Tracer("github.com/zjrosen/reltime/internal/timeago"),
		broker:     pubsub.NewBroker[Result](),
		ts:         ts,
		opts:       opts,
		nextEvent:  pubsub.RefreshedEvent,
	}
	for _, o := range sopts {
		o(s)
	}
	s.formatter = s.buildFormatter(context.Background(), opts)
	return s, nil
}

func (s *Session) buildFormatter(ctx context.Context, opts config.Resolved) *Formatter {
	tag := locale.Negotiate(opts.Locales)
	return NewFormatter(s.formatters.Get(ctx, tag, opts.Format), opts)
}

// Evaluate resolves and formats the timestamp against now. It has no side
// effects.
func (s *Session) Evaluate(_ context.Context, now time.Time) Result {
	s.mu.RLock()
	ts, opts, f := s.ts, s.opts, s.formatter
	s.mu.RUnlock()

	magnitude, unit := relative.Resolve(now, ts.Time(), opts.RoundStrategy, opts.AllowFuture)
	return Result{
		Text:      f.Text(magnitude, unit),
		Unit:      unit,
		Magnitude: magnitude,
		At:        now,
	}
}

// Tick evaluates, stores and publishes the result. It reports false once
// the session is closed.
func (s *Session) Tick(ctx context.Context, now time.Time) (relative.Unit, bool) {
	_, span := s.tracer.Start(ctx, tracing.SpanEvaluate)
	defer span.End()

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return 0, false
	}

	r := s.Evaluate(ctx, now)
	span.SetAttributes(
		attribute.String(tracing.AttrUnit, r.Unit.String()),
		attribute.Int64(tracing.AttrMagnitude, r.Magnitude),
		attribute.String(tracing.AttrLocale, s.Locale().String()),
	)

	s.mu.Lock()
	s.current = r
	event := s.nextEvent
	s.nextEvent = pubsub.RefreshedEvent
	s.mu.Unlock()

	s.broker.Publish(event, r)
	log.Debug(log.CatFormat, "evaluated", "text", r.Text, "unit", r.Unit, "magnitude", r.Magnitude)
	return r.Unit, true
}

// Subscribe receives every published Result until ctx is done or the
// session is closed.
func (s *Session) Subscribe(ctx context.Context) <-chan pubsub.Event[Result] {
	return s.broker.Subscribe(ctx)
}

// Current returns the last published Result.
func (s *Session) Current() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Timestamp returns the displayed instant.
func (s *Session) Timestamp() timestamp.Timestamp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ts
}

// Options returns the active configuration.
func (s *Session) Options() config.Resolved {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Locale returns the negotiated locale.
func (s *Session) Locale() language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatter.Locale()
}

// Title is the locale-formatted absolute timestamp, shown as a tooltip.
func (s *Session) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return locale.FormatAbsolute(s.ts.Time(), s.formatter.Locale())
}

// DateTime is the canonical machine-readable timestamp.
func (s *Session) DateTime() string {
	return s.Timestamp().ISO()
}

// Interval returns the scheduler's current cadence, or 0 when not running.
func (s *Session) Interval() time.Duration {
	s.mu.RLock()
	sched := s.sched
	s.mu.RUnlock()
	if sched == nil {
		return 0
	}
	return sched.Interval()
}

// Run starts a scheduler on clock. The first result is published before Run
// returns. The scheduler stops when ctx is done or on Close.
func (s *Session) Run(ctx context.Context, clock clockwork.Clock) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return scheduler.ErrStopped
	}
	if s.sched != nil {
		s.mu.Unlock()
		return ErrRunning
	}
	s.sched = scheduler.New(s, scheduler.WithClock(clock), scheduler.WithTracer(s.tracer))
	sched := s.sched
	s.mu.Unlock()

	log.Debug(log.CatSched, "session running", "id", sched.ID(), "timestamp", s.DateTime())
	return sched.Start(ctx)
}

// Refresh re-evaluates immediately.
func (s *Session) Refresh() {
	s.mu.RLock()
	sched := s.sched
	s.mu.RUnlock()
	if sched != nil {
		sched.Refresh()
	}
}

// Reconfigure applies new options. A running session re-evaluates at once
// and re-arms its cadence.
func (s *Session) Reconfigure(opts config.Resolved) {
	f := s.buildFormatter(context.Background(), opts)

	s.mu.Lock()
	s.opts = opts
	s.formatter = f
	s.mu.Unlock()

	log.Info(log.CatConfig, "Session reconfigured", "locale", f.Locale(), "hide_seconds", opts.HideSeconds)
	s.rearm()
}

// SetTimestamp switches the displayed instant.
func (s *Session) SetTimestamp(ts timestamp.Timestamp) error {
	if !ts.Valid() {
		return fmt.Errorf("setting timestamp: %w", timestamp.ErrInvalid)
	}
	s.mu.Lock()
	s.ts = ts
	s.mu.Unlock()

	s.rearm()
	return nil
}

func (s *Session) rearm() {
	s.mu.Lock()
	sched := s.sched
	if sched != nil {
		s.nextEvent = pubsub.ReconfiguredEvent
	}
	s.mu.Unlock()
	if sched != nil {
		sched.Reconfigure(s)
	}
}

// Close stops the scheduler and the broker. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		sched := s.sched
		current := s.current
		s.closed = true
		s.mu.Unlock()

		if sched != nil {
			sched.Stop()
		}
		s.broker.Publish(pubsub.StoppedEvent, current)
		s.broker.Close()
	})
}
