package timeago

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"pgregory.net/rapid"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/locale"
	"github.com/zjrosen/reltime/internal/pubsub"
	"github.com/zjrosen/reltime/internal/relative"
	"github.com/zjrosen/reltime/internal/scheduler"
	"github.com/zjrosen/reltime/internal/timestamp"
)

func next(t *testing.T, ch <-chan pubsub.Event[Result]) pubsub.Event[Result] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
		return pubsub.Event[Result]{}
	}
}

func TestSession_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClockAt(now)
	s, err := New(timestamp.FromTime(now.Add(-50*time.Second)), resolved(t, config.Options{
		Locales:       []string{"en"},
		HideSeconds:   config.Ptr(false),
		RoundStrategy: config.Ptr("floor"),
	}))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	events := s.Subscribe(ctx)
	require.NoError(t, s.Run(ctx, clock))

	ev := next(t, events)
	require.Equal(t, pubsub.RefreshedEvent, ev.Type)
	require.Equal(t, "50 seconds ago", ev.Payload.Text)
	require.Equal(t, ev.Payload, s.Current())
	require.Equal(t, time.Second, s.Interval())

	for i := 0; i < 10; i++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Second)
		ev = next(t, events)
	}
	require.Equal(t, "1 minute ago", ev.Payload.Text)
	require.Equal(t, relative.Minute, ev.Payload.Unit)
	require.Eventually(t, func() bool { return s.Interval() == time.Minute }, 2*time.Second, time.Millisecond)

	require.ErrorIs(t, s.Run(ctx, clock), ErrRunning)
}

func TestSession_ReconfigurePublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClockAt(now)
	opts := resolved(t, config.Options{Locales: []string{"en"}})
	s, err := New(timestamp.FromTime(now.Add(-5*time.Second)), opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	events := s.Subscribe(ctx)
	require.NoError(t, s.Run(ctx, clock))
	require.Equal(t, "1 minute ago", next(t, events).Payload.Text)

	opts.HideSeconds = false
	s.Reconfigure(opts)
	ev := next(t, events)
	require.Equal(t, pubsub.ReconfiguredEvent, ev.Type)
	require.Equal(t, "5 seconds ago", ev.Payload.Text)
	require.Equal(t, time.Second, s.Interval())

	opts.Locales = []string{"de"}
	s.Reconfigure(opts)
	require.Equal(t, "vor 5 Sekunden", next(t, events).Payload.Text)

	require.NoError(t, s.SetTimestamp(timestamp.MustParse("2023-06-06T08:00:00Z")))
	ev = next(t, events)
	require.Equal(t, pubsub.ReconfiguredEvent, ev.Type)
	require.Equal(t, "vor 3 Stunden", ev.Payload.Text)
	require.Equal(t, time.Hour, s.Interval())

	s.Refresh()
	ev = next(t, events)
	require.Equal(t, pubsub.RefreshedEvent, ev.Type)
	require.Equal(t, "vor 3 Stunden", ev.Payload.Text)

	require.ErrorIs(t, s.SetTimestamp(timestamp.Timestamp{}), timestamp.ErrInvalid)
}

func TestSession_ReconfigureBeforeRun(t *testing.T) {
	s, err := New(timestamp.MustParse("2019-06-06"), resolved(t, config.Options{Locales: []string{"en"}}))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	s.Reconfigure(resolved(t, config.Options{Locales: []string{"fr"}}))
	s.Refresh()
	require.Equal(t, "il y a 4 ans", s.Evaluate(context.Background(), now).Text)
	require.Zero(t, s.Interval())
}

func TestSession_Close(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(now)
	s, err := New(timestamp.MustParse("2023-06-06"), resolved(t, config.Options{Locales: []string{"en"}}))
	require.NoError(t, err)

	events := s.Subscribe(ctx)
	require.NoError(t, s.Run(ctx, clock))
	first := next(t, events)
	require.Equal(t, "11 hours ago", first.Payload.Text)

	s.Close()
	s.Close()

	ev := next(t, events)
	require.Equal(t, pubsub.StoppedEvent, ev.Type)
	require.Equal(t, first.Payload, ev.Payload)

	_, ok := <-events
	require.False(t, ok, "broker closes subscriptions")
	require.Zero(t, s.Interval())

	unit, ok := s.Tick(ctx, now)
	require.False(t, ok)
	require.Zero(t, unit)

	require.ErrorIs(t, s.Run(ctx, clock), scheduler.ErrStopped)
}

func TestFormatterCache_SharesEntries(t *testing.T) {
	cache := NewFormatterCache(time.Minute)
	ts := timestamp.MustParse("2023")

	build := func(o config.Options) *Session {
		s, err := New(ts, resolved(t, o), WithFormatterCache(cache))
		require.NoError(t, err)
		return s
	}

	a := build(config.Options{Locales: []string{"de-AT"}})
	b := build(config.Options{Locales: []string{"de-LU"}, Style: config.Ptr("long")})
	require.Equal(t, 1, cache.Len())
	require.Same(t, a.formatter.primitive, b.formatter.primitive)

	build(config.Options{Locales: []string{"de"}, Numeric: config.Ptr("auto")})
	build(config.Options{Locales: []string{"ja"}})
	require.Equal(t, 3, cache.Len())
}

func TestFormatterFor(t *testing.T) {
	a := FormatterFor(context.Background(), language.German, locale.FormatOptions{})
	b := FormatterFor(context.Background(), language.German, locale.FormatOptions{Style: locale.StyleLong, Numeric: locale.NumericAlways})
	require.Same(t, a, b)
	require.Equal(t, "vor 2 Tagen", a.Format(-2, relative.Day))
}

func TestEvaluate_Properties(t *testing.T) {
	const century = 100 * 365 * 24 * int64(time.Hour/time.Millisecond)

	rapid.Check(t, func(rt *rapid.T) {
		offset := rapid.Int64Range(-century, century).Draw(rt, "offset")
		allowFuture := rapid.Bool().Draw(rt, "allowFuture")
		o := config.Options{
			Locales:       []string{rapid.SampledFrom([]string{"en", "de", "fr", "es", "it", "ru", "zh-Hans", "zh-Hant", "xx"}).Draw(rt, "locale")},
			AllowFuture:   config.Ptr(allowFuture),
			HideSeconds:   config.Ptr(rapid.Bool().Draw(rt, "hideSeconds")),
			RoundStrategy: config.Ptr(rapid.SampledFrom([]string{"floor", "round", "ceil", "bogus"}).Draw(rt, "round")),
			Numeric:       config.Ptr(rapid.SampledFrom([]string{"always", "auto"}).Draw(rt, "numeric")),
		}
		opts, err := config.Resolve(o)
		if err != nil {
			rt.Fatalf("resolve: %v", err)
		}
		s, err := New(timestamp.FromMillis(now.UnixMilli()+offset), opts)
		if err != nil {
			rt.Fatalf("new: %v", err)
		}

		a := s.Evaluate(context.Background(), now)
		b := s.Evaluate(context.Background(), now)
		if a != b {
			rt.Fatalf("not idempotent: %+v vs %+v", a, b)
		}
		if a.Text == "" {
			rt.Fatalf("empty text for %+v", a)
		}
		if a.Magnitude == 0 && a.Unit != relative.Second {
			rt.Fatalf("zero magnitude with unit %s", a.Unit)
		}
		if !allowFuture && a.Magnitude > 0 {
			rt.Fatalf("future magnitude %d with allowFuture=false", a.Magnitude)
		}
	})
}
