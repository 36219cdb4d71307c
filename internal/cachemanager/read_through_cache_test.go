package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager[K comparable, V any] struct {
	mock.Mock
}

func (m *mockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager[K, V]) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type buildInput struct {
	Locale string
}

func build(_ context.Context, in buildInput) (*exampleFormatter, error) {
	if in.Locale == "" {
		return nil, errors.New("no locale")
	}
	return &exampleFormatter{Locale: in.Locale, Style: "long"}, nil
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[string, *exampleFormatter]{}

	rtc := NewReadThroughCache[string, *exampleFormatter, buildInput](managerMock, build, true)

	got, err := rtc.Get(context.Background(), "de|long", buildInput{Locale: "de"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "de", got.Locale)
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	managerMock := &mockCacheManager[string, *exampleFormatter]{}
	cached := &exampleFormatter{Locale: "fr", Style: "short"}
	managerMock.On("Get", mock.Anything, "fr|short").Return(cached, true).Once()

	rtc := NewReadThroughCache[string, *exampleFormatter, buildInput](managerMock, build, false)

	got, err := rtc.Get(context.Background(), "fr|short", buildInput{Locale: "fr"}, time.Minute)
	require.NoError(t, err)
	require.Same(t, cached, got)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	managerMock := &mockCacheManager[string, *exampleFormatter]{}
	managerMock.On("Get", mock.Anything, "it|long").Return((*exampleFormatter)(nil), false).Once()
	managerMock.On("Set", mock.Anything, "it|long", mock.AnythingOfType("*cachemanager.exampleFormatter"), time.Minute).Once()

	rtc := NewReadThroughCache[string, *exampleFormatter, buildInput](managerMock, build, false)

	got, err := rtc.Get(context.Background(), "it|long", buildInput{Locale: "it"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "it", got.Locale)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_ErrorNotStored(t *testing.T) {
	managerMock := &mockCacheManager[string, *exampleFormatter]{}
	managerMock.On("Get", mock.Anything, "bad").Return((*exampleFormatter)(nil), false).Once()

	rtc := NewReadThroughCache[string, *exampleFormatter, buildInput](managerMock, build, false)

	_, err := rtc.Get(context.Background(), "bad", buildInput{}, time.Minute)
	require.Error(t, err)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh(t *testing.T) {
	cache := newTestCache[*exampleFormatter]()
	builds := 0
	rtc := NewReadThroughCache[formatterKey, *exampleFormatter, buildInput](
		cache,
		func(ctx context.Context, in buildInput) (*exampleFormatter, error) {
			builds++
			return build(ctx, in)
		},
		false,
	)

	first, err := rtc.GetWithRefresh(context.Background(), "ru|long", buildInput{Locale: "ru"}, time.Minute)
	require.NoError(t, err)
	second, err := rtc.GetWithRefresh(context.Background(), "ru|long", buildInput{Locale: "ru"}, time.Minute)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, builds)
}
