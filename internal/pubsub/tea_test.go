package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(RefreshedEvent, "in 2 days")

	event, ok := ListenCmd(ctx, ch)().(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "in 2 days", event.Payload)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An unbuffered channel nobody writes to: only ctx can end the wait.
	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_Listen(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[int](ctx, broker)
	broker.Publish(RefreshedEvent, 1)
	broker.Publish(RefreshedEvent, 2)

	for _, want := range []int{1, 2} {
		event, ok := listener.Listen()().(Event[int])
		require.True(t, ok)
		require.Equal(t, want, event.Payload)
	}
}
