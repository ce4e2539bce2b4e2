package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventTableSessionCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventAdminDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected handler call")
		return nil
	})

	event := NewEvent(EventTableSessionCreated, "s-1", nil)
	require.NoError(t, d.Publish(context.Background(), event))
	require.Len(t, got, 1)
	assert.Equal(t, event.ID, got[0].ID)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestDispatcher_HandlerErrorsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventAdminRegistered, "a@x.com", nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventAdminDeleted, "a@x.com", nil)))
}

func TestDispatcher_PanickingHandlerIsIsolated(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventTableSessionDeactivated, func(context.Context, Event) error {
		panic("subscriber bug")
	})
	d.Subscribe(EventTableSessionDeactivated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventTableSessionDeactivated, "s-1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscriber bug")
	assert.Contains(t, err.Error(), string(EventTableSessionDeactivated))
	assert.True(t, reached)
}

func TestDispatcher_SubscribeDuringPublish(t *testing.T) {
	d := NewInMemoryDispatcher()

	late := 0
	d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
		d.Subscribe(EventAdminRegistered, func(context.Context, Event) error {
			late++
			return nil
		})
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventAdminRegistered, "a@x.com", nil)))
	assert.Equal(t, 0, late)
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventAdminRegistered, "a@x.com", nil)))
	assert.Equal(t, 1, late)
}
