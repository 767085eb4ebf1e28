package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesTopicSubscribers(t *testing.T) {
	h := NewHub()
	both, cleanupBoth := h.Subscribe("reminders", "notifications")
	onlyReminders, cleanupReminders := h.Subscribe("reminders")

	assert.Equal(t, 2, h.SubscriberCount("reminders"))
	assert.Equal(t, 1, h.SubscriberCount("notifications"))
	assert.Equal(t, 2, h.TotalSubscribers())

	h.Publish("notifications", Event{Event: "change"})

	select {
	case ev := <-both:
		assert.Equal(t, "notifications", ev.Topic)
	default:
		t.Fatal("expected an event")
	}
	assert.Len(t, onlyReminders, 0)

	cleanupReminders()
	assert.Equal(t, 1, h.SubscriberCount("reminders"))
	cleanupBoth()
	assert.Zero(t, h.TotalSubscribers())

	_, open := <-both
	assert.False(t, open)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("reminders")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		h.Publish("reminders", Event{Event: "change"})
	}
	require.Len(t, ch, cap(ch))

	h.Publish("unknown", Event{})
}
