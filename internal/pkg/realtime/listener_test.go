package realtime

import (
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchPublishesTableTopic(t *testing.T) {
	hub := sse.NewHub()
	ch, cleanup := hub.Subscribe("notifications")
	defer cleanup()

	l := NewListener(nil, hub)
	l.Dispatch(Channel, "notifications")
	l.Dispatch(Channel, "reminders")
	l.Dispatch("other_channel", "notifications")
	l.Dispatch(Channel, "")

	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, "notifications", ev.Topic)
	assert.Equal(t, ChangeEvent, ev.Event)
}
