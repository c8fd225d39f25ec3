package ws

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPublisher(t *testing.T) (*TaskPublisher, *Client) {
	t.Helper()

	hub := NewHub(zerolog.Nop())
	client := newTestClient("conn-dashboard", 16)
	hub.Register(client)
	drainEvents(client)

	return NewTaskPublisher(hub, zerolog.Nop()), client
}

func TestTaskPublisher_PublishCreated(t *testing.T) {
	publisher, client := setupPublisher(t)

	publisher.PublishCreated(42, "Site visit")

	events := drainEvents(client)
	require.Len(t, events, 1)
	assert.Equal(t, EventTaskNotification, events[0].Name)
	assert.Equal(t, TaskNotificationPayload{
		Action:      "Created",
		TaskID:      42,
		Description: "Site visit",
	}, events[0].Data)
}

func TestTaskPublisher_PublishAssigned(t *testing.T) {
	publisher, client := setupPublisher(t)

	publisher.PublishAssigned(42, "Asha Verma", "Site visit")

	events := drainEvents(client)
	require.Len(t, events, 1)
	assert.Equal(t, EventTaskAssigned, events[0].Name)
	assert.Equal(t, TaskAssignedPayload{
		TaskID:       42,
		EmployeeName: "Asha Verma",
		Description:  "Site visit",
	}, events[0].Data)
}

func TestTaskPublisher_PublishStatusChanged(t *testing.T) {
	publisher, client := setupPublisher(t)

	publisher.PublishStatusChanged(42, TaskActionStatusChanged, "Site visit")

	events := drainEvents(client)
	require.Len(t, events, 1)
	assert.Equal(t, EventTaskNotification, events[0].Name)
	assert.Equal(t, TaskNotificationPayload{
		Action:      "StatusChanged",
		TaskID:      42,
		Description: "Site visit",
	}, events[0].Data)
}
