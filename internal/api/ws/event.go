package ws

import (
	"time"

	"fieldtrack/internal/api/models"
)

// Event is the envelope every broadcast delivery uses.
// Data holds one of the typed payloads below (or a models.LocationLog);
// each event is marshalled and delivered as a single atomic frame.
type Event struct {
	Name      EventName `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TaskNotificationPayload describes a created or status-changed task
type TaskNotificationPayload struct {
	Action      string `json:"action"`
	TaskID      uint   `json:"taskId"`
	Description string `json:"description"`
}

// TaskAssignedPayload describes a task handed to a named employee
type TaskAssignedPayload struct {
	TaskID       uint   `json:"taskId"`
	EmployeeName string `json:"employeeName"`
	Description  string `json:"description"`
}

// PresencePayload identifies the connection that joined or left
type PresencePayload struct {
	ConnectionID string `json:"connectionId"`
}

// ChatPayload is a free-form user message
type ChatPayload struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

func NewLocationUpdateEvent(entry *models.LocationLog) Event {
	return Event{
		Name:      EventLocationUpdate,
		Timestamp: time.Now().UTC(),
		Data:      entry,
	}
}

func NewTaskNotificationEvent(action string, taskID uint, description string) Event {
	return Event{
		Name:      EventTaskNotification,
		Timestamp: time.Now().UTC(),
		Data: TaskNotificationPayload{
			Action:      action,
			TaskID:      taskID,
			Description: description,
		},
	}
}

func NewTaskAssignedEvent(taskID uint, employeeName string, description string) Event {
	return Event{
		Name:      EventTaskAssigned,
		Timestamp: time.Now().UTC(),
		Data: TaskAssignedPayload{
			TaskID:       taskID,
			EmployeeName: employeeName,
			Description:  description,
		},
	}
}

func NewUserConnectedEvent(connectionID string) Event {
	return Event{
		Name:      EventUserConnected,
		Timestamp: time.Now().UTC(),
		Data:      PresencePayload{ConnectionID: connectionID},
	}
}

func NewUserDisconnectedEvent(connectionID string) Event {
	return Event{
		Name:      EventUserDisconnected,
		Timestamp: time.Now().UTC(),
		Data:      PresencePayload{ConnectionID: connectionID},
	}
}

func NewChatEvent(user string, message string) Event {
	return Event{
		Name:      EventMessage,
		Timestamp: time.Now().UTC(),
		Data:      ChatPayload{User: user, Message: message},
	}
}
