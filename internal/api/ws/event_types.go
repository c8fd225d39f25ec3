package ws

// EventName identifies the outbound event a payload belongs to.
// These names are part of the client contract; dashboards switch on them.
type EventName string

const (
	// EventLocationUpdate carries a persisted LocationLog entry
	EventLocationUpdate EventName = "ReceiveLocationUpdate"

	// EventTaskNotification carries a task lifecycle change (created, status changed)
	EventTaskNotification EventName = "TaskNotification"

	// EventTaskAssigned carries a task assignment with the assignee's name
	EventTaskAssigned EventName = "TaskAssigned"

	// EventUserConnected / EventUserDisconnected are presence signals
	EventUserConnected    EventName = "UserConnected"
	EventUserDisconnected EventName = "UserDisconnected"

	// EventMessage is the free-form chat channel, kept for manual testing
	EventMessage EventName = "ReceiveMessage"
)

// Task lifecycle action labels used in TaskNotification payloads
const (
	TaskActionCreated       = "Created"
	TaskActionStatusChanged = "StatusChanged"
)
