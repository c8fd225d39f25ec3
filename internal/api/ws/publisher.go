package ws

import "github.com/rs/zerolog"

// TaskPublisher translates committed task mutations into broadcast events.
// Callers must invoke it only after the underlying write has been committed,
// so subscribers never hear about a change that could still roll back.
type TaskPublisher struct {
	hub    *Hub
	logger zerolog.Logger
}

func NewTaskPublisher(hub *Hub, logger zerolog.Logger) *TaskPublisher {
	return &TaskPublisher{
		hub:    hub,
		logger: logger,
	}
}

func (p *TaskPublisher) PublishCreated(taskID uint, description string) {
	p.hub.Publish(NewTaskNotificationEvent(TaskActionCreated, taskID, description))
	p.logger.Debug().Uint("taskId", taskID).Msg("Published task created")
}

func (p *TaskPublisher) PublishAssigned(taskID uint, employeeName string, description string) {
	p.hub.Publish(NewTaskAssignedEvent(taskID, employeeName, description))
	p.logger.Debug().
		Uint("taskId", taskID).
		Str("employee", employeeName).
		Msg("Published task assigned")
}

func (p *TaskPublisher) PublishStatusChanged(taskID uint, action string, description string) {
	p.hub.Publish(NewTaskNotificationEvent(action, taskID, description))
	p.logger.Debug().
		Uint("taskId", taskID).
		Str("action", action).
		Msg("Published task status change")
}
