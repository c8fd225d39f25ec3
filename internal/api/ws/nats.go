package ws

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSBridge subscribes to task-mutation subjects published by the external
// task-management collaborator and re-broadcasts them on the task channel.
// Messages arrive only after the collaborator has committed its write.
type NATSBridge struct {
	conn      *nats.Conn
	subject   string
	publisher *TaskPublisher
	logger    zerolog.Logger
}

// taskMutation is the wire shape on the task subjects.
type taskMutation struct {
	Event        string `json:"event"` // "created" | "assigned" | "statusChanged"
	TaskID       uint   `json:"taskId"`
	Action       string `json:"action,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	Description  string `json:"description"`
}

func NewNATSBridge(natsURL string, subject string, publisher *TaskPublisher, logger zerolog.Logger) (*NATSBridge, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, subject: subject, publisher: publisher, logger: logger}, nil
}

// Subscribe listens for task mutations and pushes them into the hub.
func (b *NATSBridge) Subscribe() error {
	_, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		var mutation taskMutation
		if err := json.Unmarshal(msg.Data, &mutation); err != nil {
			b.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Bad task mutation payload")
			return
		}

		switch mutation.Event {
		case "created":
			b.publisher.PublishCreated(mutation.TaskID, mutation.Description)
		case "assigned":
			b.publisher.PublishAssigned(mutation.TaskID, mutation.EmployeeName, mutation.Description)
		case "statusChanged":
			action := mutation.Action
			if action == "" {
				action = TaskActionStatusChanged
			}
			b.publisher.PublishStatusChanged(mutation.TaskID, action, mutation.Description)
		default:
			b.logger.Warn().Str("event", mutation.Event).Msg("Unknown task mutation event")
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", b.subject, err)
	}

	b.logger.Info().Str("subject", b.subject).Msg("NATS bridge subscribed")
	return nil
}

// Close drains the NATS connection.
func (b *NATSBridge) Close() {
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn().Err(err).Msg("NATS drain failed")
	}
}
