package service

import (
	"testing"

	"fieldtrack/internal/api/models"

	"github.com/stretchr/testify/assert"
)

func TestValidStatusTransition(t *testing.T) {
	cases := []struct {
		from    models.TaskStatus
		to      models.TaskStatus
		allowed bool
	}{
		{models.TaskStatusPending, models.TaskStatusInProgress, true},
		{models.TaskStatusPending, models.TaskStatusCompleted, true},
		{models.TaskStatusPending, models.TaskStatusCancelled, true},
		{models.TaskStatusInProgress, models.TaskStatusCompleted, true},
		{models.TaskStatusInProgress, models.TaskStatusCancelled, true},
		{models.TaskStatusInProgress, models.TaskStatusPending, false},
		{models.TaskStatusCompleted, models.TaskStatusInProgress, false},
		{models.TaskStatusCompleted, models.TaskStatusPending, false},
		{models.TaskStatusCancelled, models.TaskStatusInProgress, false},
		{models.TaskStatusPending, models.TaskStatusPending, false},
	}

	for _, tc := range cases {
		got := ValidStatusTransition(tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}
