package ws

import (
	"errors"
	"testing"

	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngest struct {
	err     error
	calls   int
	entries []*models.LocationLog
}

func (f *fakeIngest) SubmitReport(report *request.LocationReport) (*models.LocationLog, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	entry := &models.LocationLog{
		ID:         uint(len(f.entries) + 1),
		EmployeeID: uint(report.EmployeeID),
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

// newSubmittingClient builds a field client with a queued process worker and
// a dashboard observing the hub. The worker is driven synchronously by
// closing the queue and calling processWorker directly.
func newSubmittingClient(t *testing.T, hub *Hub, ingest locationIngest) (*Client, *Client) {
	t.Helper()

	observer := newTestClient("conn-dashboard", 16)
	hub.Register(observer)

	client := &Client{
		ID:           "conn-field",
		EmployeeID:   7,
		hub:          hub,
		ingest:       ingest,
		Send:         make(chan Event, 16),
		processQueue: make(chan request.LocationReport, 16),
		logger:       zerolog.Nop(),
	}
	hub.Register(client)

	drainEvents(observer)
	drainEvents(client)

	return client, observer
}

func TestClient_SubmittedLocationIsBroadcastAfterPersist(t *testing.T) {
	hub := newTestHub()
	ingest := &fakeIngest{}
	client, observer := newSubmittingClient(t, hub, ingest)

	client.processQueue <- request.LocationReport{EmployeeID: 7, Latitude: 28.61, Longitude: 77.20}
	close(client.processQueue)
	client.processWorker()

	require.Equal(t, 1, ingest.calls)

	events := drainEvents(observer)
	require.Len(t, events, 1, "every subscriber sees exactly one update")
	assert.Equal(t, EventLocationUpdate, events[0].Name)
	assert.Same(t, ingest.entries[0], events[0].Data, "broadcast carries the persisted entry")
}

func TestClient_InvalidReportIsNeverBroadcast(t *testing.T) {
	hub := newTestHub()
	ingest := &fakeIngest{err: service.ErrInvalidReport}
	client, observer := newSubmittingClient(t, hub, ingest)

	client.processQueue <- request.LocationReport{EmployeeID: 0, Latitude: 1, Longitude: 1}
	close(client.processQueue)
	client.processWorker()

	require.Equal(t, 1, ingest.calls)
	assert.Empty(t, drainEvents(observer), "rejected reports must not reach subscribers")
	assert.Empty(t, drainEvents(client))
}

func TestClient_StoreFailureIsNeverBroadcast(t *testing.T) {
	hub := newTestHub()
	ingest := &fakeIngest{err: errors.New("connection refused")}
	client, observer := newSubmittingClient(t, hub, ingest)

	client.processQueue <- request.LocationReport{EmployeeID: 7, Latitude: 28.61, Longitude: 77.20}
	close(client.processQueue)
	client.processWorker()

	require.Equal(t, 1, ingest.calls)
	assert.Empty(t, drainEvents(observer), "a failed persist yields no broadcast")
}

func TestClient_SubmissionsAreProcessedInOrder(t *testing.T) {
	hub := newTestHub()
	ingest := &fakeIngest{}
	client, observer := newSubmittingClient(t, hub, ingest)

	for i := 1; i <= 3; i++ {
		client.processQueue <- request.LocationReport{EmployeeID: int64(i), Latitude: float64(i), Longitude: float64(i)}
	}
	close(client.processQueue)
	client.processWorker()

	events := drainEvents(observer)
	require.Len(t, events, 3)
	for i, ev := range events {
		entry := ev.Data.(*models.LocationLog)
		assert.Equal(t, uint(i+1), entry.ID, "persist order matches submission order")
		assert.Equal(t, uint(i+1), entry.EmployeeID)
	}
}
