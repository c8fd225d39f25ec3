package service

import (
	"errors"
	"testing"
	"time"

	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/models"
	"fieldtrack/pkg"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationStore struct {
	entries []models.LocationLog
	err     error
}

func (f *fakeLocationStore) Create(entry *models.LocationLog) error {
	if f.err != nil {
		return f.err
	}
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func newTestLocationService(store *fakeLocationStore) *LocationService {
	return &LocationService{
		store:  store,
		logger: zerolog.Nop(),
	}
}

func TestLocationService_RejectsNilReport(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newTestLocationService(store)

	entry, err := svc.SubmitReport(nil)

	require.ErrorIs(t, err, ErrInvalidReport)
	assert.Nil(t, entry)
	assert.Empty(t, store.entries, "no persistence call for rejected reports")
}

func TestLocationService_RejectsNonPositiveEmployeeID(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newTestLocationService(store)

	for _, employeeID := range []int64{0, -1, -42} {
		entry, err := svc.SubmitReport(&request.LocationReport{
			EmployeeID: employeeID,
			Latitude:   28.61,
			Longitude:  77.20,
		})

		require.ErrorIs(t, err, ErrInvalidReport)
		assert.Nil(t, entry)
	}
	assert.Empty(t, store.entries)
}

func TestLocationService_PersistsValidReport(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newTestLocationService(store)

	before := time.Now().UTC()
	entry, err := svc.SubmitReport(&request.LocationReport{
		EmployeeID: 7,
		Latitude:   28.61,
		Longitude:  77.20,
		Accuracy:   pkg.ToPtr(5.5),
	})
	after := time.Now().UTC()

	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, uint(7), entry.EmployeeID)
	assert.Equal(t, 28.61, entry.Latitude)
	assert.Equal(t, 77.20, entry.Longitude)
	assert.Equal(t, 5.5, *entry.Accuracy)
	assert.NotZero(t, entry.ID, "server assigns the primary identifier")

	// Server-assigned timestamp is UTC "now" when the client omits one
	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.False(t, entry.Timestamp.Before(before))
	assert.False(t, entry.Timestamp.After(after))

	// The returned entry is exactly what was persisted
	require.Len(t, store.entries, 1)
	assert.Equal(t, store.entries[0], *entry)
}

func TestLocationService_KeepsClientTimestamp(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newTestLocationService(store)

	reported := time.Date(2026, 8, 30, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	entry, err := svc.SubmitReport(&request.LocationReport{
		EmployeeID: 7,
		Latitude:   28.61,
		Longitude:  77.20,
		Timestamp:  &reported,
	})

	require.NoError(t, err)
	assert.True(t, entry.Timestamp.Equal(reported))
	assert.Equal(t, time.UTC, entry.Timestamp.Location())
}

func TestLocationService_PropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeLocationStore{err: storeErr}
	svc := newTestLocationService(store)

	entry, err := svc.SubmitReport(&request.LocationReport{
		EmployeeID: 7,
		Latitude:   28.61,
		Longitude:  77.20,
	})

	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidReport)
	assert.Nil(t, entry)
}
