package service

import (
	"errors"
	"fmt"
	"time"

	"fieldtrack"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/repo"
	"fieldtrack/pkg"

	"github.com/rs/zerolog"
)

// ErrInvalidReport marks a location report that failed the validation gate.
// Such reports are never persisted and never broadcast.
var ErrInvalidReport = errors.New("location report requires a positive employee id")

const lastPositionTTL = 24 * time.Hour

// LocationStore is the persistence boundary for location log entries
type LocationStore interface {
	Create(entry *models.LocationLog) error
}

// LocationService gates and persists inbound location reports. It is the only
// producer of LocationLog entries; callers broadcast the returned entry after
// this service has written it.
type LocationService struct {
	store        LocationStore
	cacheEnabled bool
	logger       zerolog.Logger
}

func NewLocationService() *LocationService {
	return &LocationService{
		store:        repo.NewLocationLogRepository(),
		cacheEnabled: true,
		logger:       fieldtrack.Logger,
	}
}

// SubmitReport validates and persists one location report. Invalid reports
// (nil, or employeeId <= 0) are rejected before any persistence call; a valid
// report gets a server-assigned UTC timestamp when the client supplied none.
// Each call is independent, so concurrent submissions from many field clients
// never contend beyond the store's own write path.
func (slf *LocationService) SubmitReport(report *request.LocationReport) (*models.LocationLog, error) {
	if report == nil || report.EmployeeID <= 0 {
		slf.logger.Warn().
			Interface("report", report).
			Msg("Rejected invalid location report")
		return nil, ErrInvalidReport
	}

	timestamp := time.Now().UTC()
	if report.Timestamp != nil {
		timestamp = report.Timestamp.UTC()
	}

	entry := &models.LocationLog{
		EmployeeID: uint(report.EmployeeID),
		Latitude:   report.Latitude,
		Longitude:  report.Longitude,
		Accuracy:   report.Accuracy,
		Speed:      report.Speed,
		Heading:    report.Heading,
		Timestamp:  timestamp,
	}

	if err := slf.store.Create(entry); err != nil {
		slf.logger.Error().
			Err(err).
			Int64("employeeId", report.EmployeeID).
			Msg("Failed to persist location report")
		return nil, fmt.Errorf("persist location report: %w", err)
	}

	slf.cacheLastPosition(entry)

	return entry, nil
}

// cacheLastPosition keeps the newest entry per employee in Redis for the
// latest-position endpoint. Best effort only; a cache failure never fails
// the submit.
func (slf *LocationService) cacheLastPosition(entry *models.LocationLog) {
	if !slf.cacheEnabled || fieldtrack.Redis == nil {
		return
	}

	key := LastPositionKey(entry.EmployeeID)
	if err := pkg.RedisSet(key, entry, lastPositionTTL); err != nil {
		slf.logger.Warn().
			Err(err).
			Uint("employeeId", entry.EmployeeID).
			Msg("Failed to cache last position")
	}
}

// LastPositionKey is the Redis key holding an employee's newest location
func LastPositionKey(employeeID uint) string {
	return fmt.Sprintf("employee:%d:last-position", employeeID)
}
