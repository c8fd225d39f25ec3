package request

import "time"

// LocationReport is the wire input from field-tracking clients.
// EmployeeID must be positive; everything else may be absent or zero.
// The server assigns the timestamp when the client does not supply one.
type LocationReport struct {
	EmployeeID int64      `json:"employeeId"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	Speed      *float64   `json:"speed,omitempty"`
	Heading    *float64   `json:"heading,omitempty"`
}
