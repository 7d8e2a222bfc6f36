package scheduling

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus accepts any of the five status tokens case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", apperr.Invalid("Invalid appointment status: %s", s)
	}
}

// CanBill reports whether payments and prescriptions may be attached to an
// appointment in this status.
func (s Status) CanBill() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

type Appointment struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	DateTime  time.Time
	Status    Status
	Reason    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetail is an Appointment hydrated with the names the API
// responses carry.
type AppointmentDetail struct {
	Appointment
	PatientName          string
	DoctorName           string
	DoctorSpecialization *string
	ConsultationFee      *float64
	HasPrescription      bool
	HasPayment           bool
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
