package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the appointment service.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetDetailByID(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error)

	// Listings are ordered by date_time descending.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]AppointmentDetail, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]AppointmentDetail, error)
	ListByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]AppointmentDetail, error)

	// SetStatus overwrites the status unconditionally; the caller decides
	// which transitions are allowed.
	SetStatus(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error)

	InsertEvent(ctx context.Context, ev EventLog) error
}
