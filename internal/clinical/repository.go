package clinical

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionExists   = errors.New("prescription already exists for appointment")
)

// Repository contains all DB interactions needed by the prescription service.
type Repository interface {
	ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)

	// CreateIssued inserts the prescription and, when completeAppointment is
	// set, flips the appointment to COMPLETED in the same transaction.
	CreateIssued(ctx context.Context, rx *Prescription, completeAppointment bool) error

	GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PrescriptionDetail, error)

	// Listings are ordered by issued_at descending.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]PrescriptionDetail, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]PrescriptionDetail, error)
}
