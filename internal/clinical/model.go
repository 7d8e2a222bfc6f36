package clinical

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	DoctorID      uuid.UUID
	PatientID     uuid.UUID
	Diagnosis     string
	Medications   string
	Notes         *string
	IssuedAt      time.Time
}

// PrescriptionDetail is a Prescription hydrated with the names and the
// appointment time the API responses carry.
type PrescriptionDetail struct {
	Prescription
	DoctorName           string
	DoctorSpecialization *string
	PatientName          string
	AppointmentDateTime  time.Time
}
