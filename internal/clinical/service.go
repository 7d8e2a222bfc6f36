package clinical

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/apperr"
	"github.com/careloop/hms-backend/internal/identity"
	redisclient "github.com/careloop/hms-backend/internal/redis"
	"github.com/careloop/hms-backend/internal/scheduling"
)

const EventPrescriptionIssued = "PRESCRIPTION_ISSUED"

// Service handles prescription issuance and queries.
type Service struct {
	repo   Repository
	appts  scheduling.Repository
	idents identity.Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewService(repo Repository, appts scheduling.Repository, idents identity.Repository, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		appts:  appts,
		idents: idents,
		locker: locker,
		log:    log,
	}
}

// Create issues a prescription for the caller's own confirmed or completed
// appointment. Issuing against a CONFIRMED appointment completes it in the
// same transaction; this is the only path that produces COMPLETED.
func (s *Service) Create(ctx context.Context, doctorEmail string, appointmentID uuid.UUID, diagnosis, medications string, notes *string) (*PrescriptionDetail, error) {
	if diagnosis == "" {
		return nil, apperr.Invalid("Diagnosis is required")
	}
	if medications == "" {
		return nil, apperr.Invalid("Medications are required")
	}

	doctor, err := identity.ResolveDoctor(ctx, s.idents, doctorEmail)
	if err != nil {
		return nil, err
	}

	appt, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, scheduling.ErrAppointmentNotFound) {
			return nil, apperr.NotFound("Appointment not found with id: %s", appointmentID)
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if appt.DoctorID != doctor.ID {
		return nil, apperr.Forbidden("You can only create prescriptions for your own appointments")
	}

	if !appt.Status.CanBill() {
		return nil, apperr.Invalid("Prescriptions can only be issued for confirmed or completed appointments")
	}

	rx := &Prescription{
		ID:            uuid.New(),
		AppointmentID: appt.ID,
		DoctorID:      doctor.ID,
		PatientID:     appt.PatientID,
		Diagnosis:     diagnosis,
		Medications:   medications,
		Notes:         notes,
	}

	err = s.locker.WithAppointmentLock(ctx, appt.ID, func(lockCtx context.Context) error {
		exists, err := s.repo.ExistsForAppointment(lockCtx, appt.ID)
		if err != nil {
			return fmt.Errorf("check existing prescription: %w", err)
		}
		if exists {
			return apperr.Conflict("Prescription already exists for this appointment")
		}

		return s.repo.CreateIssued(lockCtx, rx, appt.Status == scheduling.StatusConfirmed)
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) || errors.Is(err, ErrPrescriptionExists) {
			return nil, apperr.Conflict("Prescription already exists for this appointment")
		}
		return nil, err
	}

	s.logEvent(ctx, appt.ID, rx.ID)

	return s.repo.GetDetailByAppointment(ctx, appt.ID)
}

// GetByAppointment returns the prescription attached to an appointment.
func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PrescriptionDetail, error) {
	detail, err := s.repo.GetDetailByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrPrescriptionNotFound) {
			return nil, apperr.NotFound("Prescription not found for appointment id: %s", appointmentID)
		}
		return nil, fmt.Errorf("load prescription: %w", err)
	}
	return detail, nil
}

// ListForPatient returns the caller's prescriptions, newest first.
func (s *Service) ListForPatient(ctx context.Context, patientEmail string) ([]PrescriptionDetail, error) {
	patient, err := identity.ResolvePatient(ctx, s.idents, patientEmail)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list patient prescriptions: %w", err)
	}
	return list, nil
}

// ListForDoctor returns prescriptions issued by the caller, newest first.
func (s *Service) ListForDoctor(ctx context.Context, doctorEmail string) ([]PrescriptionDetail, error) {
	doctor, err := identity.ResolveDoctor(ctx, s.idents, doctorEmail)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list doctor prescriptions: %w", err)
	}
	return list, nil
}

func (s *Service) logEvent(ctx context.Context, appointmentID, prescriptionID uuid.UUID) {
	apptID := appointmentID
	payload := fmt.Sprintf(`{"prescription_id":%q}`, prescriptionID)

	ev := scheduling.EventLog{
		EventType:     EventPrescriptionIssued,
		AppointmentID: &apptID,
		Payload:       []byte(payload),
	}

	if err := s.appts.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("appointment_id", appointmentID.String()).
			Msg("insert prescription event")
	}
}
