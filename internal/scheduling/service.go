package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/apperr"
	"github.com/careloop/hms-backend/internal/identity"
)

const (
	EventAppointmentBooked        = "APPOINTMENT_BOOKED"
	EventAppointmentStatusChanged = "APPOINTMENT_STATUS_CHANGED"
)

// Service handles appointment booking and status management.
type Service struct {
	repo   Repository
	idents identity.Repository
	log    zerolog.Logger
}

func NewService(repo Repository, idents identity.Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		idents: idents,
		log:    log,
	}
}

// Book creates a PENDING appointment for the calling patient.
func (s *Service) Book(ctx context.Context, patientEmail string, doctorID uuid.UUID, dateTime time.Time, reason string) (*AppointmentDetail, error) {
	patient, err := identity.ResolvePatient(ctx, s.idents, patientEmail)
	if err != nil {
		return nil, err
	}

	doctor, err := s.idents.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, identity.ErrDoctorNotFound) {
			return nil, apperr.NotFound("Doctor not found with id: %s", doctorID)
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if !doctor.Available {
		return nil, apperr.Invalid("Doctor is not available for appointments")
	}
	if !dateTime.After(time.Now()) {
		return nil, apperr.Invalid("Appointment date must be in the future")
	}

	appt := &Appointment{
		ID:        uuid.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		DateTime:  dateTime,
		Status:    StatusPending,
		Reason:    reason,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logEvent(ctx, appt.ID, EventAppointmentBooked, map[string]any{
		"patient_id": patient.ID.String(),
		"doctor_id":  doctor.ID.String(),
		"date_time":  dateTime,
	})

	return s.repo.GetDetailByID(ctx, appt.ID)
}

// ListForPatient returns the caller's appointments, newest first.
func (s *Service) ListForPatient(ctx context.Context, patientEmail string) ([]AppointmentDetail, error) {
	patient, err := identity.ResolvePatient(ctx, s.idents, patientEmail)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return appts, nil
}

// ListForDoctor returns the caller's appointments, newest first.
func (s *Service) ListForDoctor(ctx context.Context, doctorEmail string) ([]AppointmentDetail, error) {
	doctor, err := identity.ResolveDoctor(ctx, s.idents, doctorEmail)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return appts, nil
}

// ListDoctorToday returns the caller's appointments within the current local
// day: [start of day, start of next day).
func (s *Service) ListDoctorToday(ctx context.Context, doctorEmail string) ([]AppointmentDetail, error) {
	doctor, err := identity.ResolveDoctor(ctx, s.idents, doctorEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	appts, err := s.repo.ListByDoctorBetween(ctx, doctor.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments for today: %w", err)
	}
	return appts, nil
}

// GetByID fetches any appointment. There is deliberately no ownership check:
// every authenticated caller may fetch by id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, apperr.NotFound("Appointment not found with id: %s", id)
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	return detail, nil
}

// UpdateStatus sets the appointment status on behalf of the owning doctor.
// Any status may replace any other; only ownership and the status token are
// checked.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, statusName, doctorEmail string) (*AppointmentDetail, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, apperr.NotFound("Appointment not found with id: %s", id)
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	doctor, err := identity.ResolveDoctor(ctx, s.idents, doctorEmail)
	if err != nil {
		return nil, err
	}

	if appt.DoctorID != doctor.ID {
		return nil, apperr.Forbidden("You can only update your own appointments")
	}

	status, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetStatus(ctx, appt.ID, status)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventAppointmentStatusChanged, map[string]any{
		"from": string(appt.Status),
		"to":   string(updated.Status),
	})

	return s.repo.GetDetailByID(ctx, updated.ID)
}

// logEvent records a lifecycle event; failures are logged, never surfaced.
func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Msg("marshal event payload")
		data = nil
	}

	apptID := appointmentID

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("event_type", eventType).
			Str("appointment_id", appointmentID.String()).
			Msg("insert event log")
	}
}
