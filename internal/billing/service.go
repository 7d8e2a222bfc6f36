package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/apperr"
	redisclient "github.com/careloop/hms-backend/internal/redis"
	"github.com/careloop/hms-backend/internal/scheduling"
)

const EventPaymentRecorded = "PAYMENT_RECORDED"

// Service records payments for appointments. There is no gateway behind it;
// a payment is written as COMPLETED immediately.
type Service struct {
	repo   Repository
	appts  scheduling.Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewService(repo Repository, appts scheduling.Repository, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		appts:  appts,
		locker: locker,
		log:    log,
	}
}

// MakePayment records the one payment an appointment may ever have.
func (s *Service) MakePayment(ctx context.Context, appointmentID uuid.UUID, amount float64, methodName string) (*PaymentDetail, error) {
	if amount <= 0 {
		return nil, apperr.Invalid("Amount must be greater than zero")
	}

	method, err := ParseMethod(methodName)
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

	if !appt.Status.CanBill() {
		return nil, apperr.Invalid("Payment can only be made for confirmed or completed appointments")
	}

	payment := &Payment{
		ID:            uuid.New(),
		AppointmentID: appt.ID,
		Amount:        amount,
		Method:        method,
		Status:        PaymentCompleted,
		TransactionID: NewTransactionID(),
	}

	err = s.locker.WithAppointmentLock(ctx, appt.ID, func(lockCtx context.Context) error {
		exists, err := s.repo.ExistsForAppointment(lockCtx, appt.ID)
		if err != nil {
			return fmt.Errorf("check existing payment: %w", err)
		}
		if exists {
			return apperr.Conflict("Payment has already been made for this appointment")
		}

		return s.repo.Create(lockCtx, payment)
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) || errors.Is(err, ErrPaymentExists) {
			return nil, apperr.Conflict("Payment has already been made for this appointment")
		}
		return nil, err
	}

	s.logEvent(ctx, appt.ID, payment)

	return s.repo.GetDetailByAppointment(ctx, appt.ID)
}

// GetByAppointment returns the payment attached to an appointment.
func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PaymentDetail, error) {
	detail, err := s.repo.GetDetailByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, apperr.NotFound("Payment not found for appointment id: %s", appointmentID)
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}
	return detail, nil
}

// NewTransactionID builds the display identifier for a payment. Uniqueness is
// enforced by the transaction_id constraint, not by this token.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, p *Payment) {
	apptID := appointmentID
	payload := fmt.Sprintf(`{"payment_id":%q,"transaction_id":%q}`, p.ID, p.TransactionID)

	ev := scheduling.EventLog{
		EventType:     EventPaymentRecorded,
		AppointmentID: &apptID,
		Payload:       []byte(payload),
	}

	if err := s.appts.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("appointment_id", appointmentID.String()).
			Msg("insert payment event")
	}
}
