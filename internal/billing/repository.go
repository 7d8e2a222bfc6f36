package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentExists   = errors.New("payment already exists for appointment")
)

// Repository contains all DB interactions needed by the payment service.
type Repository interface {
	ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
	Create(ctx context.Context, p *Payment) error
	GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PaymentDetail, error)
}
