package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

type Method string

const (
	MethodCard       Method = "CARD"
	MethodUPI        Method = "UPI"
	MethodCash       Method = "CASH"
	MethodNetBanking Method = "NET_BANKING"
)

// ParseMethod accepts the payment method token case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(s)) {
	case MethodCard:
		return MethodCard, nil
	case MethodUPI:
		return MethodUPI, nil
	case MethodCash:
		return MethodCash, nil
	case MethodNetBanking:
		return MethodNetBanking, nil
	default:
		return "", apperr.Invalid("Invalid payment method: %s", s)
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	Amount        float64
	Method        Method
	Status        PaymentStatus
	TransactionID string
	PaidAt        time.Time
}

// PaymentDetail is a Payment hydrated with the names the API responses carry.
type PaymentDetail struct {
	Payment
	DoctorName  string
	PatientName string
}
