package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
	"github.com/careloop/hms-backend/internal/billing"
	"github.com/careloop/hms-backend/internal/clinical"
	"github.com/careloop/hms-backend/internal/identity"
	"github.com/careloop/hms-backend/internal/scheduling"
)

// Requests

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`

	Age              *int    `json:"age"`
	Gender           *string `json:"gender"`
	BloodGroup       *string `json:"bloodGroup"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`

	Specialization  *string  `json:"specialization"`
	Qualification   *string  `json:"qualification"`
	ExperienceYears *int     `json:"experienceYears"`
	ConsultationFee *float64 `json:"consultationFee"`
	Bio             *string  `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BookAppointmentRequest struct {
	DoctorID            string `json:"doctorId"`
	AppointmentDateTime string `json:"appointmentDateTime"`
	Reason              string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateDoctorProfileRequest struct {
	Name            *string  `json:"name"`
	Phone           *string  `json:"phone"`
	Specialization  *string  `json:"specialization"`
	Qualification   *string  `json:"qualification"`
	ExperienceYears *int     `json:"experienceYears"`
	ConsultationFee *float64 `json:"consultationFee"`
	Bio             *string  `json:"bio"`
	Available       *bool    `json:"available"`
}

type UpdateAvailabilityRequest struct {
	Available *bool `json:"available"`
}

type UpdatePatientProfileRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Age              *int    `json:"age"`
	Gender           *string `json:"gender"`
	BloodGroup       *string `json:"bloodGroup"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
}

type PaymentRequest struct {
	AppointmentID string  `json:"appointmentId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

type PrescriptionRequest struct {
	AppointmentID string  `json:"appointmentId"`
	Diagnosis     string  `json:"diagnosis"`
	Medications   string  `json:"medications"`
	Notes         *string `json:"notes"`
}

// Responses

type AuthResponse struct {
	Token  string    `json:"token"`
	Type   string    `json:"type"`
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

type AppointmentResponse struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patientId"`
	PatientName          string    `json:"patientName"`
	DoctorID             uuid.UUID `json:"doctorId"`
	DoctorName           string    `json:"doctorName"`
	DoctorSpecialization *string   `json:"doctorSpecialization"`
	AppointmentDateTime  time.Time `json:"appointmentDateTime"`
	Status               string    `json:"status"`
	Reason               string    `json:"reason"`
	Notes                *string   `json:"notes"`
	ConsultationFee      *float64  `json:"consultationFee"`
	CreatedAt            time.Time `json:"createdAt"`
	HasPrescription      bool      `json:"hasPrescription"`
	HasPayment           bool      `json:"hasPayment"`
}

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	Specialization  *string   `json:"specialization"`
	Qualification   *string   `json:"qualification"`
	ExperienceYears *int      `json:"experienceYears"`
	ConsultationFee *float64  `json:"consultationFee"`
	Available       bool      `json:"available"`
	Bio             *string   `json:"bio"`
}

type PatientResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone"`
	Age              *int      `json:"age"`
	Gender           *string   `json:"gender"`
	BloodGroup       *string   `json:"bloodGroup"`
	Address          *string   `json:"address"`
	EmergencyContact *string   `json:"emergencyContact"`
}

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointmentId"`
	DoctorName    string    `json:"doctorName"`
	PatientName   string    `json:"patientName"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

type PrescriptionResponse struct {
	ID                   uuid.UUID `json:"id"`
	AppointmentID        uuid.UUID `json:"appointmentId"`
	DoctorName           string    `json:"doctorName"`
	DoctorSpecialization *string   `json:"doctorSpecialization"`
	PatientName          string    `json:"patientName"`
	Diagnosis            string    `json:"diagnosis"`
	Medications          string    `json:"medications"`
	Notes                *string   `json:"notes"`
	IssuedAt             time.Time `json:"issuedAt"`
	AppointmentDateTime  time.Time `json:"appointmentDateTime"`
}

// Mappers

func toAuthResponse(r *identity.AuthResult) AuthResponse {
	return AuthResponse{
		Token:  r.Token,
		Type:   "Bearer",
		UserID: r.UserID,
		Name:   r.Name,
		Email:  r.Email,
		Role:   string(r.Role),
	}
}

func toAppointmentResponse(d *scheduling.AppointmentDetail) AppointmentResponse {
	return AppointmentResponse{
		ID:                   d.ID,
		PatientID:            d.PatientID,
		PatientName:          d.PatientName,
		DoctorID:             d.DoctorID,
		DoctorName:           d.DoctorName,
		DoctorSpecialization: d.DoctorSpecialization,
		AppointmentDateTime:  d.DateTime,
		Status:               string(d.Status),
		Reason:               d.Reason,
		Notes:                d.Notes,
		ConsultationFee:      d.ConsultationFee,
		CreatedAt:            d.CreatedAt,
		HasPrescription:      d.HasPrescription,
		HasPayment:           d.HasPayment,
	}
}

func toAppointmentResponses(list []scheduling.AppointmentDetail) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAppointmentResponse(&list[i]))
	}
	return out
}

func toDoctorResponse(p *identity.DoctorProfile) DoctorResponse {
	return DoctorResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Specialization:  p.Specialization,
		Qualification:   p.Qualification,
		ExperienceYears: p.ExperienceYears,
		ConsultationFee: p.ConsultationFee,
		Available:       p.Available,
		Bio:             p.Bio,
	}
}

func toDoctorResponses(list []identity.DoctorProfile) []DoctorResponse {
	out := make([]DoctorResponse, 0, len(list))
	for i := range list {
		out = append(out, toDoctorResponse(&list[i]))
	}
	return out
}

func toPatientResponse(p *identity.PatientProfile) PatientResponse {
	return PatientResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		Age:              p.Age,
		Gender:           p.Gender,
		BloodGroup:       p.BloodGroup,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
	}
}

func toPaymentResponse(d *billing.PaymentDetail) PaymentResponse {
	return PaymentResponse{
		ID:            d.ID,
		AppointmentID: d.AppointmentID,
		DoctorName:    d.DoctorName,
		PatientName:   d.PatientName,
		Amount:        d.Amount,
		PaymentMethod: string(d.Method),
		Status:        string(d.Status),
		TransactionID: d.TransactionID,
		PaidAt:        d.PaidAt,
	}
}

func toPrescriptionResponse(d *clinical.PrescriptionDetail) PrescriptionResponse {
	return PrescriptionResponse{
		ID:                   d.ID,
		AppointmentID:        d.AppointmentID,
		DoctorName:           d.DoctorName,
		DoctorSpecialization: d.DoctorSpecialization,
		PatientName:          d.PatientName,
		Diagnosis:            d.Diagnosis,
		Medications:          d.Medications,
		Notes:                d.Notes,
		IssuedAt:             d.IssuedAt,
		AppointmentDateTime:  d.AppointmentDateTime,
	}
}

func toPrescriptionResponses(list []clinical.PrescriptionDetail) []PrescriptionResponse {
	out := make([]PrescriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, toPrescriptionResponse(&list[i]))
	}
	return out
}

// parseDateTime accepts RFC3339 or a zoneless timestamp interpreted in
// server-local time.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Invalid("appointmentDateTime must be an ISO-8601 timestamp")
}
