package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// ParseRole accepts the role token case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(s)) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	default:
		return "", apperr.Invalid("Role must be PATIENT or DOCTOR")
	}
}

var genders = map[string]bool{"MALE": true, "FEMALE": true, "OTHER": true}

// NormalizeGender uppercases and validates an optional gender token.
func NormalizeGender(s string) (string, error) {
	g := strings.ToUpper(s)
	if !genders[g] {
		return "", apperr.Invalid("Gender must be MALE, FEMALE or OTHER")
	}
	return g, nil
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Doctor struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Specialization  *string
	Qualification   *string
	ExperienceYears *int
	ConsultationFee *float64
	Available       bool
	Bio             *string
}

type Patient struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Age              *int
	Gender           *string
	BloodGroup       *string
	Address          *string
	EmergencyContact *string
}

// DoctorProfile is a Doctor hydrated with the fields of its User row.
type DoctorProfile struct {
	Doctor
	Name  string
	Email string
	Phone *string
}

// PatientProfile is a Patient hydrated with the fields of its User row.
type PatientProfile struct {
	Patient
	Name  string
	Email string
	Phone *string
}
