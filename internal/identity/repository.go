package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Repository contains all DB interactions needed by the identity services.
type Repository interface {
	// CreateDoctor and CreatePatient insert the user row and the profile row
	// in one transaction.
	CreateDoctor(ctx context.Context, u *User, d *Doctor) error
	CreatePatient(ctx context.Context, u *User, p *Patient) error

	GetUserByEmail(ctx context.Context, email string) (*User, error)

	GetDoctorByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error)
	GetDoctorByEmail(ctx context.Context, email string) (*DoctorProfile, error)
	GetPatientByEmail(ctx context.Context, email string) (*PatientProfile, error)

	ListDoctors(ctx context.Context) ([]DoctorProfile, error)
	ListAvailableDoctors(ctx context.Context) ([]DoctorProfile, error)
	// ListDoctorsBySpecialization matches case-insensitively and returns
	// available doctors only.
	ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]DoctorProfile, error)

	// Profile updates touch both the users row and the profile row in one
	// transaction.
	UpdateDoctorProfile(ctx context.Context, p *DoctorProfile) error
	UpdatePatientProfile(ctx context.Context, p *PatientProfile) error
}

// ResolveDoctor maps an authenticated email to the caller's own doctor
// profile. All services go through this instead of re-deriving the lookup.
func ResolveDoctor(ctx context.Context, r Repository, email string) (*DoctorProfile, error) {
	p, err := r.GetDoctorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrDoctorNotFound) {
			return nil, apperr.NotFound("Doctor profile not found")
		}
		return nil, err
	}
	return p, nil
}

// ResolvePatient maps an authenticated email to the caller's own patient
// profile.
func ResolvePatient(ctx context.Context, r Repository, email string) (*PatientProfile, error) {
	p, err := r.GetPatientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrPatientNotFound) {
			return nil, apperr.NotFound("Patient profile not found")
		}
		return nil, err
	}
	return p, nil
}
