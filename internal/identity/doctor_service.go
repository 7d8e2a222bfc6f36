package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

// DoctorUpdate carries optional profile fields; nil means unchanged.
type DoctorUpdate struct {
	Name            *string
	Phone           *string
	Specialization  *string
	Qualification   *string
	ExperienceYears *int
	ConsultationFee *float64
	Bio             *string
	Available       *bool
}

// DoctorService handles doctor directory queries and profile management.
type DoctorService struct {
	repo Repository
}

func NewDoctorService(repo Repository) *DoctorService {
	return &DoctorService{repo: repo}
}

func (s *DoctorService) ListAll(ctx context.Context) ([]DoctorProfile, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) ListAvailable(ctx context.Context) ([]DoctorProfile, error) {
	doctors, err := s.repo.ListAvailableDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available doctors: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	doctor, err := s.repo.GetDoctorByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, apperr.NotFound("Doctor not found with id: %s", id)
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) ListBySpecialization(ctx context.Context, specialization string) ([]DoctorProfile, error) {
	doctors, err := s.repo.ListDoctorsBySpecialization(ctx, specialization)
	if err != nil {
		return nil, fmt.Errorf("list doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) GetByEmail(ctx context.Context, email string) (*DoctorProfile, error) {
	return ResolveDoctor(ctx, s.repo, email)
}

func (s *DoctorService) UpdateAvailability(ctx context.Context, email string, available bool) (*DoctorProfile, error) {
	doctor, err := ResolveDoctor(ctx, s.repo, email)
	if err != nil {
		return nil, err
	}

	doctor.Available = available
	if err := s.repo.UpdateDoctorProfile(ctx, doctor); err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) UpdateProfile(ctx context.Context, email string, in DoctorUpdate) (*DoctorProfile, error) {
	doctor, err := ResolveDoctor(ctx, s.repo, email)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		doctor.Name = *in.Name
	}
	if in.Phone != nil {
		doctor.Phone = in.Phone
	}
	if in.Specialization != nil {
		doctor.Specialization = in.Specialization
	}
	if in.Qualification != nil {
		doctor.Qualification = in.Qualification
	}
	if in.ExperienceYears != nil {
		doctor.ExperienceYears = in.ExperienceYears
	}
	if in.ConsultationFee != nil {
		doctor.ConsultationFee = in.ConsultationFee
	}
	if in.Bio != nil {
		doctor.Bio = in.Bio
	}
	if in.Available != nil {
		doctor.Available = *in.Available
	}

	if err := s.repo.UpdateDoctorProfile(ctx, doctor); err != nil {
		return nil, fmt.Errorf("update doctor profile: %w", err)
	}
	return doctor, nil
}
