package identity

import (
	"context"
	"fmt"
)

// PatientUpdate carries optional profile fields; nil means unchanged.
type PatientUpdate struct {
	Name             *string
	Phone            *string
	Age              *int
	Gender           *string
	BloodGroup       *string
	Address          *string
	EmergencyContact *string
}

type PatientService struct {
	repo Repository
}

func NewPatientService(repo Repository) *PatientService {
	return &PatientService{repo: repo}
}

func (s *PatientService) GetProfile(ctx context.Context, email string) (*PatientProfile, error) {
	return ResolvePatient(ctx, s.repo, email)
}

func (s *PatientService) UpdateProfile(ctx context.Context, email string, in PatientUpdate) (*PatientProfile, error) {
	patient, err := ResolvePatient(ctx, s.repo, email)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		patient.Name = *in.Name
	}
	if in.Phone != nil {
		patient.Phone = in.Phone
	}
	if in.Age != nil {
		patient.Age = in.Age
	}
	if in.Gender != nil {
		g, err := NormalizeGender(*in.Gender)
		if err != nil {
			return nil, err
		}
		patient.Gender = &g
	}
	if in.BloodGroup != nil {
		patient.BloodGroup = in.BloodGroup
	}
	if in.Address != nil {
		patient.Address = in.Address
	}
	if in.EmergencyContact != nil {
		patient.EmergencyContact = in.EmergencyContact
	}

	if err := s.repo.UpdatePatientProfile(ctx, patient); err != nil {
		return nil, fmt.Errorf("update patient profile: %w", err)
	}
	return patient, nil
}
