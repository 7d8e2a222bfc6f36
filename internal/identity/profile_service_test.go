package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/hms-backend/internal/apperr"
)

func registerTestDoctor(t *testing.T, auth *AuthService, email, specialization string) {
	t.Helper()
	_, err := auth.Register(context.Background(), RegisterInput{
		Name:            "Dr. Test",
		Email:           email,
		Password:        "secret123",
		Role:            "DOCTOR",
		Specialization:  strPtr(specialization),
		ConsultationFee: floatPtr(500),
	})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}
}

func TestDoctorDirectory(t *testing.T) {
	repo := newMemRepository()
	auth := NewAuthService(repo, NewTokenProvider("test-secret", time.Hour))
	svc := NewDoctorService(repo)

	registerTestDoctor(t, auth, "cardio@example.com", "Cardiology")
	registerTestDoctor(t, auth, "derm@example.com", "Dermatology")

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(all))
	}

	bySpec, err := svc.ListBySpecialization(context.Background(), "cardiology")
	if err != nil {
		t.Fatalf("list by specialization: %v", err)
	}
	if len(bySpec) != 1 || bySpec[0].Email != "cardio@example.com" {
		t.Fatalf("case-insensitive specialization match failed: %+v", bySpec)
	}

	// Doctors who switch themselves off drop out of the available list.
	if _, err := svc.UpdateAvailability(context.Background(), "derm@example.com", false); err != nil {
		t.Fatalf("update availability: %v", err)
	}
	available, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	if len(available) != 1 || available[0].Email != "cardio@example.com" {
		t.Fatalf("expected only the cardiologist to remain available: %+v", available)
	}
}

func TestDoctorGetByIDNotFound(t *testing.T) {
	svc := NewDoctorService(newMemRepository())

	_, err := svc.GetByID(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDoctorUpdateProfilePartial(t *testing.T) {
	repo := newMemRepository()
	auth := NewAuthService(repo, NewTokenProvider("test-secret", time.Hour))
	svc := NewDoctorService(repo)

	registerTestDoctor(t, auth, "cardio@example.com", "Cardiology")

	updated, err := svc.UpdateProfile(context.Background(), "cardio@example.com", DoctorUpdate{
		ConsultationFee: floatPtr(750),
		Bio:             strPtr("Senior consultant"),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.ConsultationFee == nil || *updated.ConsultationFee != 750 {
		t.Errorf("fee not updated: %v", updated.ConsultationFee)
	}
	if updated.Specialization == nil || *updated.Specialization != "Cardiology" {
		t.Errorf("untouched field changed: %v", updated.Specialization)
	}
	if updated.Name != "Dr. Test" {
		t.Errorf("untouched name changed: %q", updated.Name)
	}
}

func TestDoctorProfileNotFoundForPatients(t *testing.T) {
	repo := newMemRepository()
	auth := NewAuthService(repo, NewTokenProvider("test-secret", time.Hour))
	svc := NewDoctorService(repo)

	_, err := auth.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "PATIENT",
	})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}

	_, err = svc.GetByEmail(context.Background(), "alice@example.com")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for patient email, got %v", err)
	}
}

func TestPatientUpdateProfile(t *testing.T) {
	repo := newMemRepository()
	auth := NewAuthService(repo, NewTokenProvider("test-secret", time.Hour))
	svc := NewPatientService(repo)

	_, err := auth.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "PATIENT",
		Age: intPtr(30),
	})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), "alice@example.com", PatientUpdate{
		Gender:     strPtr("female"),
		BloodGroup: strPtr("O+"),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Gender == nil || *updated.Gender != "FEMALE" {
		t.Errorf("gender not normalized: %v", updated.Gender)
	}
	if updated.Age == nil || *updated.Age != 30 {
		t.Errorf("untouched age changed: %v", updated.Age)
	}

	_, err = svc.UpdateProfile(context.Background(), "alice@example.com", PatientUpdate{
		Gender: strPtr("banana"),
	})
	if !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid gender, got %v", err)
	}
}
