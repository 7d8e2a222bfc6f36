package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/billing"
	"github.com/careloop/hms-backend/internal/clinical"
	"github.com/careloop/hms-backend/internal/identity"
	"github.com/careloop/hms-backend/internal/scheduling"
)

// memDB backs all four repositories for the router tests.
type memDB struct {
	mu       sync.Mutex
	users    map[string]*identity.User // keyed by email
	doctors  map[uuid.UUID]*identity.DoctorProfile
	patients map[uuid.UUID]*identity.PatientProfile
	appts    map[uuid.UUID]*scheduling.Appointment
	rxs      map[uuid.UUID]*clinical.Prescription // keyed by appointment id
	payments map[uuid.UUID]*billing.Payment       // keyed by appointment id
	events   []scheduling.EventLog
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]*identity.User),
		doctors:  make(map[uuid.UUID]*identity.DoctorProfile),
		patients: make(map[uuid.UUID]*identity.PatientProfile),
		appts:    make(map[uuid.UUID]*scheduling.Appointment),
		rxs:      make(map[uuid.UUID]*clinical.Prescription),
		payments: make(map[uuid.UUID]*billing.Payment),
	}
}

// identityStore

type identityStore struct{ db *memDB }

func (s *identityStore) CreateDoctor(ctx context.Context, u *identity.User, d *identity.Doctor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[u.Email]; ok {
		return identity.ErrEmailTaken
	}
	s.db.users[u.Email] = u
	s.db.doctors[d.ID] = &identity.DoctorProfile{Doctor: *d, Name: u.Name, Email: u.Email, Phone: u.Phone}
	return nil
}

func (s *identityStore) CreatePatient(ctx context.Context, u *identity.User, p *identity.Patient) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[u.Email]; ok {
		return identity.ErrEmailTaken
	}
	s.db.users[u.Email] = u
	s.db.patients[p.ID] = &identity.PatientProfile{Patient: *p, Name: u.Name, Email: u.Email, Phone: u.Phone}
	return nil
}

func (s *identityStore) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[email]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *identityStore) GetDoctorByID(ctx context.Context, id uuid.UUID) (*identity.DoctorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	d, ok := s.db.doctors[id]
	if !ok {
		return nil, identity.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *identityStore) GetDoctorByEmail(ctx context.Context, email string) (*identity.DoctorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, d := range s.db.doctors {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, identity.ErrDoctorNotFound
}

func (s *identityStore) GetPatientByEmail(ctx context.Context, email string) (*identity.PatientProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.patients {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, identity.ErrPatientNotFound
}

func (s *identityStore) ListDoctors(ctx context.Context) ([]identity.DoctorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]identity.DoctorProfile, 0, len(s.db.doctors))
	for _, d := range s.db.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (s *identityStore) ListAvailableDoctors(ctx context.Context) ([]identity.DoctorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []identity.DoctorProfile
	for _, d := range s.db.doctors {
		if d.Available {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *identityStore) ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]identity.DoctorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []identity.DoctorProfile
	for _, d := range s.db.doctors {
		if d.Available && d.Specialization != nil && strings.EqualFold(*d.Specialization, specialization) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *identityStore) UpdateDoctorProfile(ctx context.Context, p *identity.DoctorProfile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.doctors[p.ID]; !ok {
		return identity.ErrDoctorNotFound
	}
	cp := *p
	s.db.doctors[p.ID] = &cp
	return nil
}

func (s *identityStore) UpdatePatientProfile(ctx context.Context, p *identity.PatientProfile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.patients[p.ID]; !ok {
		return identity.ErrPatientNotFound
	}
	cp := *p
	s.db.patients[p.ID] = &cp
	return nil
}

// schedulingStore

type schedulingStore struct{ db *memDB }

func (s *schedulingStore) Create(ctx context.Context, a *scheduling.Appointment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	s.db.appts[a.ID] = &cp
	return nil
}

func (s *schedulingStore) GetByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appts[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

// detailLocked hydrates an appointment the way the SQL detail query does.
// Caller holds db.mu.
func (s *schedulingStore) detailLocked(a *scheduling.Appointment) scheduling.AppointmentDetail {
	d := scheduling.AppointmentDetail{Appointment: *a}
	if doc, ok := s.db.doctors[a.DoctorID]; ok {
		d.DoctorName = doc.Name
		d.DoctorSpecialization = doc.Specialization
		d.ConsultationFee = doc.ConsultationFee
	}
	if pat, ok := s.db.patients[a.PatientID]; ok {
		d.PatientName = pat.Name
	}
	_, d.HasPrescription = s.db.rxs[a.ID]
	_, d.HasPayment = s.db.payments[a.ID]
	return d
}

func (s *schedulingStore) GetDetailByID(ctx context.Context, id uuid.UUID) (*scheduling.AppointmentDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appts[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	d := s.detailLocked(a)
	return &d, nil
}

func (s *schedulingStore) listLocked(filter func(*scheduling.Appointment) bool) []scheduling.AppointmentDetail {
	var out []scheduling.AppointmentDetail
	for _, a := range s.db.appts {
		if filter(a) {
			out = append(out, s.detailLocked(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out
}

func (s *schedulingStore) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]scheduling.AppointmentDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.listLocked(func(a *scheduling.Appointment) bool { return a.PatientID == patientID }), nil
}

func (s *schedulingStore) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]scheduling.AppointmentDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.listLocked(func(a *scheduling.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (s *schedulingStore) ListByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]scheduling.AppointmentDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.listLocked(func(a *scheduling.Appointment) bool {
		return a.DoctorID == doctorID && !a.DateTime.Before(from) && a.DateTime.Before(to)
	}), nil
}

func (s *schedulingStore) SetStatus(ctx context.Context, id uuid.UUID, to scheduling.Status) (*scheduling.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appts[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (s *schedulingStore) InsertEvent(ctx context.Context, ev scheduling.EventLog) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.events = append(s.db.events, ev)
	return nil
}

// clinicalStore

type clinicalStore struct{ db *memDB }

func (s *clinicalStore) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.rxs[appointmentID]
	return ok, nil
}

func (s *clinicalStore) CreateIssued(ctx context.Context, rx *clinical.Prescription, completeAppointment bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.rxs[rx.AppointmentID]; ok {
		return clinical.ErrPrescriptionExists
	}
	rx.IssuedAt = time.Now()
	cp := *rx
	s.db.rxs[rx.AppointmentID] = &cp
	if completeAppointment {
		if a, ok := s.db.appts[rx.AppointmentID]; ok {
			a.Status = scheduling.StatusCompleted
		}
	}
	return nil
}

func (s *clinicalStore) rxDetailLocked(rx *clinical.Prescription) clinical.PrescriptionDetail {
	d := clinical.PrescriptionDetail{Prescription: *rx}
	if doc, ok := s.db.doctors[rx.DoctorID]; ok {
		d.DoctorName = doc.Name
		d.DoctorSpecialization = doc.Specialization
	}
	if pat, ok := s.db.patients[rx.PatientID]; ok {
		d.PatientName = pat.Name
	}
	if a, ok := s.db.appts[rx.AppointmentID]; ok {
		d.AppointmentDateTime = a.DateTime
	}
	return d
}

func (s *clinicalStore) GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*clinical.PrescriptionDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	rx, ok := s.db.rxs[appointmentID]
	if !ok {
		return nil, clinical.ErrPrescriptionNotFound
	}
	d := s.rxDetailLocked(rx)
	return &d, nil
}

func (s *clinicalStore) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]clinical.PrescriptionDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []clinical.PrescriptionDetail
	for _, rx := range s.db.rxs {
		if rx.PatientID == patientID {
			out = append(out, s.rxDetailLocked(rx))
		}
	}
	return out, nil
}

func (s *clinicalStore) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]clinical.PrescriptionDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []clinical.PrescriptionDetail
	for _, rx := range s.db.rxs {
		if rx.DoctorID == doctorID {
			out = append(out, s.rxDetailLocked(rx))
		}
	}
	return out, nil
}

// billingStore

type billingStore struct{ db *memDB }

func (s *billingStore) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.payments[appointmentID]
	return ok, nil
}

func (s *billingStore) Create(ctx context.Context, p *billing.Payment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.payments[p.AppointmentID]; ok {
		return billing.ErrPaymentExists
	}
	p.PaidAt = time.Now()
	cp := *p
	s.db.payments[p.AppointmentID] = &cp
	return nil
}

func (s *billingStore) GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*billing.PaymentDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.payments[appointmentID]
	if !ok {
		return nil, billing.ErrPaymentNotFound
	}
	d := billing.PaymentDetail{Payment: *p}
	if a, ok := s.db.appts[appointmentID]; ok {
		if doc, ok := s.db.doctors[a.DoctorID]; ok {
			d.DoctorName = doc.Name
		}
		if pat, ok := s.db.patients[a.PatientID]; ok {
			d.PatientName = pat.Name
		}
	}
	return &d, nil
}

type noopLocker struct{}

func (noopLocker) WithAppointmentLock(ctx context.Context, appointmentID uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestRouter() http.Handler {
	db := newMemDB()
	idents := &identityStore{db: db}
	appts := &schedulingStore{db: db}
	rxs := &clinicalStore{db: db}
	pays := &billingStore{db: db}

	log := zerolog.Nop()
	tokens := identity.NewTokenProvider("test-secret", time.Hour)
	locker := noopLocker{}

	return NewRouter(RouterConfig{
		Auth:          identity.NewAuthService(idents, tokens),
		Doctors:       identity.NewDoctorService(idents),
		Patients:      identity.NewPatientService(idents),
		Appointments:  scheduling.NewService(appts, idents, log),
		Prescriptions: clinical.NewService(rxs, appts, idents, locker, log),
		Payments:      billing.NewService(pays, appts, locker, log),
		Tokens:        tokens,
		Log:           log,
		Env:           "test",
		Version:       "test",
	})
}

type testEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues a request against the router and decodes the envelope data into
// out when the status matches.
func do(t *testing.T, h http.Handler, method, path, token string, body any, wantStatus int, out any) testEnvelope {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		t.Fatalf("%s %s: status %d, want %d: %s", method, path, rec.Code, wantStatus, rec.Body.String())
	}

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v: %s", method, path, err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v: %s", method, path, err, env.Data)
		}
	}
	return env
}

func registerUser(t *testing.T, h http.Handler, body map[string]any) AuthResponse {
	t.Helper()
	var auth AuthResponse
	do(t, h, http.MethodPost, "/api/auth/register", "", body, http.StatusCreated, &auth)
	return auth
}

func TestPatientJourney(t *testing.T) {
	h := newTestRouter()

	doctor := registerUser(t, h, map[string]any{
		"name":            "Dr. House",
		"email":           "house@example.com",
		"password":        "secret123",
		"role":            "DOCTOR",
		"specialization":  "Cardiology",
		"consultationFee": 500.0,
	})
	patient := registerUser(t, h, map[string]any{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "secret123",
		"role":     "PATIENT",
		"age":      42,
	})

	var doctorProfile DoctorResponse
	do(t, h, http.MethodGet, "/api/doctors/profile", doctor.Token, nil, http.StatusOK, &doctorProfile)

	// Book for tomorrow; new appointments start PENDING.
	var appt AppointmentResponse
	do(t, h, http.MethodPost, "/api/appointments", patient.Token, map[string]any{
		"doctorId":            doctorProfile.ID.String(),
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "chest pain",
	}, http.StatusCreated, &appt)
	if appt.Status != "PENDING" {
		t.Fatalf("new appointment status = %s, want PENDING", appt.Status)
	}
	if appt.HasPrescription || appt.HasPayment {
		t.Error("fresh appointment should have no prescription or payment")
	}
	if appt.ConsultationFee == nil || *appt.ConsultationFee != 500 {
		t.Errorf("consultation fee = %v, want 500", appt.ConsultationFee)
	}

	// Paying a PENDING appointment is rejected.
	do(t, h, http.MethodPost, "/api/payments", patient.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"amount":        500.0,
		"paymentMethod": "CARD",
	}, http.StatusBadRequest, nil)

	// Doctor confirms.
	var confirmed AppointmentResponse
	do(t, h, http.MethodPut, "/api/appointments/"+appt.ID.String()+"/status", doctor.Token, map[string]any{
		"status": "confirmed",
	}, http.StatusOK, &confirmed)
	if confirmed.Status != "CONFIRMED" {
		t.Fatalf("status = %s, want CONFIRMED", confirmed.Status)
	}

	// Patient pays; the payment is written COMPLETED with a TXN id.
	var payment PaymentResponse
	do(t, h, http.MethodPost, "/api/payments", patient.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"amount":        500.0,
		"paymentMethod": "CARD",
	}, http.StatusCreated, &payment)
	if payment.Status != "COMPLETED" {
		t.Errorf("payment status = %s, want COMPLETED", payment.Status)
	}
	if !strings.HasPrefix(payment.TransactionID, "TXN-") {
		t.Errorf("transaction id %q missing TXN- prefix", payment.TransactionID)
	}

	// Second payment for the same appointment is rejected.
	do(t, h, http.MethodPost, "/api/payments", patient.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"amount":        500.0,
		"paymentMethod": "CARD",
	}, http.StatusBadRequest, nil)

	// Doctor prescribes; this completes the appointment.
	var rx PrescriptionResponse
	do(t, h, http.MethodPost, "/api/prescriptions", doctor.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"diagnosis":     "angina",
		"medications":   "aspirin 75mg",
	}, http.StatusCreated, &rx)
	if rx.Diagnosis != "angina" {
		t.Errorf("diagnosis = %q", rx.Diagnosis)
	}

	var after AppointmentResponse
	do(t, h, http.MethodGet, "/api/appointments/"+appt.ID.String(), patient.Token, nil, http.StatusOK, &after)
	if after.Status != "COMPLETED" {
		t.Errorf("appointment status = %s, want COMPLETED after prescription", after.Status)
	}
	if !after.HasPrescription || !after.HasPayment {
		t.Error("appointment should show prescription and payment")
	}

	// Second prescription for the same appointment is rejected.
	do(t, h, http.MethodPost, "/api/prescriptions", doctor.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"diagnosis":     "angina",
		"medications":   "aspirin 75mg",
	}, http.StatusBadRequest, nil)

	// Both sides can read back their records.
	var rxs []PrescriptionResponse
	do(t, h, http.MethodGet, "/api/prescriptions/patient", patient.Token, nil, http.StatusOK, &rxs)
	if len(rxs) != 1 {
		t.Errorf("expected 1 prescription for patient, got %d", len(rxs))
	}

	var paid PaymentResponse
	do(t, h, http.MethodGet, "/api/payments/appointment/"+appt.ID.String(), patient.Token, nil, http.StatusOK, &paid)
	if paid.TransactionID != payment.TransactionID {
		t.Errorf("payment read back mismatch: %q vs %q", paid.TransactionID, payment.TransactionID)
	}

	var todays []AppointmentResponse
	do(t, h, http.MethodGet, "/api/appointments/doctor/today", doctor.Token, nil, http.StatusOK, &todays)
	if len(todays) != 0 {
		t.Errorf("tomorrow's appointment should not be in today's list, got %d", len(todays))
	}
}

func TestAuthAndRoleGuards(t *testing.T) {
	h := newTestRouter()

	doctor := registerUser(t, h, map[string]any{
		"name": "Dr. House", "email": "house@example.com", "password": "secret123", "role": "DOCTOR",
	})
	patient := registerUser(t, h, map[string]any{
		"name": "John Doe", "email": "john@example.com", "password": "secret123", "role": "PATIENT",
	})

	// Duplicate registration.
	do(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "John Again", "email": "john@example.com", "password": "secret123", "role": "PATIENT",
	}, http.StatusBadRequest, nil)

	// Bad credentials.
	do(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "john@example.com", "password": "wrong",
	}, http.StatusUnauthorized, nil)

	// Missing and malformed tokens.
	do(t, h, http.MethodGet, "/api/patients/profile", "", nil, http.StatusUnauthorized, nil)
	do(t, h, http.MethodGet, "/api/patients/profile", "not-a-token", nil, http.StatusUnauthorized, nil)

	// Role mismatches on route guards.
	env := do(t, h, http.MethodGet, "/api/doctors/profile", patient.Token, nil, http.StatusForbidden, nil)
	if env.Message != "Access denied" {
		t.Errorf("message = %q, want Access denied", env.Message)
	}
	do(t, h, http.MethodGet, "/api/patients/profile", doctor.Token, nil, http.StatusForbidden, nil)
	do(t, h, http.MethodPost, "/api/appointments", doctor.Token, map[string]any{
		"doctorId":            uuid.NewString(),
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "x",
	}, http.StatusForbidden, nil)

	// Public directory needs no token.
	var doctors []DoctorResponse
	do(t, h, http.MethodGet, "/api/doctors", "", nil, http.StatusOK, &doctors)
	if len(doctors) != 1 {
		t.Errorf("expected 1 doctor in directory, got %d", len(doctors))
	}
}

func TestValidationErrors(t *testing.T) {
	h := newTestRouter()

	doctor := registerUser(t, h, map[string]any{
		"name": "Dr. House", "email": "house@example.com", "password": "secret123", "role": "DOCTOR",
	})
	patient := registerUser(t, h, map[string]any{
		"name": "John Doe", "email": "john@example.com", "password": "secret123", "role": "PATIENT",
	})

	var doctorProfile DoctorResponse
	do(t, h, http.MethodGet, "/api/doctors/profile", doctor.Token, nil, http.StatusOK, &doctorProfile)

	// Unknown doctor id on booking.
	do(t, h, http.MethodPost, "/api/appointments", patient.Token, map[string]any{
		"doctorId":            uuid.NewString(),
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "x",
	}, http.StatusNotFound, nil)

	// Malformed doctor id.
	do(t, h, http.MethodPost, "/api/appointments", patient.Token, map[string]any{
		"doctorId":            "not-a-uuid",
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "x",
	}, http.StatusBadRequest, nil)

	// Past appointment date.
	do(t, h, http.MethodPost, "/api/appointments", patient.Token, map[string]any{
		"doctorId":            doctorProfile.ID.String(),
		"appointmentDateTime": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"reason":              "x",
	}, http.StatusBadRequest, nil)

	// Unparseable body.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status %d, want 400", rec.Code)
	}

	// Unknown appointment lookup.
	do(t, h, http.MethodGet, "/api/appointments/"+uuid.NewString(), patient.Token, nil, http.StatusNotFound, nil)

	// Unknown status token.
	var appt AppointmentResponse
	do(t, h, http.MethodPost, "/api/appointments", patient.Token, map[string]any{
		"doctorId":            doctorProfile.ID.String(),
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "x",
	}, http.StatusCreated, &appt)
	do(t, h, http.MethodPut, "/api/appointments/"+appt.ID.String()+"/status", doctor.Token, map[string]any{
		"status": "SHIPPED",
	}, http.StatusBadRequest, nil)
}

func TestEnvelopeShape(t *testing.T) {
	h := newTestRouter()

	registerUser(t, h, map[string]any{
		"name": "Dr. House", "email": "house@example.com", "password": "secret123", "role": "DOCTOR",
	})

	env := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "house@example.com", "password": "secret123",
	}, http.StatusOK, nil)
	if env.Message == "" {
		t.Error("success responses carry a message")
	}
	if len(env.Data) == 0 {
		t.Error("success responses carry data")
	}

	env = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "house@example.com", "password": "wrong",
	}, http.StatusUnauthorized, nil)
	if env.Message != "Invalid email or password" {
		t.Errorf("error message = %q", env.Message)
	}
	if len(env.Data) != 0 {
		t.Errorf("error responses carry no data, got %s", env.Data)
	}
}
