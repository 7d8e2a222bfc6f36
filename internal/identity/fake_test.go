package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// memRepository is an in-memory Repository used by the service tests.
type memRepository struct {
	mu       sync.Mutex
	users    map[string]*User // keyed by email
	doctors  map[uuid.UUID]*DoctorProfile
	patients map[uuid.UUID]*PatientProfile
}

func newMemRepository() *memRepository {
	return &memRepository{
		users:    make(map[string]*User),
		doctors:  make(map[uuid.UUID]*DoctorProfile),
		patients: make(map[uuid.UUID]*PatientProfile),
	}
}

func (m *memRepository) CreateDoctor(ctx context.Context, u *User, d *Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return ErrEmailTaken
	}
	m.users[u.Email] = u
	m.doctors[d.ID] = &DoctorProfile{Doctor: *d, Name: u.Name, Email: u.Email, Phone: u.Phone}
	return nil
}

func (m *memRepository) CreatePatient(ctx context.Context, u *User, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return ErrEmailTaken
	}
	m.users[u.Email] = u
	m.patients[p.ID] = &PatientProfile{Patient: *p, Name: u.Name, Email: u.Email, Phone: u.Phone}
	return nil
}

func (m *memRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepository) GetDoctorByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memRepository) GetDoctorByEmail(ctx context.Context, email string) (*DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (m *memRepository) GetPatientByEmail(ctx context.Context, email string) (*PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (m *memRepository) ListDoctors(ctx context.Context) ([]DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DoctorProfile, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (m *memRepository) ListAvailableDoctors(ctx context.Context) ([]DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DoctorProfile
	for _, d := range m.doctors {
		if d.Available {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memRepository) ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DoctorProfile
	for _, d := range m.doctors {
		if !d.Available || d.Specialization == nil {
			continue
		}
		if strings.EqualFold(*d.Specialization, specialization) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memRepository) UpdateDoctorProfile(ctx context.Context, p *DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[p.ID]; !ok {
		return ErrDoctorNotFound
	}
	cp := *p
	m.doctors[p.ID] = &cp
	if u, ok := m.users[p.Email]; ok {
		u.Name = p.Name
		u.Phone = p.Phone
	}
	return nil
}

func (m *memRepository) UpdatePatientProfile(ctx context.Context, p *PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[p.ID]; !ok {
		return ErrPatientNotFound
	}
	cp := *p
	m.patients[p.ID] = &cp
	if u, ok := m.users[p.Email]; ok {
		u.Name = p.Name
		u.Phone = p.Phone
	}
	return nil
}
