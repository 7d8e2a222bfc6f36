package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Helpers

func scanUser(row pgx.Row) (*User, error) {
	var u User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func scanDoctorProfile(row pgx.Row) (*DoctorProfile, error) {
	var p DoctorProfile

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Specialization,
		&p.Qualification,
		&p.ExperienceYears,
		&p.ConsultationFee,
		&p.Available,
		&p.Bio,
		&p.Name,
		&p.Email,
		&p.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanPatientProfile(row pgx.Row) (*PatientProfile, error) {
	var p PatientProfile

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Age,
		&p.Gender,
		&p.BloodGroup,
		&p.Address,
		&p.EmergencyContact,
		&p.Name,
		&p.Email,
		&p.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

const doctorProfileCols = `
	d.id, d.user_id, d.specialization, d.qualification, d.experience_years,
	d.consultation_fee, d.available, d.bio, u.name, u.email, u.phone`

const patientProfileCols = `
	p.id, p.user_id, p.age, p.gender, p.blood_group, p.address,
	p.emergency_contact, u.name, u.email, u.phone`

// Interface methods

func (r *PgRepository) CreateDoctor(ctx context.Context, u *User, d *Doctor) error {
	return r.createWithProfile(ctx, u, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, user_id, specialization, qualification, experience_years, consultation_fee, available, bio)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, d.ID, u.ID, d.Specialization, d.Qualification, d.ExperienceYears, d.ConsultationFee, d.Available, d.Bio)
		return err
	})
}

func (r *PgRepository) CreatePatient(ctx context.Context, u *User, p *Patient) error {
	return r.createWithProfile(ctx, u, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, user_id, age, gender, blood_group, address, emergency_contact)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, u.ID, p.Age, p.Gender, p.BloodGroup, p.Address, p.EmergencyContact)
		return err
	})
}

func (r *PgRepository) createWithProfile(ctx context.Context, u *User, insertProfile func(context.Context, pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if err := insertProfile(ctx, tx); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *PgRepository) GetDoctorByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+doctorProfileCols+`
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`, id)
	return scanDoctorProfile(row)
}

func (r *PgRepository) GetDoctorByEmail(ctx context.Context, email string) (*DoctorProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+doctorProfileCols+`
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE u.email = $1
	`, email)
	return scanDoctorProfile(row)
}

func (r *PgRepository) GetPatientByEmail(ctx context.Context, email string) (*PatientProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientProfileCols+`
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE u.email = $1
	`, email)
	return scanPatientProfile(row)
}

func (r *PgRepository) ListDoctors(ctx context.Context) ([]DoctorProfile, error) {
	return r.queryDoctors(ctx, `
		SELECT `+doctorProfileCols+`
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		ORDER BY u.name
	`)
}

func (r *PgRepository) ListAvailableDoctors(ctx context.Context) ([]DoctorProfile, error) {
	return r.queryDoctors(ctx, `
		SELECT `+doctorProfileCols+`
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.available
		ORDER BY u.name
	`)
}

func (r *PgRepository) ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]DoctorProfile, error) {
	return r.queryDoctors(ctx, `
		SELECT `+doctorProfileCols+`
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.available AND lower(d.specialization) = lower($1)
		ORDER BY u.name
	`, specialization)
}

func (r *PgRepository) queryDoctors(ctx context.Context, sql string, args ...any) ([]DoctorProfile, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DoctorProfile
	for rows.Next() {
		p, err := scanDoctorProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) UpdateDoctorProfile(ctx context.Context, p *DoctorProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE users SET name = $2, phone = $3, updated_at = now() WHERE id = $1
	`, p.UserID, p.Name, p.Phone); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE doctors
		SET specialization = $2, qualification = $3, experience_years = $4,
		    consultation_fee = $5, available = $6, bio = $7
		WHERE id = $1
	`, p.ID, p.Specialization, p.Qualification, p.ExperienceYears, p.ConsultationFee, p.Available, p.Bio); err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) UpdatePatientProfile(ctx context.Context, p *PatientProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE users SET name = $2, phone = $3, updated_at = now() WHERE id = $1
	`, p.UserID, p.Name, p.Phone); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE patients
		SET age = $2, gender = $3, blood_group = $4, address = $5, emergency_contact = $6
		WHERE id = $1
	`, p.ID, p.Age, p.Gender, p.BloodGroup, p.Address, p.EmergencyContact); err != nil {
		return fmt.Errorf("update patient: %w", err)
	}

	return tx.Commit(ctx)
}
