package clinical

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

func scanDetail(row pgx.Row) (*PrescriptionDetail, error) {
	var d PrescriptionDetail

	err := row.Scan(
		&d.ID,
		&d.AppointmentID,
		&d.DoctorID,
		&d.PatientID,
		&d.Diagnosis,
		&d.Medications,
		&d.Notes,
		&d.IssuedAt,
		&d.DoctorName,
		&d.DoctorSpecialization,
		&d.PatientName,
		&d.AppointmentDateTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}

	return &d, nil
}

const detailQuery = `
	SELECT rx.id, rx.appointment_id, rx.doctor_id, rx.patient_id, rx.diagnosis,
	       rx.medications, rx.notes, rx.issued_at,
	       du.name, d.specialization, pu.name, a.date_time
	FROM prescriptions rx
	JOIN appointments a ON a.id = rx.appointment_id
	JOIN doctors d ON d.id = rx.doctor_id
	JOIN users du ON du.id = d.user_id
	JOIN patients p ON p.id = rx.patient_id
	JOIN users pu ON pu.id = p.user_id`

func (r *PgRepository) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM prescriptions WHERE appointment_id = $1)
	`, appointmentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) CreateIssued(ctx context.Context, rx *Prescription, completeAppointment bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO prescriptions (id, appointment_id, doctor_id, patient_id, diagnosis, medications, notes, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING issued_at
	`, rx.ID, rx.AppointmentID, rx.DoctorID, rx.PatientID, rx.Diagnosis, rx.Medications, rx.Notes)

	if err := row.Scan(&rx.IssuedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPrescriptionExists
		}
		return fmt.Errorf("insert prescription: %w", err)
	}

	if completeAppointment {
		if _, err := tx.Exec(ctx, `
			UPDATE appointments
			SET status = 'COMPLETED',
			    updated_at = now()
			WHERE id = $1
		`, rx.AppointmentID); err != nil {
			return fmt.Errorf("complete appointment: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PrescriptionDetail, error) {
	row := r.pool.QueryRow(ctx, detailQuery+`
		WHERE rx.appointment_id = $1
	`, appointmentID)
	return scanDetail(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]PrescriptionDetail, error) {
	return r.queryDetails(ctx, detailQuery+`
		WHERE rx.patient_id = $1
		ORDER BY rx.issued_at DESC
	`, patientID)
}

func (r *PgRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]PrescriptionDetail, error) {
	return r.queryDetails(ctx, detailQuery+`
		WHERE rx.doctor_id = $1
		ORDER BY rx.issued_at DESC
	`, doctorID)
}

func (r *PgRepository) queryDetails(ctx context.Context, sql string, args ...any) ([]PrescriptionDetail, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PrescriptionDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
