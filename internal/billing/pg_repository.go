package billing

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

func scanDetail(row pgx.Row) (*PaymentDetail, error) {
	var d PaymentDetail

	err := row.Scan(
		&d.ID,
		&d.AppointmentID,
		&d.Amount,
		&d.Method,
		&d.Status,
		&d.TransactionID,
		&d.PaidAt,
		&d.DoctorName,
		&d.PatientName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *PgRepository) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM payments WHERE appointment_id = $1)
	`, appointmentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) Create(ctx context.Context, p *Payment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (id, appointment_id, amount, method, status, transaction_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING paid_at
	`, p.ID, p.AppointmentID, p.Amount, p.Method, p.Status, p.TransactionID)

	if err := row.Scan(&p.PaidAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPaymentExists
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *PgRepository) GetDetailByAppointment(ctx context.Context, appointmentID uuid.UUID) (*PaymentDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT pay.id, pay.appointment_id, pay.amount, pay.method, pay.status,
		       pay.transaction_id, pay.paid_at, du.name, pu.name
		FROM payments pay
		JOIN appointments a ON a.id = pay.appointment_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users du ON du.id = d.user_id
		JOIN patients p ON p.id = a.patient_id
		JOIN users pu ON pu.id = p.user_id
		WHERE pay.appointment_id = $1
	`, appointmentID)
	return scanDetail(row)
}
