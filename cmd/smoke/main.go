// Command smoke drives the full patient journey against a running api-server:
// register a doctor and a patient, book, confirm, pay, prescribe, and check
// the duplicate guards. Exits non-zero on the first unexpected response.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080", "api-server base URL")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "smoke").Logger()

	c := &client{
		base: *baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log,
	}

	if err := c.run(); err != nil {
		log.Fatal().Err(err).Msg("smoke test failed")
	}
	log.Info().Msg("smoke test passed")
}

func (c *client) run() error {
	suffix := uuid.NewString()[:8]
	doctorEmail := fmt.Sprintf("smoke-doctor-%s@example.com", suffix)
	patientEmail := fmt.Sprintf("smoke-patient-%s@example.com", suffix)

	// Register doctor
	var doctorAuth struct {
		Token string `json:"token"`
	}
	err := c.call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":            "Dr. Smoke",
		"email":           doctorEmail,
		"password":        "secret123",
		"role":            "DOCTOR",
		"specialization":  "Cardiology",
		"qualification":   "MBBS",
		"experienceYears": 10,
		"consultationFee": 500.0,
	}, http.StatusCreated, &doctorAuth)
	if err != nil {
		return fmt.Errorf("register doctor: %w", err)
	}
	c.log.Info().Str("email", doctorEmail).Msg("doctor registered")

	// Register patient
	var patientAuth struct {
		Token string `json:"token"`
	}
	err = c.call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Smoke Patient",
		"email":    patientEmail,
		"password": "secret123",
		"role":     "PATIENT",
		"age":      30,
	}, http.StatusCreated, &patientAuth)
	if err != nil {
		return fmt.Errorf("register patient: %w", err)
	}
	c.log.Info().Str("email", patientEmail).Msg("patient registered")

	// Find the doctor's id via the profile endpoint
	var doctorProfile struct {
		ID uuid.UUID `json:"id"`
	}
	err = c.call(http.MethodGet, "/api/doctors/profile", doctorAuth.Token, nil, http.StatusOK, &doctorProfile)
	if err != nil {
		return fmt.Errorf("doctor profile: %w", err)
	}

	// Book an appointment for tomorrow
	var appt struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	err = c.call(http.MethodPost, "/api/appointments", patientAuth.Token, map[string]any{
		"doctorId":            doctorProfile.ID.String(),
		"appointmentDateTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"reason":              "chest pain",
	}, http.StatusCreated, &appt)
	if err != nil {
		return fmt.Errorf("book appointment: %w", err)
	}
	if appt.Status != "PENDING" {
		return fmt.Errorf("expected PENDING appointment, got %s", appt.Status)
	}
	c.log.Info().Str("appointment_id", appt.ID.String()).Msg("appointment booked")

	// Doctor confirms
	err = c.call(http.MethodPut, fmt.Sprintf("/api/appointments/%s/status", appt.ID), doctorAuth.Token, map[string]any{
		"status": "confirmed",
	}, http.StatusOK, nil)
	if err != nil {
		return fmt.Errorf("confirm appointment: %w", err)
	}

	// Patient pays
	var payment struct {
		Status        string `json:"status"`
		TransactionID string `json:"transactionId"`
	}
	err = c.call(http.MethodPost, "/api/payments", patientAuth.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"amount":        500.0,
		"paymentMethod": "CARD",
	}, http.StatusCreated, &payment)
	if err != nil {
		return fmt.Errorf("make payment: %w", err)
	}
	if payment.Status != "COMPLETED" {
		return fmt.Errorf("expected COMPLETED payment, got %s", payment.Status)
	}
	c.log.Info().Str("transaction_id", payment.TransactionID).Msg("payment recorded")

	// Duplicate payment must be rejected
	err = c.call(http.MethodPost, "/api/payments", patientAuth.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"amount":        500.0,
		"paymentMethod": "CARD",
	}, http.StatusBadRequest, nil)
	if err != nil {
		return fmt.Errorf("duplicate payment: %w", err)
	}

	// Doctor prescribes; this completes the appointment
	err = c.call(http.MethodPost, "/api/prescriptions", doctorAuth.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"diagnosis":     "angina",
		"medications":   "aspirin 75mg",
	}, http.StatusCreated, nil)
	if err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}

	var after struct {
		Status string `json:"status"`
	}
	err = c.call(http.MethodGet, fmt.Sprintf("/api/appointments/%s", appt.ID), patientAuth.Token, nil, http.StatusOK, &after)
	if err != nil {
		return fmt.Errorf("reload appointment: %w", err)
	}
	if after.Status != "COMPLETED" {
		return fmt.Errorf("expected COMPLETED appointment after prescription, got %s", after.Status)
	}

	// Duplicate prescription must be rejected
	err = c.call(http.MethodPost, "/api/prescriptions", doctorAuth.Token, map[string]any{
		"appointmentId": appt.ID.String(),
		"diagnosis":     "angina",
		"medications":   "aspirin 75mg",
	}, http.StatusBadRequest, nil)
	if err != nil {
		return fmt.Errorf("duplicate prescription: %w", err)
	}

	return nil
}

func (c *client) call(method, path, token string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: status %d (want %d): %s", method, path, resp.StatusCode, wantStatus, raw)
	}

	if out != nil {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("%s %s: decode envelope: %w", method, path, err)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}

	return nil
}
