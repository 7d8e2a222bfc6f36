package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/billing"
	"github.com/careloop/hms-backend/internal/clinical"
	"github.com/careloop/hms-backend/internal/identity"
	"github.com/careloop/hms-backend/internal/scheduling"
)

type RouterConfig struct {
	Auth          *identity.AuthService
	Doctors       *identity.DoctorService
	Patients      *identity.PatientService
	Appointments  *scheduling.Service
	Prescriptions *clinical.Service
	Payments      *billing.Service
	Tokens        *identity.TokenProvider
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	Log           zerolog.Logger
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	log := cfg.Log

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", registerHandler(cfg.Auth, log))
		r.Post("/auth/login", loginHandler(cfg.Auth, log))

		r.Get("/doctors", listDoctorsHandler(cfg.Doctors, log))
		r.Get("/doctors/available", listAvailableDoctorsHandler(cfg.Doctors, log))
		r.Get("/doctors/specialization/{specialization}", doctorsBySpecializationHandler(cfg.Doctors, log))
		r.Get("/doctors/{id}", getDoctorHandler(cfg.Doctors, log))

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Tokens))

			doctorOnly := RequireRole(identity.RoleDoctor)
			patientOnly := RequireRole(identity.RolePatient)

			r.With(doctorOnly).Get("/doctors/profile", doctorProfileHandler(cfg.Doctors, log))
			r.With(doctorOnly).Put("/doctors/profile", updateDoctorProfileHandler(cfg.Doctors, log))
			r.With(doctorOnly).Put("/doctors/availability", updateAvailabilityHandler(cfg.Doctors, log))

			r.With(patientOnly).Get("/patients/profile", patientProfileHandler(cfg.Patients, log))
			r.With(patientOnly).Put("/patients/profile", updatePatientProfileHandler(cfg.Patients, log))

			r.With(patientOnly).Post("/appointments", bookAppointmentHandler(cfg.Appointments, log))
			r.With(patientOnly).Get("/appointments/patient", patientAppointmentsHandler(cfg.Appointments, log))
			r.With(doctorOnly).Get("/appointments/doctor", doctorAppointmentsHandler(cfg.Appointments, log))
			r.With(doctorOnly).Get("/appointments/doctor/today", doctorTodayAppointmentsHandler(cfg.Appointments, log))
			r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments, log))
			r.With(doctorOnly).Put("/appointments/{id}/status", updateAppointmentStatusHandler(cfg.Appointments, log))

			r.Post("/payments", makePaymentHandler(cfg.Payments, log))
			r.Get("/payments/appointment/{id}", getPaymentHandler(cfg.Payments, log))

			r.With(doctorOnly).Post("/prescriptions", createPrescriptionHandler(cfg.Prescriptions, log))
			r.Get("/prescriptions/appointment/{id}", getPrescriptionHandler(cfg.Prescriptions, log))
			r.With(patientOnly).Get("/prescriptions/patient", patientPrescriptionsHandler(cfg.Prescriptions, log))
			r.With(doctorOnly).Get("/prescriptions/doctor", doctorPrescriptionsHandler(cfg.Prescriptions, log))
		})
	})

	return r
}
