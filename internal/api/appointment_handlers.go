package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/scheduling"
)

func bookAppointmentHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "doctorId must be a valid UUID")
			return
		}

		dateTime, err := parseDateTime(req.AppointmentDateTime)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		appt, err := svc.Book(r.Context(), p.Email, doctorID, dateTime, req.Reason)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusCreated, "Appointment booked successfully", toAppointmentResponse(appt))
	}
}

func patientAppointmentsHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		appts, err := svc.ListForPatient(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Appointments retrieved", toAppointmentResponses(appts))
	}
}

func doctorAppointmentsHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		appts, err := svc.ListForDoctor(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Appointments retrieved", toAppointmentResponses(appts))
	}
}

func doctorTodayAppointmentsHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		appts, err := svc.ListDoctorToday(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Today's appointments retrieved", toAppointmentResponses(appts))
	}
}

func getAppointmentHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		appt, err := svc.GetByID(r.Context(), id)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Appointment retrieved", toAppointmentResponse(appt))
	}
}

func updateAppointmentStatusHandler(svc *scheduling.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		appt, err := svc.UpdateStatus(r.Context(), id, req.Status, p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Appointment status updated", toAppointmentResponse(appt))
	}
}
