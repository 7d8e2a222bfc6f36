package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/clinical"
)

func createPrescriptionHandler(svc *clinical.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		var req PrescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "appointmentId must be a valid UUID")
			return
		}

		rx, err := svc.Create(r.Context(), p.Email, appointmentID, req.Diagnosis, req.Medications, req.Notes)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusCreated, "Prescription created successfully", toPrescriptionResponse(rx))
	}
}

func getPrescriptionHandler(svc *clinical.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		rx, err := svc.GetByAppointment(r.Context(), appointmentID)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Prescription retrieved", toPrescriptionResponse(rx))
	}
}

func patientPrescriptionsHandler(svc *clinical.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		list, err := svc.ListForPatient(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Prescriptions retrieved", toPrescriptionResponses(list))
	}
}

func doctorPrescriptionsHandler(svc *clinical.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		list, err := svc.ListForDoctor(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Prescriptions retrieved", toPrescriptionResponses(list))
	}
}
