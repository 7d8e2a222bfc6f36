package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/identity"
)

func listDoctorsHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListAll(r.Context())
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Doctors retrieved", toDoctorResponses(doctors))
	}
}

func listAvailableDoctorsHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListAvailable(r.Context())
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Doctors retrieved", toDoctorResponses(doctors))
	}
}

func getDoctorHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		doctor, err := svc.GetByID(r.Context(), id)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Doctor retrieved", toDoctorResponse(doctor))
	}
}

func doctorsBySpecializationHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specialization := chi.URLParam(r, "specialization")

		doctors, err := svc.ListBySpecialization(r.Context(), specialization)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Doctors retrieved", toDoctorResponses(doctors))
	}
}

func doctorProfileHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		doctor, err := svc.GetByEmail(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Profile retrieved", toDoctorResponse(doctor))
	}
}

func updateDoctorProfileHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		var req UpdateDoctorProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		doctor, err := svc.UpdateProfile(r.Context(), p.Email, identity.DoctorUpdate{
			Name:            req.Name,
			Phone:           req.Phone,
			Specialization:  req.Specialization,
			Qualification:   req.Qualification,
			ExperienceYears: req.ExperienceYears,
			ConsultationFee: req.ConsultationFee,
			Bio:             req.Bio,
			Available:       req.Available,
		})
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Profile updated", toDoctorResponse(doctor))
	}
}

func updateAvailabilityHandler(svc *identity.DoctorService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		var req UpdateAvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}
		if req.Available == nil {
			writeError(w, http.StatusBadRequest, "available is required")
			return
		}

		doctor, err := svc.UpdateAvailability(r.Context(), p.Email, *req.Available)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Availability updated", toDoctorResponse(doctor))
	}
}
