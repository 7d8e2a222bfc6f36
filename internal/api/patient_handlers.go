package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/identity"
)

func patientProfileHandler(svc *identity.PatientService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		patient, err := svc.GetProfile(r.Context(), p.Email)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Profile retrieved", toPatientResponse(patient))
	}
}

func updatePatientProfileHandler(svc *identity.PatientService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())

		var req UpdatePatientProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		patient, err := svc.UpdateProfile(r.Context(), p.Email, identity.PatientUpdate{
			Name:             req.Name,
			Phone:            req.Phone,
			Age:              req.Age,
			Gender:           req.Gender,
			BloodGroup:       req.BloodGroup,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
		})
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Profile updated", toPatientResponse(patient))
	}
}
