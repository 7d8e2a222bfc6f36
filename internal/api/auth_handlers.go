package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/identity"
)

func registerHandler(svc *identity.AuthService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		result, err := svc.Register(r.Context(), identity.RegisterInput{
			Name:             req.Name,
			Email:            req.Email,
			Password:         req.Password,
			Phone:            req.Phone,
			Role:             req.Role,
			Age:              req.Age,
			Gender:           req.Gender,
			BloodGroup:       req.BloodGroup,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
			Specialization:   req.Specialization,
			Qualification:    req.Qualification,
			ExperienceYears:  req.ExperienceYears,
			ConsultationFee:  req.ConsultationFee,
			Bio:              req.Bio,
		})
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusCreated, "Registration successful", toAuthResponse(result))
	}
}

func loginHandler(svc *identity.AuthService, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Login successful", toAuthResponse(result))
	}
}
