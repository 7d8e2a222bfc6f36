package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/billing"
)

func makePaymentHandler(svc *billing.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Could not parse request body")
			return
		}

		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "appointmentId must be a valid UUID")
			return
		}

		payment, err := svc.MakePayment(r.Context(), appointmentID, req.Amount, req.PaymentMethod)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusCreated, "Payment successful", toPaymentResponse(payment))
	}
}

func getPaymentHandler(svc *billing.Service, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		payment, err := svc.GetByAppointment(r.Context(), appointmentID)
		if err != nil {
			handleError(w, r, log, err)
			return
		}

		writeData(w, http.StatusOK, "Payment retrieved", toPaymentResponse(payment))
	}
}
