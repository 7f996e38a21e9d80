package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	repaymentdomain "tripsplit-go/internal/domain/repayment"
	"tripsplit-go/internal/transport/httpserver/middleware"
)

type recordRepaymentRequest struct {
	PaidTo string  `json:"paidTo"`
	Amount float64 `json:"amount"`
}

type repaymentResponse struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	PaidFrom  string    `json:"paid_from"`
	PaidTo    string    `json:"paid_to"`
	FromUser  string    `json:"fromUser,omitempty"`
	ToUser    string    `json:"toUser,omitempty"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handlers) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	var req recordRepaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.Repayments.Record(r.Context(), repaymentdomain.RecordInput{
		TripID:   tripID,
		PaidFrom: user.ID,
		PaidTo:   strings.TrimSpace(req.PaidTo),
		Amount:   req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, repaymentdomain.ErrTripNotFound):
			writeError(w, http.StatusNotFound, "trip not found")
		case errors.Is(err, repaymentdomain.ErrInvalidAmount),
			errors.Is(err, repaymentdomain.ErrSelfRepayment),
			errors.Is(err, repaymentdomain.ErrMissingRecipient):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repaymentdomain.ErrNotTripMember):
			h.log.BusinessError("repayment.record: non-member", err, "trip_id", tripID)
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("repayment.record: failed", err, "trip_id", tripID, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeData(w, http.StatusCreated, repaymentResponse{
		ID:        created.ID,
		TripID:    created.TripID,
		PaidFrom:  created.PaidFrom,
		PaidTo:    created.PaidTo,
		Amount:    created.Amount,
		Timestamp: created.CreatedAt,
	}, "repayment recorded successfully")
}

func (h *Handlers) RepaymentHistory(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	records, err := h.Repayments.History(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, repaymentdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.log.InternalError("repayment.history: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := make([]repaymentResponse, 0, len(records))
	for _, record := range records {
		response = append(response, repaymentResponse{
			ID:        record.ID,
			TripID:    record.TripID,
			PaidFrom:  record.PaidFrom,
			PaidTo:    record.PaidTo,
			FromUser:  record.FromUser,
			ToUser:    record.ToUser,
			Amount:    record.Amount,
			Timestamp: record.CreatedAt,
		})
	}
	writeData(w, http.StatusOK, response, "repayment history")
}
