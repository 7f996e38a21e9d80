package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	ledgerdomain "tripsplit-go/internal/domain/ledger"
)

func (h *Handlers) TripBalances(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	balances, err := h.Ledger.Balances(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ledgerdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found or has no members")
			return
		}
		h.log.InternalError("balance.trip: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, balances, "trip balances calculated")
}

func (h *Handlers) TripPayees(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	payees, err := h.Ledger.Payees(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ledgerdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.log.InternalError("balance.payees: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, payees, "payees with total paid and owed amount")
}
