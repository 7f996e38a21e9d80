package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerdomain "tripsplit-go/internal/domain/ledger"
	tripdomain "tripsplit-go/internal/domain/trip"
	"tripsplit-go/internal/transport/httpserver/middleware"
)

const maxUploadBytes = 16 << 20

type expenseResponse struct {
	ID          string                   `json:"id"`
	TripID      string                   `json:"trip_id"`
	Amount      float64                  `json:"amount"`
	Description string                   `json:"description"`
	ImageURL    *string                  `json:"image_url"`
	PaidBy      string                   `json:"paid_by"`
	PaidByName  string                   `json:"paid_by_name"`
	Date        time.Time                `json:"date"`
	Members     []ledgerdomain.MemberRef `json:"members"`
}

// AddExpense accepts the multipart expense form: amount, description, a
// JSON-encoded member id array, and an optional bill attachment. The
// caller pays; the amount is split equally among the selected members.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Trips.RequireMember(r.Context(), tripID, user.ID); err != nil {
		if errors.Is(err, tripdomain.ErrNotTripMember) {
			writeError(w, http.StatusForbidden, "not a member of this trip")
			return
		}
		h.log.InternalError("expense.add: membership check failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	amount, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	memberIDs, err := parseMemberIDs(r.FormValue("members"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	imageURL, err := h.saveAttachment(r)
	if err != nil {
		h.log.InternalError("expense.add: attachment save failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "failed to store attachment")
		return
	}

	created, err := h.Ledger.AddExpense(r.Context(), ledgerdomain.CreateExpenseInput{
		TripID:      tripID,
		PaidBy:      user.ID,
		Amount:      amount,
		Description: r.FormValue("description"),
		ImageURL:    imageURL,
		MemberIDs:   memberIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledgerdomain.ErrTripNotFound):
			writeError(w, http.StatusNotFound, "trip not found")
		case errors.Is(err, ledgerdomain.ErrInvalidAmount),
			errors.Is(err, ledgerdomain.ErrEmptyMemberSelection):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledgerdomain.ErrMemberNotInTrip):
			h.log.BusinessError("expense.add: member outside trip", err, "trip_id", tripID)
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("expense.add: failed", err, "trip_id", tripID, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeData(w, http.StatusCreated, created.ID, "expense added and split among selected members")
}

func (h *Handlers) ListTripExpenses(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	records, err := h.Ledger.ListExpenses(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ledgerdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.log.InternalError("expense.list: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(records))
	for _, record := range records {
		members := record.Members
		if members == nil {
			members = []ledgerdomain.MemberRef{}
		}
		response = append(response, expenseResponse{
			ID:          record.ID,
			TripID:      record.TripID,
			Amount:      record.Amount,
			Description: record.Description,
			ImageURL:    record.ImageURL,
			PaidBy:      record.PaidBy,
			PaidByName:  record.PaidByName,
			Date:        record.CreatedAt,
			Members:     members,
		})
	}
	writeData(w, http.StatusOK, response, "all trip expenses with members")
}

func (h *Handlers) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	summary, err := h.Ledger.Summary(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ledgerdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.log.InternalError("expense.summary: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, summary, "expense summary")
}

// saveAttachment stores the optional bill file under the upload directory
// and returns its public path, or nil when no file was sent.
func (h *Handlers) saveAttachment(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("bill")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, err
	}

	url := "/uploads/" + name
	return &url, nil
}
