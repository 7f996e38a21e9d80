package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	tripdomain "tripsplit-go/internal/domain/trip"
	"tripsplit-go/internal/transport/httpserver/middleware"
)

type createTripRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

type tripResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.Trips.Create(r.Context(), tripdomain.CreateTripInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   user.ID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		if errors.Is(err, tripdomain.ErrUserNotFound) {
			h.log.BusinessError("trip.create: unknown member", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "member user not found")
			return
		}
		h.log.InternalError("trip.create: failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, created.ID, "trip created")
}

func (h *Handlers) MyTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	trips, err := h.Trips.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("trip.list: failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, tripResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			CreatedBy:   t.CreatedBy,
			CreatedAt:   t.CreatedAt,
		})
	}
	writeData(w, http.StatusOK, response, "my trips")
}

func (h *Handlers) TripMembers(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(chi.URLParam(r, "tripID"))
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip id is required")
		return
	}

	members, err := h.Trips.ListMembers(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, tripdomain.ErrTripNotFound) {
			writeError(w, http.StatusNotFound, "trip not found")
			return
		}
		h.log.InternalError("trip.members: failed", err, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, members, "trip members")
}

func (h *Handlers) AddTripMember(w http.ResponseWriter, r *http.Request) {
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

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.Trips.AddMember(r.Context(), tripID, strings.TrimSpace(req.UserID)); err != nil {
		switch {
		case errors.Is(err, tripdomain.ErrTripNotFound):
			writeError(w, http.StatusNotFound, "trip not found")
		case errors.Is(err, tripdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, tripdomain.ErrAlreadyMember):
			h.log.BusinessError("trip.add-member: duplicate", err, "trip_id", tripID)
			writeError(w, http.StatusConflict, "user is already a member")
		default:
			h.log.InternalError("trip.add-member: failed", err, "trip_id", tripID, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, nil, "member added")
}
