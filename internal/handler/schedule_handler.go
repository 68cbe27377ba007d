package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"schedly-be/internal/domain"
	"schedly-be/internal/middleware"
	"schedly-be/internal/service"
	"schedly-be/pkg/logger"
)

// ScheduleHandler handles availability interval submissions
type ScheduleHandler struct {
	schedule *service.ScheduleService
	logger   *logger.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedule *service.ScheduleService, logger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		logger:   logger,
	}
}

// Create handles POST /api/users/time-intervals. The session middleware
// guarantees a user id in context; a malformed body fails before any
// storage access; success answers 201 with an empty body.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req domain.TimeIntervalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.schedule.CreateIntervals(r.Context(), userID, &req); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, vErr.Error(), h.logger)
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to create time intervals")
		respondError(w, http.StatusInternalServerError, "Failed to create time intervals", h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
