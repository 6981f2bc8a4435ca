package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

type GigHandler struct {
	gigs          services.GigService
	profiles      services.ProfileService
	notifications services.NotificationService
	logger        *zap.Logger
}

func NewGigHandler(gigs services.GigService, profiles services.ProfileService, notifications services.NotificationService, logger *zap.Logger) *GigHandler {
	return &GigHandler{gigs: gigs, profiles: profiles, notifications: notifications, logger: logger}
}

func (h *GigHandler) CreateGig(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	req.PostedBy = userID

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	gig, err := h.gigs.CreateGig(r.Context(), &req)
	if err != nil {
		h.logger.Error("create gig failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create gig"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(gig))
}

func (h *GigHandler) ListGigs(w http.ResponseWriter, r *http.Request) {
	gigs, err := h.gigs.GetGigs(r.Context())
	if err != nil {
		h.logger.Error("list gigs failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list gigs"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(gigs))
}

func (h *GigHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	gigID := chi.URLParam(r, "gigId")

	var req models.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if err := h.gigs.ApplyToGig(r.Context(), gigID, userID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrGigNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Gig not found"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Create a profile before applying"))
		default:
			h.logger.Error("apply to gig failed", zap.String("gigId", gigID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to apply"))
		}
		return
	}

	if _, err := h.notifications.CreateNotification(r.Context(), &models.CreateNotificationRequest{
		UserID:    userID,
		Type:      models.NotificationGigApplication,
		Title:     "Application submitted",
		Message:   "Your gig application was submitted and is pending review.",
		RelatedID: gigID,
	}); err != nil {
		h.logger.Warn("application notification failed", zap.String("gigId", gigID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *GigHandler) ListPosted(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	gigs, err := h.gigs.GetUserPostedGigs(r.Context(), userID)
	if err != nil {
		h.logger.Error("list posted gigs failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posted gigs"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(gigs))
}

func (h *GigHandler) ListBookmarked(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	profile, err := h.profiles.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusOK, models.NewSuccessResponse([]models.FreelanceGig{}))
			return
		}
		h.logger.Error("load profile failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list bookmarked gigs"))
		return
	}

	gigs, err := h.gigs.GetBookmarkedGigs(r.Context(), profile.BookmarkedGigs)
	if err != nil {
		h.logger.Error("list bookmarked gigs failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list bookmarked gigs"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(gigs))
}
