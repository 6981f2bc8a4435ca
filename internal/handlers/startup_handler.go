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

type StartupHandler struct {
	startups      services.StartupService
	profiles      services.ProfileService
	notifications services.NotificationService
	logger        *zap.Logger
}

func NewStartupHandler(startups services.StartupService, profiles services.ProfileService, notifications services.NotificationService, logger *zap.Logger) *StartupHandler {
	return &StartupHandler{startups: startups, profiles: profiles, notifications: notifications, logger: logger}
}

func (h *StartupHandler) CreateStartup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateStartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	req.CreatedBy = userID

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	startup, err := h.startups.CreateStartup(r.Context(), &req)
	if err != nil {
		h.logger.Error("create startup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create startup"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(startup))
}

func (h *StartupHandler) ListStartups(w http.ResponseWriter, r *http.Request) {
	startups, err := h.startups.GetStartups(r.Context())
	if err != nil {
		h.logger.Error("list startups failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list startups"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(startups))
}

func (h *StartupHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	startupID := chi.URLParam(r, "startupId")

	var req models.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if err := h.startups.ApplyToStartup(r.Context(), startupID, userID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrStartupNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Startup not found"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Create a profile before applying"))
		default:
			h.logger.Error("apply to startup failed", zap.String("startupId", startupID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to apply"))
		}
		return
	}

	// Confirmation notification is best-effort; the application already went
	// through.
	if _, err := h.notifications.CreateNotification(r.Context(), &models.CreateNotificationRequest{
		UserID:    userID,
		Type:      models.NotificationStartupApplication,
		Title:     "Application submitted",
		Message:   "Your startup application was submitted and is pending review.",
		RelatedID: startupID,
	}); err != nil {
		h.logger.Warn("application notification failed", zap.String("startupId", startupID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *StartupHandler) ListPosted(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	startups, err := h.startups.GetUserPostedStartups(r.Context(), userID)
	if err != nil {
		h.logger.Error("list posted startups failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posted startups"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(startups))
}

func (h *StartupHandler) ListBookmarked(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	profile, err := h.profiles.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusOK, models.NewSuccessResponse([]models.Startup{}))
			return
		}
		h.logger.Error("load profile failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list bookmarked startups"))
		return
	}

	startups, err := h.startups.GetBookmarkedStartups(r.Context(), profile.BookmarkedStartups)
	if err != nil {
		h.logger.Error("list bookmarked startups failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list bookmarked startups"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(startups))
}
