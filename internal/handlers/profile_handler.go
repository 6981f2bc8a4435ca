package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetMyProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	h.getProfile(w, r, userID)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	h.getProfile(w, r, chi.URLParam(r, "uid"))
}

func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request, uid string) {
	profile, err := h.profiles.GetUserProfile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		h.logger.Error("get profile failed", zap.String("uid", uid), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	profile, err := h.profiles.UpdateUserProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		h.logger.Error("update profile failed", zap.String("uid", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) BookmarkGig(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, chi.URLParam(r, "gigId"), h.profiles.BookmarkGig)
}

func (h *ProfileHandler) UnbookmarkGig(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, chi.URLParam(r, "gigId"), h.profiles.UnbookmarkGig)
}

func (h *ProfileHandler) BookmarkStartup(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, chi.URLParam(r, "startupId"), h.profiles.BookmarkStartup)
}

func (h *ProfileHandler) UnbookmarkStartup(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, chi.URLParam(r, "startupId"), h.profiles.UnbookmarkStartup)
}

func (h *ProfileHandler) toggleBookmark(w http.ResponseWriter, r *http.Request, id string, op func(ctx context.Context, id, userID string) error) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	if err := op(r.Context(), id, userID); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		h.logger.Error("bookmark toggle failed", zap.String("id", id), zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update bookmarks"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
