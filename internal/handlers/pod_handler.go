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

type PodHandler struct {
	pods   services.PodService
	logger *zap.Logger
}

func NewPodHandler(pods services.PodService, logger *zap.Logger) *PodHandler {
	return &PodHandler{pods: pods, logger: logger}
}

func (h *PodHandler) CreatePod(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	pod, err := h.pods.CreatePod(r.Context(), &req)
	if err != nil {
		h.logger.Error("create pod failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create pod"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(pod))
}

func (h *PodHandler) ListPods(w http.ResponseWriter, r *http.Request) {
	pods, err := h.pods.GetPods(r.Context())
	if err != nil {
		h.logger.Error("list pods failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list pods"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pods))
}

func (h *PodHandler) GetPod(w http.ResponseWriter, r *http.Request) {
	podID := chi.URLParam(r, "podId")

	pod, err := h.pods.GetPod(r.Context(), podID)
	if err != nil {
		if errors.Is(err, services.ErrPodNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Pod not found"))
			return
		}
		h.logger.Error("get pod failed", zap.String("podId", podID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get pod"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pod))
}

func (h *PodHandler) JoinPod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	podID := chi.URLParam(r, "podId")

	if err := h.pods.JoinPod(r.Context(), podID, userID); err != nil {
		if errors.Is(err, services.ErrPodNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Pod not found"))
			return
		}
		h.logger.Error("join pod failed", zap.String("podId", podID), zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to join pod"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *PodHandler) LeavePod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	podID := chi.URLParam(r, "podId")

	if err := h.pods.LeavePod(r.Context(), podID, userID); err != nil {
		if errors.Is(err, services.ErrPodNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Pod not found"))
			return
		}
		h.logger.Error("leave pod failed", zap.String("podId", podID), zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to leave pod"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
