package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

type NotificationHandler struct {
	notifications services.NotificationService
	logger        *zap.Logger
}

func NewNotificationHandler(notifications services.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	n, err := h.notifications.CreateNotification(r.Context(), &req)
	if err != nil {
		h.logger.Error("create notification failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create notification"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(n))
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ns, err := h.notifications.GetUserNotifications(r.Context(), userID)
	if err != nil {
		h.logger.Error("list notifications failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list notifications"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(ns))
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")

	if err := h.notifications.MarkNotificationAsRead(r.Context(), notificationID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Notification not found"))
			return
		}
		h.logger.Error("mark notification read failed", zap.String("notificationId", notificationID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to mark notification as read"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

// StreamNotifications bridges the notification subscription onto a WebSocket.
// Every frame carries the newest notifications, descending, capped.
func (h *NotificationHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	unsub, err := h.notifications.SubscribeToUserNotifications(r.Context(), userID, func(ns []models.Notification) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(ns); err != nil {
			h.logger.Debug("websocket write failed", zap.String("userId", userID), zap.Error(err))
		}
	})
	if err != nil {
		h.logger.Error("notification subscription failed", zap.String("userId", userID), zap.Error(err))
		return
	}
	defer unsub()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
