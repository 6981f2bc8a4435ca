package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the router; the handshake accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RoomHandler struct {
	rooms  services.RoomService
	logger *zap.Logger
}

func NewRoomHandler(rooms services.RoomService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, logger: logger}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	req.CreatedBy = userID

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), &req)
	if err != nil {
		h.logger.Error("create room failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create room"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(room))
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	rooms, err := h.rooms.GetRooms(r.Context(), userID)
	if err != nil {
		h.logger.Error("list rooms failed", zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list rooms"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(rooms))
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	roomID := chi.URLParam(r, "roomId")

	if err := h.rooms.JoinRoom(r.Context(), roomID, userID); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Room not found"))
			return
		}
		h.logger.Error("join room failed", zap.String("roomId", roomID), zap.String("userId", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to join room"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *RoomHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	req.RoomID = chi.URLParam(r, "roomId")
	req.SenderID = userID
	if req.Type == "" {
		req.Type = models.MessageTypeText
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	msg, err := h.rooms.SendMessage(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Room not found"))
			return
		}
		h.logger.Error("send message failed", zap.String("roomId", req.RoomID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to send message"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(msg))
}

func (h *RoomHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	msgs, err := h.rooms.GetRoomMessages(r.Context(), roomID)
	if err != nil {
		h.logger.Error("list messages failed", zap.String("roomId", roomID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list messages"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(msgs))
}

// StreamMessages bridges the room subscription onto a WebSocket. Every frame
// carries the full, ascending message list, mirroring the subscription
// contract.
func (h *RoomHandler) StreamMessages(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	unsub, err := h.rooms.SubscribeToRoomMessages(r.Context(), roomID, func(msgs []models.Message) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(msgs); err != nil {
			h.logger.Debug("websocket write failed", zap.String("roomId", roomID), zap.Error(err))
		}
	})
	if err != nil {
		h.logger.Error("room subscription failed", zap.String("roomId", roomID), zap.Error(err))
		return
	}
	defer unsub()

	// Drain the connection until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
