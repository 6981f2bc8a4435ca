package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/middleware"
	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
	"github.com/earnbuddy/backend/internal/session"
)

// AuthHandler serves the local (no-Firebase) auth mode: email+password
// accounts against the local provider, HS256 bearer tokens minted here. In
// firebase mode these routes are not mounted; clients authenticate against
// Firebase directly and send ID tokens.
type AuthHandler struct {
	provider  *session.LocalProvider
	profiles  services.ProfileService
	jwtSecret string
	jwtTTL    time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(provider *session.LocalProvider, profiles services.ProfileService, jwtSecret string, jwtTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, profiles: profiles, jwtSecret: jwtSecret, jwtTTL: jwtTTL, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	identity, err := h.provider.SignUpWithEmail(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.bootstrapProfile(r, identity)
	h.respondWithToken(w, http.StatusCreated, identity)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	identity, err := h.provider.SignInWithEmail(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.bootstrapProfile(r, identity)
	h.respondWithToken(w, http.StatusOK, identity)
}

// bootstrapProfile makes sure a profile document exists for the identity.
// Failures are logged, not surfaced: the account itself is fine and the
// profile will be retried on the next sign-in.
func (h *AuthHandler) bootstrapProfile(r *http.Request, identity *session.Identity) {
	_, err := h.profiles.GetUserProfile(r.Context(), identity.UID)
	if err == nil {
		return
	}
	if !errors.Is(err, services.ErrProfileNotFound) {
		h.logger.Warn("profile lookup failed", zap.String("uid", identity.UID), zap.Error(err))
		return
	}

	profile := &models.UserProfile{
		UID:           identity.UID,
		Email:         identity.Email,
		DisplayName:   identity.DisplayName,
		TotalEarnings: "$0",
	}
	if err := h.profiles.CreateUserProfile(r.Context(), profile); err != nil {
		h.logger.Warn("profile bootstrap failed", zap.String("uid", identity.UID), zap.Error(err))
	}
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, identity *session.Identity) {
	token, err := middleware.MintJWT(h.jwtSecret, identity.UID, h.jwtTTL)
	if err != nil {
		h.logger.Error("minting token failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to issue token"))
		return
	}

	user, _ := h.provider.GetUser(identity.UID)
	resp := models.AuthResponse{Token: token}
	if user != nil {
		resp.User = *user
	}
	writeJSON(w, status, models.NewSuccessResponse(resp))
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	var authErr *session.AuthError
	if !errors.As(err, &authErr) {
		h.logger.Error("auth operation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Authentication failed"))
		return
	}

	status := http.StatusBadRequest
	switch authErr {
	case session.ErrEmailInUse:
		status = http.StatusConflict
	case session.ErrUserNotFound, session.ErrWrongPassword:
		status = http.StatusUnauthorized
	case session.ErrProviderNotConfigured:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, models.NewErrorResponse(authErr.Message))
}
