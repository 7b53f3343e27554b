package handler

import (
	"encoding/json"
	"net/http"

	"kusina/internal/auth"
	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles portal logins.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// loginRequest is the portal login payload.
type loginRequest struct {
	Type       auth.PortalType `json:"type"`
	Identifier string          `json:"identifier"`
	Password   string          `json:"password"`
}

// loginResponse carries the signed bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "unknown portal type", h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), req.Type, req.Identifier, req.Password)
	if err != nil {
		if err == model.ErrUnauthorised {
			writeError(w, http.StatusUnauthorized, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to log in", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
