package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

const (
	msgCredentialsRequired = "Username and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgLoginFailed         = "Error during login."
	msgLoginSuccessful     = "Login successful"
)

type AuthHandler struct {
	service domain.AuthService
	logger  logger.Logger
}

type loginResponse struct {
	ID       domain.ID   `json:"id"`
	Username domain.Text `json:"username"`
	Message  string      `json:"message"`
}

func NewAuthHandler(service domain.AuthService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeBody(r, &creds); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.service.Login(r.Context(), creds)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		writeText(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeText(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	case err != nil:
		writeText(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Message:  msgLoginSuccessful,
	})
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}
