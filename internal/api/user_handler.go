package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

const (
	msgUsersFetchFailed = "Error fetching users."
	msgUserFetchFailed  = "Error fetching user."
	msgUserCreateFailed = "Error creating user."
	msgUserUpdateFailed = "Error updating user."
	msgUserDeleteFailed = "Error deleting user."
	msgUserUpdated      = "User updated successfully."
	msgUserDeleted      = "User deleted successfully."
)

type UserHandler struct {
	service domain.UserService
	logger  logger.Logger
}

func NewUserHandler(service domain.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgUsersFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgUserFetchFailed)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := decodeBody(r, &user); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, err := h.service.CreateUser(r.Context(), &user)
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgUserCreateFailed)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := decodeBody(r, &user); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.service.UpdateUser(r.Context(), &user); err != nil {
		writeText(w, http.StatusInternalServerError, msgUserUpdateFailed)
		return
	}

	writeText(w, http.StatusOK, msgUserUpdated)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var body idRequest
	if err := decodeBody(r, &body); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.service.DeleteUser(r.Context(), body.ID); err != nil {
		writeText(w, http.StatusInternalServerError, msgUserDeleteFailed)
		return
	}

	writeText(w, http.StatusOK, msgUserDeleted)
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUserByID)
	r.Post("/users", h.CreateUser)
	r.Put("/users", h.UpdateUser)
	r.Delete("/users", h.DeleteUser)
}
