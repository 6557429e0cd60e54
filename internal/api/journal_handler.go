package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"journalapi/internal/domain"
	"journalapi/pkg/logger"
)

const (
	msgJournalsFetchFailed = "Error fetching journals."
	msgJournalFetchFailed  = "Error fetching journal."
	msgJournalCreateFailed = "Error creating journal."
	msgJournalUpdateFailed = "Error updating journal."
	msgJournalDeleteFailed = "Error deleting journal."
	msgJournalUpdated      = "Journal updated successfully."
	msgJournalDeleted      = "Journal deleted successfully."
)

type JournalHandler struct {
	service domain.JournalService
	logger  logger.Logger
}

func NewJournalHandler(service domain.JournalService, logger logger.Logger) *JournalHandler {
	return &JournalHandler{
		service: service,
		logger:  logger,
	}
}

func (h *JournalHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.service.ListJournals(r.Context())
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgJournalsFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, journals)
}

func (h *JournalHandler) GetJournalByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}

	journal, err := h.service.GetJournalByID(r.Context(), id)
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgJournalFetchFailed)
		return
	}
	if journal == nil {
		writeJSON(w, http.StatusOK, emptyObject)
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

func (h *JournalHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var journal domain.Journal
	if err := decodeBody(r, &journal); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, err := h.service.CreateJournal(r.Context(), &journal)
	if err != nil {
		writeText(w, http.StatusInternalServerError, msgJournalCreateFailed)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *JournalHandler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	var journal domain.Journal
	if err := decodeBody(r, &journal); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.service.UpdateJournal(r.Context(), &journal); err != nil {
		writeText(w, http.StatusInternalServerError, msgJournalUpdateFailed)
		return
	}

	writeText(w, http.StatusOK, msgJournalUpdated)
}

func (h *JournalHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	var body idRequest
	if err := decodeBody(r, &body); err != nil {
		h.logger.WarnContext(r.Context(), "Request body could not be decoded", map[string]interface{}{"error": err.Error()})
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.service.DeleteJournal(r.Context(), body.ID); err != nil {
		writeText(w, http.StatusInternalServerError, msgJournalDeleteFailed)
		return
	}

	writeText(w, http.StatusOK, msgJournalDeleted)
}

func (h *JournalHandler) RegisterRoutes(r chi.Router) {
	r.Get("/journals", h.ListJournals)
	r.Get("/journals/{id}", h.GetJournalByID)
	r.Post("/journals", h.CreateJournal)
	r.Put("/journals", h.UpdateJournal)
	r.Delete("/journals", h.DeleteJournal)
}
