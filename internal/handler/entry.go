package handler

import (
	"fmt"
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseEntryId rejects malformed ids before they reach storage.
func parseEntryId(raw string) (domain.EntryId, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid entry ID: must be a uuid")
	}
	return id.String(), nil
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	section := chi.URLParam(r, "section")

	var body api.CreateEntryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.EntryCreationData{
		Board:   board,
		Section: section,
		Text:    body.Text,
		Attrs:   body.Attrs,
	}
	entry, err := h.entry.Create(creation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.EntryResponse{Entry: entry})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	id, err := parseEntryId(chi.URLParam(r, "entry"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.entry.Get(board, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.EntryResponse{Entry: entry})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	id, err := parseEntryId(chi.URLParam(r, "entry"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateEntryRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if body.Text == nil && len(body.Attrs) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	entry, err := h.entry.UpdateContent(board, id, body.Text, body.Attrs)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.EntryResponse{Entry: entry})
}

func (h *Handler) MoveEntry(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	id, err := parseEntryId(chi.URLParam(r, "entry"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.MoveEntryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	entry, err := h.entry.Move(board, id, body.TargetSection, *body.TargetIndex)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.EntryResponse{Entry: entry})
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	id, err := parseEntryId(chi.URLParam(r, "entry"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.entry.Delete(board, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ReorderSection(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	section := chi.URLParam(r, "section")

	var body api.ReorderSectionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.entry.Reorder(board, section, body.Ids); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
