package handler

import (
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/logger"
	"github.com/corkboard-dev/corkboard/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creation := domain.BoardCreationData{
		Name:      body.Name,
		ShortName: body.ShortName,
		Sections:  body.Sections,
	}
	if err := h.board.Create(creation); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	shortName := chi.URLParam(r, "board")

	board, err := h.board.Get(shortName)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	renderHTML := r.URL.Query().Get("render") == "html"

	response := api.BoardResponse{BoardMetadata: board.BoardMetadata}
	bySection := make(map[domain.Section][]api.EntryResponse, len(board.Sections))
	for _, entry := range board.Entries {
		resp := api.EntryResponse{Entry: entry}
		if renderHTML {
			rendered, err := h.renderer.Render(entry.Text)
			if err != nil {
				logger.Log.Error("failed to render entry text", "entry", entry.Id, "error", err)
			} else {
				resp.RenderedText = rendered
			}
		}
		bySection[entry.Section] = append(bySection[entry.Section], resp)
	}
	for _, section := range board.Sections {
		response.Sections = append(response.Sections, api.SectionResponse{
			Name:    section,
			Entries: bySection[section],
		})
	}

	writeJSON(w, response)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	shortName := chi.URLParam(r, "board")

	if err := h.board.Delete(shortName); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
