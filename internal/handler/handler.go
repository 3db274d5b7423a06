package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/config"
	"github.com/corkboard-dev/corkboard/internal/markdown"
	"github.com/corkboard-dev/corkboard/internal/service"
)

// Pinger reports whether the storage can handle requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board    service.BoardService
	entry    service.EntryService
	renderer *markdown.Renderer
	health   Pinger
	cfg      *config.Config
}

func New(board service.BoardService, entry service.EntryService, renderer *markdown.Renderer, health Pinger, cfg *config.Config) *Handler {
	return &Handler{board, entry, renderer, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Print(err.Error())
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Print(err.Error())
	}
}
