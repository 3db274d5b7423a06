package api

import (
	"encoding/json"

	"github.com/corkboard-dev/corkboard/internal/domain"
)

// Request DTOs

type CreateEntryRequest struct {
	Text  string          `json:"text" validate:"required"`
	Attrs json.RawMessage `json:"attrs,omitempty"`
}

type UpdateEntryRequest struct {
	Text  *string         `json:"text,omitempty"`
	Attrs json.RawMessage `json:"attrs,omitempty"`
}

type MoveEntryRequest struct {
	TargetSection string `json:"target_section" validate:"required"`
	TargetIndex   *int   `json:"target_index" validate:"required"`
}

// Ids carries the complete desired ordering. An empty list is valid:
// it is the only correct permutation of an empty section.
type ReorderSectionRequest struct {
	Ids []string `json:"ids"`
}

// Response DTOs

// EntryResponse embeds the domain entry; RenderedText is only populated
// when html rendering is requested.
type EntryResponse struct {
	domain.Entry
	RenderedText string `json:"rendered_text,omitempty"`
}
