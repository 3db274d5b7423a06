package api

import (
	"github.com/corkboard-dev/corkboard/internal/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Name      string   `json:"name" validate:"required"`
	ShortName string   `json:"short_name" validate:"required"`
	Sections  []string `json:"sections,omitempty"` // defaults from config when empty
}

// Response DTOs

// BoardResponse wraps a full board with its entries grouped by section.
type BoardResponse struct {
	domain.BoardMetadata
	Sections []SectionResponse `json:"sections"`
}

// SectionResponse holds one section's entries ordered by position.
type SectionResponse struct {
	Name    domain.Section  `json:"name"`
	Entries []EntryResponse `json:"entries"`
}
