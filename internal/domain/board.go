package domain

import (
	"slices"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name      BoardName
	ShortName BoardShortName
	Sections  Sections
}

type BoardMetadata struct {
	Name         BoardName
	ShortName    BoardShortName
	Sections     Sections // closed, ordered set of section names
	CreatedAt    time.Time
	LastActivity time.Time
}

type Board struct {
	BoardMetadata
	Entries []Entry // ordered by section declaration order, then position
}

func (b *BoardMetadata) HasSection(section Section) bool {
	return slices.Contains(b.Sections, section)
}
