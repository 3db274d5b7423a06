package domain

import (
	"encoding/json"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type EntryCreationData struct {
	Board   BoardShortName
	Section Section
	Text    EntryText
	Attrs   json.RawMessage
}

// Entry is a single positioned note on a board.
// Position is owned by the ordering engine: within every (board, section)
// pair committed positions are exactly {0..count-1}.
type Entry struct {
	Id        EntryId
	Board     BoardShortName
	Section   Section
	Position  int
	Text      EntryText
	Attrs     json.RawMessage // free-form metadata, never interpreted here
	CreatedAt time.Time
	UpdatedAt time.Time
}
