package domain

import "github.com/lib/pq"

type (
	BoardName      = string
	BoardShortName = string

	Section  = string
	Sections = pq.StringArray // to save into postgres text[]

	EntryId   = string // uuid, assigned at creation, never reused
	EntryText = string
)
