package utils

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
)

func IsLetter(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

const (
	maxBoardNameLen   = 50
	maxShortNameLen   = 10
	maxSectionNameLen = 30
	maxSections       = 16
)

type BoardValidator struct{}

func (e *BoardValidator) Name(name domain.BoardName) error {
	if name == "" {
		return errors.InvalidArgument("Name is required")
	}
	if utf8.RuneCountInString(name) > maxBoardNameLen {
		return errors.InvalidArgument("Name is too long")
	}
	return nil
}

func (e *BoardValidator) ShortName(name domain.BoardShortName) error {
	if name == "" {
		return errors.InvalidArgument("Short name is required")
	}
	if utf8.RuneCountInString(name) > maxShortNameLen {
		return errors.InvalidArgument("Short name is too long")
	}
	if !IsLetter(name) {
		return errors.InvalidArgument("Short name should contain only letters")
	}
	return nil
}

func (e *BoardValidator) Sections(sections []domain.Section) error {
	if len(sections) == 0 {
		return errors.InvalidArgument("At least one section is required")
	}
	if len(sections) > maxSections {
		return errors.InvalidArgument(fmt.Sprintf("Too many sections (max %d)", maxSections))
	}
	seen := make(map[domain.Section]struct{}, len(sections))
	for _, s := range sections {
		if s == "" {
			return errors.InvalidArgument("Section name is required")
		}
		if utf8.RuneCountInString(s) > maxSectionNameLen {
			return errors.InvalidArgument("Section name is too long")
		}
		if !IsLetter(s) {
			return errors.InvalidArgument("Section name should contain only letters")
		}
		if _, ok := seen[s]; ok {
			return errors.InvalidArgument("Duplicate section name: " + s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

type EntryTextValidator struct {
	MaxLen int
}

func (e *EntryTextValidator) Text(text domain.EntryText) error {
	if utf8.RuneCountInString(text) > e.MaxLen {
		return errors.InvalidArgument("Text is too long")
	}
	return nil
}
