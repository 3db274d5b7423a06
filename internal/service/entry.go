package service

import (
	"encoding/json"

	"github.com/corkboard-dev/corkboard/internal/domain"
)

// to mock service in tests
type EntryService interface {
	Create(creationData domain.EntryCreationData) (domain.Entry, error)
	Get(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error)
	Move(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error)
	Delete(board domain.BoardShortName, id domain.EntryId) error
	Reorder(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) error
	UpdateContent(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error)
}

type Entry struct {
	storage   EntryStorage
	validator EntryValidator
}

type EntryStorage interface {
	CreateEntry(creationData domain.EntryCreationData) (domain.Entry, error)
	GetEntry(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error)
	MoveEntry(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error)
	DeleteEntry(board domain.BoardShortName, id domain.EntryId) error
	ReorderSection(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) error
	UpdateEntryContent(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error)
}

type EntryValidator interface {
	Text(text domain.EntryText) error
}

func NewEntry(storage EntryStorage, validator EntryValidator) EntryService {
	return &Entry{storage, validator}
}

func (e *Entry) Create(creationData domain.EntryCreationData) (domain.Entry, error) {
	if err := e.validator.Text(creationData.Text); err != nil {
		return domain.Entry{}, err
	}
	return e.storage.CreateEntry(creationData)
}

func (e *Entry) Get(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error) {
	return e.storage.GetEntry(board, id)
}

func (e *Entry) Move(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error) {
	return e.storage.MoveEntry(board, id, target, targetIndex)
}

func (e *Entry) Delete(board domain.BoardShortName, id domain.EntryId) error {
	return e.storage.DeleteEntry(board, id)
}

func (e *Entry) Reorder(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) error {
	return e.storage.ReorderSection(board, section, ids)
}

func (e *Entry) UpdateContent(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error) {
	if text != nil {
		if err := e.validator.Text(*text); err != nil {
			return domain.Entry{}, err
		}
	}
	return e.storage.UpdateEntryContent(board, id, text, attrs)
}
