package service

import (
	"github.com/corkboard-dev/corkboard/internal/domain"
)

// to mock service in tests
type BoardService interface {
	Create(creationData domain.BoardCreationData) error
	Get(shortName domain.BoardShortName) (domain.Board, error)
	Delete(shortName domain.BoardShortName) error
}

type Board struct {
	storage         BoardStorage
	validator       BoardValidator
	defaultSections []domain.Section
}

type BoardStorage interface {
	CreateBoard(creationData domain.BoardCreationData) error
	GetBoard(shortName domain.BoardShortName) (domain.Board, error)
	DeleteBoard(shortName domain.BoardShortName) error
}

type BoardValidator interface {
	Name(name domain.BoardName) error
	ShortName(name domain.BoardShortName) error
	Sections(sections []domain.Section) error
}

func NewBoard(storage BoardStorage, validator BoardValidator, defaultSections []domain.Section) BoardService {
	return &Board{storage, validator, defaultSections}
}

func (b *Board) Create(creationData domain.BoardCreationData) error {
	if err := b.validator.Name(creationData.Name); err != nil {
		return err
	}
	if err := b.validator.ShortName(creationData.ShortName); err != nil {
		return err
	}
	if len(creationData.Sections) == 0 {
		creationData.Sections = b.defaultSections
	}
	if err := b.validator.Sections(creationData.Sections); err != nil {
		return err
	}
	return b.storage.CreateBoard(creationData)
}

func (b *Board) Get(shortName domain.BoardShortName) (domain.Board, error) {
	if err := b.validator.ShortName(shortName); err != nil {
		return domain.Board{}, err
	}
	return b.storage.GetBoard(shortName)
}

func (b *Board) Delete(shortName domain.BoardShortName) error {
	if err := b.validator.ShortName(shortName); err != nil {
		return err
	}
	return b.storage.DeleteBoard(shortName)
}
