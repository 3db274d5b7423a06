package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockEntryStorage mocks the EntryStorage interface.
type MockEntryStorage struct {
	createEntryFunc    func(creationData domain.EntryCreationData) (domain.Entry, error)
	getEntryFunc       func(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error)
	moveEntryFunc      func(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error)
	deleteEntryFunc    func(board domain.BoardShortName, id domain.EntryId) error
	reorderSectionFunc func(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) error
	updateContentFunc  func(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error)
}

func (m *MockEntryStorage) CreateEntry(creationData domain.EntryCreationData) (domain.Entry, error) {
	if m.createEntryFunc != nil {
		return m.createEntryFunc(creationData)
	}
	return domain.Entry{Id: "1", Board: creationData.Board, Section: creationData.Section, Text: creationData.Text}, nil
}

func (m *MockEntryStorage) GetEntry(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error) {
	if m.getEntryFunc != nil {
		return m.getEntryFunc(board, id)
	}
	return domain.Entry{Id: id, Board: board}, nil
}

func (m *MockEntryStorage) MoveEntry(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error) {
	if m.moveEntryFunc != nil {
		return m.moveEntryFunc(board, id, target, targetIndex)
	}
	return domain.Entry{Id: id, Board: board, Section: target, Position: targetIndex}, nil
}

func (m *MockEntryStorage) DeleteEntry(board domain.BoardShortName, id domain.EntryId) error {
	if m.deleteEntryFunc != nil {
		return m.deleteEntryFunc(board, id)
	}
	return nil
}

func (m *MockEntryStorage) ReorderSection(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) error {
	if m.reorderSectionFunc != nil {
		return m.reorderSectionFunc(board, section, ids)
	}
	return nil
}

func (m *MockEntryStorage) UpdateEntryContent(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error) {
	if m.updateContentFunc != nil {
		return m.updateContentFunc(board, id, text, attrs)
	}
	return domain.Entry{Id: id, Board: board}, nil
}

// MockEntryValidator mocks the EntryValidator interface.
type MockEntryValidator struct {
	textFunc func(text domain.EntryText) error
}

func (m *MockEntryValidator) Text(text domain.EntryText) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}

func TestEntryCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewEntry(&MockEntryStorage{}, &MockEntryValidator{})
		entry, err := svc.Create(domain.EntryCreationData{Board: "tb", Section: "todo", Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", entry.Text)
	})

	t.Run("validation failure short-circuits storage", func(t *testing.T) {
		storageCalled := false
		storage := &MockEntryStorage{
			createEntryFunc: func(creationData domain.EntryCreationData) (domain.Entry, error) {
				storageCalled = true
				return domain.Entry{}, nil
			},
		}
		validator := &MockEntryValidator{textFunc: func(text domain.EntryText) error {
			return internal_errors.InvalidArgument("Text is too long")
		}}
		_, err := NewEntry(storage, validator).Create(domain.EntryCreationData{Board: "tb", Section: "todo", Text: "x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
		assert.False(t, storageCalled)
	})

	t.Run("storage error propagates untouched", func(t *testing.T) {
		storageErr := errors.New("mock storage error")
		storage := &MockEntryStorage{
			createEntryFunc: func(creationData domain.EntryCreationData) (domain.Entry, error) {
				return domain.Entry{}, storageErr
			},
		}
		_, err := NewEntry(storage, &MockEntryValidator{}).Create(domain.EntryCreationData{Board: "tb", Section: "todo", Text: "x"})
		assert.ErrorIs(t, err, storageErr)
	})
}

func TestEntryMove(t *testing.T) {
	t.Run("passes arguments through", func(t *testing.T) {
		var gotBoard, gotId, gotTarget string
		var gotIndex int
		storage := &MockEntryStorage{
			moveEntryFunc: func(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error) {
				gotBoard, gotId, gotTarget, gotIndex = board, id, target, targetIndex
				return domain.Entry{Id: id, Section: target, Position: targetIndex}, nil
			},
		}
		entry, err := NewEntry(storage, &MockEntryValidator{}).Move("tb", "e1", "done", 2)
		require.NoError(t, err)
		assert.Equal(t, "tb", gotBoard)
		assert.Equal(t, "e1", gotId)
		assert.Equal(t, "done", gotTarget)
		assert.Equal(t, 2, gotIndex)
		assert.Equal(t, 2, entry.Position)
	})

	t.Run("not found propagates", func(t *testing.T) {
		storage := &MockEntryStorage{
			moveEntryFunc: func(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error) {
				return domain.Entry{}, internal_errors.NotFound("Entry not found")
			},
		}
		_, err := NewEntry(storage, &MockEntryValidator{}).Move("tb", "missing", "done", 0)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
	})
}

func TestEntryDelete(t *testing.T) {
	storage := &MockEntryStorage{
		deleteEntryFunc: func(board domain.BoardShortName, id domain.EntryId) error {
			return internal_errors.NotFound("Entry not found")
		},
	}
	err := NewEntry(storage, &MockEntryValidator{}).Delete("tb", "gone")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
}

func TestEntryUpdateContent(t *testing.T) {
	t.Run("validates new text", func(t *testing.T) {
		validator := &MockEntryValidator{textFunc: func(text domain.EntryText) error {
			return internal_errors.InvalidArgument("Text is too long")
		}}
		text := domain.EntryText("way too long")
		_, err := NewEntry(&MockEntryStorage{}, validator).UpdateContent("tb", "e1", &text, nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("nil text skips validation", func(t *testing.T) {
		validatorCalled := false
		validator := &MockEntryValidator{textFunc: func(text domain.EntryText) error {
			validatorCalled = true
			return nil
		}}
		_, err := NewEntry(&MockEntryStorage{}, validator).UpdateContent("tb", "e1", nil, json.RawMessage(`{"tag":"x"}`))
		require.NoError(t, err)
		assert.False(t, validatorCalled)
	})
}
