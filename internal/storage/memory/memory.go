// Package memory is an in-process executor for the ordering engine with
// the same semantics as the pg store: per-board serialization, all-or-
// nothing mutations, dense positions after every operation. It backs
// unit tests and the randomized concurrency tests.
package memory

import (
	"encoding/json"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/ordering"

	"github.com/google/uuid"
)

type board struct {
	mu       sync.Mutex // board-scoped serialization, same role as the pg advisory lock
	metadata domain.BoardMetadata
	entries  map[domain.EntryId]*domain.Entry
}

type Store struct {
	mu     sync.Mutex
	boards map[domain.BoardShortName]*board
}

func New() *Store {
	return &Store{boards: make(map[domain.BoardShortName]*board)}
}

func (s *Store) CreateBoard(creationData domain.BoardCreationData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[creationData.ShortName]; ok {
		return internal_errors.Conflict("Board already exists")
	}
	now := time.Now().UTC()
	s.boards[creationData.ShortName] = &board{
		metadata: domain.BoardMetadata{
			Name:         creationData.Name,
			ShortName:    creationData.ShortName,
			Sections:     slices.Clone(creationData.Sections),
			CreatedAt:    now,
			LastActivity: now,
		},
		entries: make(map[domain.EntryId]*domain.Entry),
	}
	return nil
}

func (s *Store) DeleteBoard(shortName domain.BoardShortName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[shortName]; !ok {
		return internal_errors.NotFound("Board not found")
	}
	delete(s.boards, shortName)
	return nil
}

func (s *Store) board(shortName domain.BoardShortName) (*board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[shortName]
	if !ok {
		return nil, internal_errors.NotFound("Board not found")
	}
	return b, nil
}

func (s *Store) GetBoardMetadata(shortName domain.BoardShortName) (domain.BoardMetadata, error) {
	b, err := s.board(shortName)
	if err != nil {
		return domain.BoardMetadata{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metadata, nil
}

func (s *Store) GetBoard(shortName domain.BoardShortName) (domain.Board, error) {
	b, err := s.board(shortName)
	if err != nil {
		return domain.Board{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	out := domain.Board{BoardMetadata: b.metadata}
	for _, entry := range b.entries {
		out.Entries = append(out.Entries, *entry)
	}
	sectionRank := make(map[domain.Section]int, len(b.metadata.Sections))
	for i, sec := range b.metadata.Sections {
		sectionRank[sec] = i
	}
	sort.Slice(out.Entries, func(i, j int) bool {
		a, z := out.Entries[i], out.Entries[j]
		if a.Section != z.Section {
			return sectionRank[a.Section] < sectionRank[z.Section]
		}
		return a.Position < z.Position
	})
	return out, nil
}

// sectionEntries returns the section's entries ordered by position.
// Callers must hold b.mu.
func sectionEntries(b *board, section domain.Section) []*domain.Entry {
	var entries []*domain.Entry
	for _, entry := range b.entries {
		if entry.Section == section {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	return entries
}

func (s *Store) CreateEntry(creationData domain.EntryCreationData) (domain.Entry, error) {
	b, err := s.board(creationData.Board)
	if err != nil {
		return domain.Entry{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.metadata.HasSection(creationData.Section) {
		return domain.Entry{}, internal_errors.InvalidArgument("Unknown section: " + creationData.Section)
	}

	now := time.Now().UTC()
	entry := &domain.Entry{
		Id:        uuid.NewString(),
		Board:     creationData.Board,
		Section:   creationData.Section,
		Position:  ordering.PlanInsert(len(sectionEntries(b, creationData.Section))),
		Text:      creationData.Text,
		Attrs:     slices.Clone(creationData.Attrs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.entries[entry.Id] = entry
	b.metadata.LastActivity = now
	return *entry, nil
}

func (s *Store) GetEntry(boardName domain.BoardShortName, id domain.EntryId) (domain.Entry, error) {
	b, err := s.board(boardName)
	if err != nil {
		return domain.Entry{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[id]
	if !ok {
		return domain.Entry{}, internal_errors.NotFound("Entry not found")
	}
	return *entry, nil
}

func applyShifts(b *board, exclude domain.EntryId, shifts []ordering.Shift, now time.Time) {
	for _, entry := range b.entries {
		if entry.Id == exclude {
			continue
		}
		for _, sh := range shifts {
			if sh.Section == entry.Section && sh.Contains(entry.Position) {
				entry.Position += sh.Delta
				entry.UpdatedAt = now
			}
		}
	}
}

func (s *Store) MoveEntry(boardName domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (domain.Entry, error) {
	b, err := s.board(boardName)
	if err != nil {
		return domain.Entry{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.metadata.HasSection(target) {
		return domain.Entry{}, internal_errors.InvalidArgument("Unknown section: " + target)
	}
	entry, ok := b.entries[id]
	if !ok {
		return domain.Entry{}, internal_errors.NotFound("Entry not found")
	}

	srcCount := len(sectionEntries(b, entry.Section))
	dstCount := srcCount
	if target != entry.Section {
		dstCount = len(sectionEntries(b, target))
	}
	plan, err := ordering.PlanMove(entry.Section, entry.Position, srcCount, target, targetIndex, dstCount)
	if err != nil {
		return domain.Entry{}, err
	}
	if plan.NoOp {
		return *entry, nil
	}

	now := time.Now().UTC()
	applyShifts(b, id, plan.Shifts, now)
	entry.Section = plan.Section
	entry.Position = plan.Position
	entry.UpdatedAt = now
	b.metadata.LastActivity = now
	return *entry, nil
}

func (s *Store) DeleteEntry(boardName domain.BoardShortName, id domain.EntryId) error {
	b, err := s.board(boardName)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[id]
	if !ok {
		return internal_errors.NotFound("Entry not found")
	}
	delete(b.entries, id)

	now := time.Now().UTC()
	applyShifts(b, id, ordering.PlanDelete(entry.Section, entry.Position), now)
	b.metadata.LastActivity = now
	return nil
}

func (s *Store) ReorderSection(boardName domain.BoardShortName, section domain.Section, ids []domain.EntryId) error {
	b, err := s.board(boardName)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.metadata.HasSection(section) {
		return internal_errors.InvalidArgument("Unknown section: " + section)
	}

	entries := sectionEntries(b, section)
	current := make([]domain.EntryId, len(entries))
	for i, entry := range entries {
		current[i] = entry.Id
	}
	if err := ordering.ValidateReorder(current, ids); err != nil {
		return err
	}

	now := time.Now().UTC()
	for i, id := range ids {
		b.entries[id].Position = i
		b.entries[id].UpdatedAt = now
	}
	b.metadata.LastActivity = now
	return nil
}

func (s *Store) UpdateEntryContent(boardName domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error) {
	b, err := s.board(boardName)
	if err != nil {
		return domain.Entry{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[id]
	if !ok {
		return domain.Entry{}, internal_errors.NotFound("Entry not found")
	}
	if text != nil {
		entry.Text = *text
	}
	if len(attrs) > 0 {
		entry.Attrs = slices.Clone(attrs)
	}
	entry.UpdatedAt = time.Now().UTC()
	return *entry, nil
}

// CheckSectionInvariant verifies the dense position property for one
// section.
func (s *Store) CheckSectionInvariant(boardName domain.BoardShortName, section domain.Section) error {
	b, err := s.board(boardName)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var positions []int
	for _, entry := range b.entries {
		if entry.Section == section {
			positions = append(positions, entry.Position)
		}
	}
	return ordering.CheckDense(positions)
}
