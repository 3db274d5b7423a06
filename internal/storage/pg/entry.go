package pg

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/ordering"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var entry domain.Entry
	var attrs []byte
	err := row.Scan(
		&entry.Id, &entry.Board, &entry.Section, &entry.Position,
		&entry.Text, &attrs, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.Attrs = attrs
	return entry, nil
}

const entryColumns = "id, board, section, position, text, attrs, created, updated"

// attrsParam prepares opaque JSON metadata for a jsonb parameter.
// lib/pq would send []byte as bytea, so pass it as a string and let the
// server infer jsonb; empty metadata becomes NULL.
func attrsParam(attrs json.RawMessage) any {
	if len(attrs) == 0 {
		return nil
	}
	return string(attrs)
}

// boardSections fetches the board's section set, NotFound if the board
// does not exist.
func boardSections(q querier, board domain.BoardShortName) (domain.Sections, error) {
	var sections domain.Sections
	err := q.QueryRow("SELECT sections FROM boards WHERE short_name = $1", board).Scan(&sections)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, asStoreError(fmt.Errorf("failed to fetch board sections: %w", err))
	}
	return sections, nil
}

func sectionCount(q querier, board domain.BoardShortName, section domain.Section) (int, error) {
	var count int
	err := q.QueryRow(
		"SELECT COUNT(*) FROM entries WHERE board = $1 AND section = $2",
		board, section,
	).Scan(&count)
	if err != nil {
		return 0, asStoreError(fmt.Errorf("failed to count section entries: %w", err))
	}
	return count, nil
}

func getEntry(q querier, board domain.BoardShortName, id domain.EntryId) (domain.Entry, error) {
	entry, err := scanEntry(q.QueryRow(
		fmt.Sprintf("SELECT %s FROM entries WHERE board = $1 AND id = $2", entryColumns),
		board, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Entry{}, internal_errors.NotFound("Entry not found")
		}
		return domain.Entry{}, asStoreError(fmt.Errorf("failed to fetch entry: %w", err))
	}
	return entry, nil
}

// applyShift moves one contiguous range of positions. The moved/deleted
// entry is always excluded: its row is written (or gone) separately.
// The unique (board, section, position) index is deferred, so the range
// update cannot trip transient duplicates.
func applyShift(tx *sql.Tx, board domain.BoardShortName, exclude domain.EntryId, sh ordering.Shift) error {
	var err error
	if sh.To == ordering.NoUpper {
		_, err = tx.Exec(`
            UPDATE entries
            SET position = position + $1, updated = now()
            WHERE board = $2 AND section = $3 AND position >= $4 AND id <> $5
        `, sh.Delta, board, sh.Section, sh.From, exclude)
	} else {
		_, err = tx.Exec(`
            UPDATE entries
            SET position = position + $1, updated = now()
            WHERE board = $2 AND section = $3 AND position >= $4 AND position <= $5 AND id <> $6
        `, sh.Delta, board, sh.Section, sh.From, sh.To, exclude)
	}
	if err != nil {
		return asStoreError(fmt.Errorf("failed to shift positions: %w", err))
	}
	return nil
}

func touchBoard(tx *sql.Tx, board domain.BoardShortName) error {
	if _, err := tx.Exec("UPDATE boards SET last_activity = now() WHERE short_name = $1", board); err != nil {
		return asStoreError(fmt.Errorf("failed to update board activity: %w", err))
	}
	return nil
}

// CreateEntry appends a new entry to its section: position = current
// count, read inside the same transaction as the insert.
func (s *Storage) CreateEntry(creationData domain.EntryCreationData) (entry domain.Entry, err error) {
	defer func() { observeOp("create_entry", err) }()

	err = s.withBoardTx(creationData.Board, func(tx *sql.Tx) error {
		sections, err := boardSections(tx, creationData.Board)
		if err != nil {
			return err
		}
		if !slices.Contains(sections, creationData.Section) {
			return internal_errors.InvalidArgument("Unknown section: " + creationData.Section)
		}

		count, err := sectionCount(tx, creationData.Board, creationData.Section)
		if err != nil {
			return err
		}
		position := ordering.PlanInsert(count)

		entry, err = scanEntry(tx.QueryRow(fmt.Sprintf(`
            INSERT INTO entries (id, board, section, position, text, attrs)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING %s
        `, entryColumns),
			uuid.NewString(), creationData.Board, creationData.Section,
			position, creationData.Text, attrsParam(creationData.Attrs),
		))
		if err != nil {
			return asStoreError(fmt.Errorf("failed to insert entry: %w", err))
		}

		return touchBoard(tx, creationData.Board)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *Storage) GetEntry(board domain.BoardShortName, id domain.EntryId) (domain.Entry, error) {
	return getEntry(s.db, board, id)
}

// MoveEntry relocates an entry within its section or across sections.
// All reads feeding the plan happen inside the board transaction, so a
// retried attempt always replans against fresh state.
func (s *Storage) MoveEntry(board domain.BoardShortName, id domain.EntryId, target domain.Section, targetIndex int) (entry domain.Entry, err error) {
	defer func() { observeOp("move_entry", err) }()

	err = s.withBoardTx(board, func(tx *sql.Tx) error {
		sections, err := boardSections(tx, board)
		if err != nil {
			return err
		}
		if !slices.Contains(sections, target) {
			return internal_errors.InvalidArgument("Unknown section: " + target)
		}

		entry, err = getEntry(tx, board, id)
		if err != nil {
			return err
		}

		srcCount, err := sectionCount(tx, board, entry.Section)
		if err != nil {
			return err
		}
		dstCount := srcCount
		if target != entry.Section {
			if dstCount, err = sectionCount(tx, board, target); err != nil {
				return err
			}
		}

		plan, err := ordering.PlanMove(entry.Section, entry.Position, srcCount, target, targetIndex, dstCount)
		if err != nil {
			return err
		}
		if plan.NoOp {
			return nil
		}

		for _, sh := range plan.Shifts {
			if err := applyShift(tx, board, id, sh); err != nil {
				return err
			}
		}

		entry, err = scanEntry(tx.QueryRow(fmt.Sprintf(`
            UPDATE entries
            SET section = $1, position = $2, updated = now()
            WHERE board = $3 AND id = $4
            RETURNING %s
        `, entryColumns), plan.Section, plan.Position, board, id))
		if err != nil {
			return asStoreError(fmt.Errorf("failed to update moved entry: %w", err))
		}

		return touchBoard(tx, board)
	})
	if err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// DeleteEntry removes an entry and compacts its former section.
// Deliberately not idempotent: a second delete finds no entry and
// returns NotFound.
func (s *Storage) DeleteEntry(board domain.BoardShortName, id domain.EntryId) (err error) {
	defer func() { observeOp("delete_entry", err) }()

	err = s.withBoardTx(board, func(tx *sql.Tx) error {
		entry, err := getEntry(tx, board, id)
		if err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM entries WHERE board = $1 AND id = $2", board, id); err != nil {
			return asStoreError(fmt.Errorf("failed to delete entry: %w", err))
		}

		for _, sh := range ordering.PlanDelete(entry.Section, entry.Position) {
			if err := applyShift(tx, board, id, sh); err != nil {
				return err
			}
		}

		return touchBoard(tx, board)
	})
	return err
}

// ReorderSection atomically replaces a section's ordering with the
// given permutation of its current id set.
func (s *Storage) ReorderSection(board domain.BoardShortName, section domain.Section, ids []domain.EntryId) (err error) {
	defer func() { observeOp("reorder_section", err) }()

	err = s.withBoardTx(board, func(tx *sql.Tx) error {
		sections, err := boardSections(tx, board)
		if err != nil {
			return err
		}
		if !slices.Contains(sections, section) {
			return internal_errors.InvalidArgument("Unknown section: " + section)
		}

		rows, err := tx.Query(
			"SELECT id FROM entries WHERE board = $1 AND section = $2 ORDER BY position",
			board, section,
		)
		if err != nil {
			return asStoreError(fmt.Errorf("failed to fetch section ids: %w", err))
		}
		defer rows.Close()

		var current []domain.EntryId
		for rows.Next() {
			var id domain.EntryId
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("failed to scan entry id: %w", err)
			}
			current = append(current, id)
		}
		if err = rows.Err(); err != nil {
			return asStoreError(fmt.Errorf("rows iteration error: %w", err))
		}

		if err := ordering.ValidateReorder(current, ids); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		// position = index in the ordered list, one pass
		if _, err := tx.Exec(`
            UPDATE entries AS e
            SET position = u.ord - 1, updated = now()
            FROM unnest($3::text[]) WITH ORDINALITY AS u(id, ord)
            WHERE e.board = $1 AND e.section = $2 AND e.id = u.id
        `, board, section, pq.Array(ids)); err != nil {
			return asStoreError(fmt.Errorf("failed to reorder section: %w", err))
		}

		return touchBoard(tx, board)
	})
	return err
}

// UpdateEntryContent is the content-only edit path. It never touches
// position or section, so it needs no board serialization.
func (s *Storage) UpdateEntryContent(board domain.BoardShortName, id domain.EntryId, text *domain.EntryText, attrs json.RawMessage) (domain.Entry, error) {
	entry, err := scanEntry(s.db.QueryRow(fmt.Sprintf(`
        UPDATE entries
        SET text = COALESCE($3, text), attrs = COALESCE($4, attrs), updated = now()
        WHERE board = $1 AND id = $2
        RETURNING %s
    `, entryColumns), board, id, text, attrsParam(attrs)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Entry{}, internal_errors.NotFound("Entry not found")
		}
		return domain.Entry{}, asStoreError(fmt.Errorf("failed to update entry content: %w", err))
	}
	return entry, nil
}

// CheckSectionInvariant verifies the dense position property for one
// section. Exposed for tests and diagnostics.
func (s *Storage) CheckSectionInvariant(board domain.BoardShortName, section domain.Section) error {
	rows, err := s.db.Query(
		"SELECT position FROM entries WHERE board = $1 AND section = $2",
		board, section,
	)
	if err != nil {
		return asStoreError(fmt.Errorf("failed to fetch positions: %w", err))
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err = rows.Err(); err != nil {
		return asStoreError(fmt.Errorf("rows iteration error: %w", err))
	}

	if err := ordering.CheckDense(positions); err != nil {
		return fmt.Errorf("board %q section %q: %w", board, section, err)
	}
	return nil
}
