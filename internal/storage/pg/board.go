package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"

	"github.com/lib/pq"
)

func (s *Storage) CreateBoard(creationData domain.BoardCreationData) (err error) {
	defer func() { observeOp("create_board", err) }()

	_, err = s.db.Exec(
		"INSERT INTO boards(name, short_name, sections) VALUES($1, $2, $3)",
		creationData.Name, creationData.ShortName, pq.Array(creationData.Sections),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return internal_errors.Conflict("Board already exists")
		}
		return asStoreError(fmt.Errorf("failed to insert board: %w", err))
	}
	return nil
}

func (s *Storage) GetBoardMetadata(shortName domain.BoardShortName) (domain.BoardMetadata, error) {
	var metadata domain.BoardMetadata
	err := s.db.QueryRow(`
        SELECT name, short_name, sections, created, last_activity
        FROM boards
        WHERE short_name = $1
    `, shortName).Scan(
		&metadata.Name, &metadata.ShortName, &metadata.Sections,
		&metadata.CreatedAt, &metadata.LastActivity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BoardMetadata{}, internal_errors.NotFound("Board not found")
		}
		return domain.BoardMetadata{}, asStoreError(fmt.Errorf("failed to fetch board metadata: %w", err))
	}
	return metadata, nil
}

func (s *Storage) GetBoard(shortName domain.BoardShortName) (domain.Board, error) {
	metadata, err := s.GetBoardMetadata(shortName)
	if err != nil {
		return domain.Board{}, err
	}

	// Entries in section declaration order, then position. The invariant
	// only needs to hold between committed transactions, so no lock here.
	rows, err := s.db.Query(`
        SELECT e.id, e.board, e.section, e.position, e.text, e.attrs, e.created, e.updated
        FROM entries e
        JOIN boards b ON b.short_name = e.board
        WHERE e.board = $1
        ORDER BY array_position(b.sections, e.section), e.position
    `, shortName)
	if err != nil {
		return domain.Board{}, asStoreError(fmt.Errorf("failed to fetch entries: %w", err))
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return domain.Board{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return domain.Board{}, asStoreError(fmt.Errorf("rows iteration error: %w", err))
	}

	return domain.Board{BoardMetadata: metadata, Entries: entries}, nil
}

func (s *Storage) DeleteBoard(shortName domain.BoardShortName) (err error) {
	defer func() { observeOp("delete_board", err) }()

	err = s.withBoardTx(shortName, func(tx *sql.Tx) error {
		// Entries go with the board via ON DELETE CASCADE
		result, err := tx.Exec("DELETE FROM boards WHERE short_name = $1", shortName)
		if err != nil {
			return asStoreError(fmt.Errorf("failed to delete board: %w", err))
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("Board not found")
		}
		return nil
	})
	return err
}
