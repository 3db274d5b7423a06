// Package pg is the transactional executor for the ordering engine.
// Every mutating operation runs as one transaction serialized per board
// with an advisory lock, so concurrent writers can never interleave
// their read-compute-write cycles on the same board.
package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log"

	"github.com/corkboard-dev/corkboard/internal/config"
	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/logger"

	"github.com/lib/pq"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	log.Print("Connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	log.Print("Succesfully connected to db")
	return &Storage{db, cfg}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port, cfg.Private.Pg.User, cfg.Private.Pg.Password, cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports whether the database connection is alive. Used by the
// readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withBoardTx runs fn inside a transaction holding the board's advisory
// lock. Serialization/deadlock failures rerun fn so the plan is always
// recomputed from fresh reads; exhausted attempts surface as 409.
func (s *Storage) withBoardTx(board domain.BoardShortName, fn func(*sql.Tx) error) error {
	attempts := s.cfg.Public.TxMaxRetries
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = s.runBoardTx(board, fn)
		if !isRetryable(err) {
			return err
		}
		txRetriesTotal.Inc()
		logger.Log.Warn("retrying board transaction", "board", board, "attempt", i+1, "error", err)
	}
	return internal_errors.Conflict("concurrent modification, retry the operation")
}

func (s *Storage) runBoardTx(board domain.BoardShortName, fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return asStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	// Board-scoped serialization. hashtext keeps the lock keyspace per
	// board name; different boards proceed concurrently.
	if _, err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", board); err != nil {
		return asStoreError(fmt.Errorf("failed to acquire board lock: %w", err))
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return asStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// asStoreError maps driver connectivity failures to 503 so callers can
// distinguish them from data errors. Everything else stays a plain
// wrapped error (500 at the handler).
func asStoreError(err error) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return internal_errors.StoreUnavailable(err.Error())
	}
	return err
}
