// Package sqlite provides a file-backed shot store for single-machine runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository/migrations"
)

var upsertShotSQL = `INSERT INTO shots (game_key, ` + repository.ShotColumns + `)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT (game_key, event_id) DO UPDATE SET ` + repository.ShotUpdateSet

var listShotsSQL = `SELECT ` + repository.ShotColumns + `, COUNT(*) OVER() AS total
	FROM shots
	WHERE game_key = ?
	ORDER BY sort_order, event_id
	LIMIT ? OFFSET ?`

// Store wraps a SQLite database holding the shots table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", url.PathEscape(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db, goose.DialectSQLite3); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// SaveShots upserts rows in one transaction.
func (s *Store) SaveShots(ctx context.Context, rows []model.GameShot) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	written := 0
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		tx := txFrom(ctx)
		stmt, err := tx.PrepareContext(ctx, upsertShotSQL)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()
		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, repository.ShotArgs(row)...); err != nil {
				return fmt.Errorf("upsert shot %s/%d: %w", row.GameKey, row.Shot.EventID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// ListByGame returns a page of a game's shots ordered by sortOrder.
func (s *Store) ListByGame(ctx context.Context, gameKey string, p repository.Page) (repository.PageResult[model.ShotOnGoal], error) {
	p = p.Sanitize()
	query := s.db.QueryContext
	// the pool has one connection, so reads inside a transaction must use it
	if tx := txFrom(ctx); tx != nil {
		query = tx.QueryContext
	}
	rows, err := query(ctx, listShotsSQL, gameKey, p.Limit, p.Offset)
	if err != nil {
		return repository.PageResult[model.ShotOnGoal]{}, fmt.Errorf("list shots: %w", err)
	}
	defer rows.Close()

	res := repository.PageResult[model.ShotOnGoal]{Items: make([]model.ShotOnGoal, 0, p.Limit)}
	for rows.Next() {
		var total int
		shot, err := repository.ScanShot(rows, &total)
		if err != nil {
			return repository.PageResult[model.ShotOnGoal]{}, fmt.Errorf("scan shot: %w", err)
		}
		res.Items = append(res.Items, shot)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ShotOnGoal]{}, fmt.Errorf("iterate shots: %w", err)
	}
	if res.Total == 0 && p.Offset == 0 {
		return repository.PageResult[model.ShotOnGoal]{}, repository.ErrNotFound
	}
	return res, nil
}

type txKey struct{}

func txFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// WithinTx runs fn inside a transaction. Nested calls reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var (
	_ repository.ShotRepository = (*Store)(nil)
	_ repository.TxManager      = (*Store)(nil)
	_ repository.Pinger         = (*Store)(nil)
)
