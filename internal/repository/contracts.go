package repository

import (
	"context"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ShotRepository stores projected shot rows. A row is identified by (game key, event id);
// saving it again overwrites the previous version.
type ShotRepository interface {
	// SaveShots upserts rows and reports how many were written.
	SaveShots(ctx context.Context, rows []model.GameShot) (int, error)
	// ListByGame returns a game's shots ordered by sortOrder. A game without stored shots
	// yields ErrNotFound.
	ListByGame(ctx context.Context, gameKey string, p Page) (PageResult[model.ShotOnGoal], error)
}
