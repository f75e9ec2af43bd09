package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/model"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository/migrations"
)

var upsertShotSQL = `INSERT INTO shots (game_key, ` + repository.ShotColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	ON CONFLICT (game_key, event_id) DO UPDATE SET ` + repository.ShotUpdateSet

var listShotsSQL = `SELECT ` + repository.ShotColumns + `, COUNT(*) OVER() AS total
	FROM shots
	WHERE game_key = $1
	ORDER BY sort_order, event_id
	LIMIT $2 OFFSET $3`

type shotRepository struct{ pool *pgxpool.Pool }

// NewShotRepository stores shots in the shots table of the pool's database.
func NewShotRepository(pool *pgxpool.Pool) repository.ShotRepository {
	return &shotRepository{pool: pool}
}

// Migrate brings the shots schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensurePool(pool); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(ctx, db, goose.DialectPostgres)
}

func (r *shotRepository) SaveShots(ctx context.Context, rows []model.GameShot) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(upsertShotSQL, repository.ShotArgs(row)...)
	}
	br := getQ(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	for i := range rows {
		if _, err := br.Exec(); err != nil {
			return i, fmt.Errorf("upsert shot %s/%d: %w", rows[i].GameKey, rows[i].Shot.EventID, repository.MapPgError(err))
		}
	}
	return len(rows), nil
}

func (r *shotRepository) ListByGame(ctx context.Context, gameKey string, p repository.Page) (repository.PageResult[model.ShotOnGoal], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.ShotOnGoal]{}, err
	}
	p = p.Sanitize()
	rows, err := getQ(ctx, r.pool).Query(ctx, listShotsSQL, gameKey, p.Limit, p.Offset)
	if err != nil {
		return repository.PageResult[model.ShotOnGoal]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.ShotOnGoal]{Items: make([]model.ShotOnGoal, 0, p.Limit)}
	for rows.Next() {
		var total int
		s, err := repository.ScanShot(rows, &total)
		if err != nil {
			return repository.PageResult[model.ShotOnGoal]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, s)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ShotOnGoal]{}, repository.MapPgError(err)
	}
	if res.Total == 0 && p.Offset == 0 {
		return repository.PageResult[model.ShotOnGoal]{}, repository.ErrNotFound
	}
	return res, nil
}

// Ping reports whether the pool can reach the database.
func (r *shotRepository) Ping(ctx context.Context) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return r.pool.Ping(ctx)
}

var (
	_ repository.ShotRepository = (*shotRepository)(nil)
	_ repository.Pinger         = (*shotRepository)(nil)
)
