// Package sink opens the shot store selected by pipeline.sink.
package sink

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/config"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository/postgres"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository/sqlite"
)

// Sink bundles an opened shot store. The zero value is the "none" sink.
type Sink struct {
	Name   string
	Shots  repository.ShotRepository
	Tx     repository.TxManager
	Pinger repository.Pinger
	close  func()
}

// Enabled reports whether rows can be persisted.
func (s *Sink) Enabled() bool { return s.Shots != nil }

// Close releases the underlying connections. Safe on the zero value.
func (s *Sink) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the configured store and applies pending migrations.
func Open(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Sink, error) {
	l := logger.With().Str("module", "sink").Str("sink", cfg.Pipeline.Sink).Logger()
	switch cfg.Pipeline.Sink {
	case "", config.SinkNone:
		l.Debug().Msg("no shot sink configured")
		return &Sink{Name: config.SinkNone}, nil
	case config.SinkPostgres:
		repo, err := repository.New(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres sink: %w", err)
		}
		if err := postgres.Migrate(ctx, repo.Pool()); err != nil {
			repo.Close()
			return nil, fmt.Errorf("postgres sink: %w", err)
		}
		shots := postgres.NewShotRepository(repo.Pool())
		l.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.DBName).Msg("shot sink ready")
		return &Sink{
			Name:   config.SinkPostgres,
			Shots:  shots,
			Tx:     postgres.NewTxManager(repo.Pool()),
			Pinger: repo,
			close:  repo.Close,
		}, nil
	case config.SinkSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite sink: %w", err)
		}
		l.Info().Str("path", cfg.SQLite.Path).Msg("shot sink ready")
		return &Sink{
			Name:   config.SinkSQLite,
			Shots:  store,
			Tx:     store,
			Pinger: store,
			close: func() {
				if err := store.Close(); err != nil {
					l.Warn().Err(err).Msg("close sqlite sink")
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Pipeline.Sink)
	}
}
