package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/config"
)

// Repository owns the pgx connection pool shared by the Postgres stores.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection before returning.
func New(ctx context.Context, cfg config.PostgresConfig, logger *zerolog.Logger) (*Repository, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   zerologTracer(*logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Second
	poolConfig.HealthCheckPeriod = time.Duration(cfg.HealthCheckPeriod) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	// bounded so a dead database does not hang startup
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("user", cfg.User).
		Str("db", cfg.DBName).
		Msg("Successfully connected to PostgreSQL")

	return &Repository{pool: pool}, nil
}

// DSN builds a postgres URL with proper escaping of credentials.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Pool exposes the underlying pool to the store constructors.
func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

// Ping checks that the database answers.
func (r *Repository) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

// Close releases every pooled connection.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch {
	case l <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case l <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case l <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case l <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}

// zerologTracer forwards pgx trace output to zerolog under component=pgx.
// SQL text and args are only attached at trace level.
func zerologTracer(logger zerolog.Logger) tracelog.LoggerFunc {
	l := logger.With().Str("component", "pgx").Logger()
	return func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var event *zerolog.Event
		switch level {
		case tracelog.LogLevelNone:
			return
		case tracelog.LogLevelTrace:
			event = l.Trace()
			if sql, ok := data["sql"]; ok {
				event = event.Interface("sql", sql)
				delete(data, "sql")
			}
			if args, ok := data["args"]; ok {
				event = event.Interface("args", args)
				delete(data, "args")
			}
		case tracelog.LogLevelDebug:
			event = l.Debug()
		case tracelog.LogLevelInfo:
			event = l.Info()
		case tracelog.LogLevelWarn:
			event = l.Warn()
		case tracelog.LogLevelError:
			event = l.Error()
		default:
			event = l.Info().Str("pgx_log_level", level.String())
		}
		if len(data) > 0 {
			event = event.Fields(data)
		}
		event.Msg(msg)
	}
}
