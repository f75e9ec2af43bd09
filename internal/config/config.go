package config

import (
	"github.com/maxviazov/hockey-xg-preprocessor/internal/logger"
)

// Sink names accepted by pipeline.sink.
const (
	SinkNone     = "none"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New
	Pipeline PipelineConfig      `mapstructure:"pipeline"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	SQLite   SQLiteConfig        `mapstructure:"sqlite"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// PipelineConfig drives the batch preprocessing run.
type PipelineConfig struct {
	Input       string   `mapstructure:"input"`
	Output      string   `mapstructure:"output"`
	Separator   string   `mapstructure:"separator" validate:"len=1"`
	Enrichments []string `mapstructure:"enrichments"`
	// Strict aborts the run on the first game that fails projection; otherwise the game is skipped.
	Strict bool   `mapstructure:"strict"`
	Sink   string `mapstructure:"sink" validate:"oneof=none postgres sqlite"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}
