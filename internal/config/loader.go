package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path and applies APP_* environment overrides
// (APP_POSTGRES_USER overrides postgres.user).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	bindEnv(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration used when no file is given; APP_* overrides still apply.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// bindEnv registers every mapstructure key of Config with viper.
// AutomaticEnv alone only sees keys viper already knows about.
func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for _, key := range envKeys(reflect.TypeOf(Config{}), "") {
		_ = v.BindEnv(key)
	}
}

func envKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			keys = append(keys, envKeys(f.Type, name)...)
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hockey-xg-preprocessor")
	v.SetDefault("app.port", 8080)
	v.SetDefault("pipeline.input", "data/pbp_raw.json")
	v.SetDefault("pipeline.separator", ";")
	v.SetDefault("pipeline.sink", SinkNone)
	v.SetDefault("pipeline.strict", true)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 4)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("sqlite.path", "data/shots.db")
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	switch c.Pipeline.Sink {
	case SinkPostgres:
		var missing []string
		if c.Postgres.User == "" {
			missing = append(missing, "postgres.user")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "postgres.password")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "postgres.db")
		}
		if len(missing) > 0 {
			return fmt.Errorf("config validation error: sink postgres requires %s", strings.Join(missing, ", "))
		}
	case SinkSQLite:
		if c.SQLite.Path == "" {
			return errors.New("config validation error: sink sqlite requires sqlite.path")
		}
	}
	return nil
}

// SeparatorRune returns the configured CSV delimiter.
func (c PipelineConfig) SeparatorRune() rune {
	r := []rune(c.Separator)
	if len(r) == 0 {
		return ';'
	}
	return r[0]
}
