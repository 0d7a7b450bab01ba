// Package config loads the settings of a cross-validation run.
//
// Values come from, in increasing priority: built-in defaults, an optional
// TOML/YAML/JSON file and SPACETITANIC_* environment variables
// (SPACETITANIC_SEARCH_TRIALS, SPACETITANIC_LOG_LEVEL, ...).
package config

import (
	"io"
	"strings"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SPACETITANIC"

// Config is the root configuration.
type Config struct {
	Search    SearchConfig  `mapstructure:"search"`
	Columns   ColumnsConfig `mapstructure:"columns"`
	Verbose   bool          `mapstructure:"verbose"`
	LogLevel  string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string        `mapstructure:"log_format" validate:"oneof=zerolog console slog"`
}

// SearchConfig configures the hyperparameter search.
type SearchConfig struct {
	Trials          int   `mapstructure:"trials" validate:"gt=0"`
	Seed            int64 `mapstructure:"seed"`
	ReductionFactor int   `mapstructure:"reduction_factor" validate:"gte=2"`
	MinResource     int   `mapstructure:"min_resource" validate:"gte=1"`
}

// ColumnsConfig names the well-known columns of the train and test frames.
type ColumnsConfig struct {
	Label string `mapstructure:"label" validate:"required"`
	Fold  string `mapstructure:"fold" validate:"required,nefield=Label"`
	Preds string `mapstructure:"preds" validate:"required,nefield=Label,nefield=Fold"`
	ID    string `mapstructure:"id" validate:"required"`
}

// GetDefaultConfig returns the built-in defaults.
func GetDefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Trials:          100,
			Seed:            42,
			ReductionFactor: 3,
			MinResource:     1,
		},
		Columns: ColumnsConfig{
			Label: "Transported",
			Fold:  "kfold",
			Preds: "preds",
			ID:    "PassengerId",
		},
		Verbose:   true,
		LogLevel:  "info",
		LogFormat: "zerolog",
	}
}

func setDefault(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("search.trials", d.Search.Trials)
	v.SetDefault("search.seed", d.Search.Seed)
	v.SetDefault("search.reduction_factor", d.Search.ReductionFactor)
	v.SetDefault("search.min_resource", d.Search.MinResource)
	v.SetDefault("columns.label", d.Columns.Label)
	v.SetDefault("columns.fold", d.Columns.Fold)
	v.SetDefault("columns.preds", d.Columns.Preds)
	v.SetDefault("columns.id", d.Columns.ID)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefault(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from a file. An empty path yields the
// defaults with environment overrides applied.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}
	return decode(v)
}

// ReadConfig loads configuration of the given type ("toml", "yaml", "json")
// from r.
func ReadConfig(r io.Reader, configType string) (*Config, error) {
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. The first violation is reported as a
// ValidationError naming the offending field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Namespace(), "failed on '"+fe.Tag()+"'", fe.Value())
	}
	return errors.Wrap(err, "invalid config")
}
