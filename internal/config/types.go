package config

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultParallel     = 4
	DefaultFetchTimeout = 30
	DefaultCacheDir     = ".marq-cache"
)

func DefaultPatterns() []string {
	return []string{"**/*.xml", "**/*.html", "**/*.svg"}
}

type Config struct {
	Patterns  []string `koanf:"patterns" validate:"omitempty,dive,glob"`
	Exclude   []string `koanf:"exclude"  validate:"omitempty,dive,glob"`
	Parallel  int      `koanf:"parallel" validate:"gte=0,lte=64"`
	Fetch     Fetch    `koanf:"fetch"`
	ConfigDir string   `koanf:"-"`
}

type Fetch struct {
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"gte=0,lte=600"`
	CacheDir       string `koanf:"cache_dir"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})

	return v
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if len(c.Patterns) == 0 {
		c.Patterns = DefaultPatterns()
	}

	if c.Parallel == 0 {
		c.Parallel = DefaultParallel
	}

	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = DefaultFetchTimeout
	}

	if c.Fetch.CacheDir == "" {
		c.Fetch.CacheDir = DefaultCacheDir
	}
}

func (c *Config) Validate() error {
	v := newValidator()

	valErr := v.Struct(c)
	if valErr == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) {
		return oops.
			Code("CONFIG_INVALID").
			Wrapf(valErr, "validating config")
	}

	for _, fe := range validationErrors {
		return mapValidationError(c, fe)
	}

	return nil
}

func mapValidationError(cfg *Config, fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Tag() == "glob":
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			With("pattern", fe.Value()).
			Hint("Patterns use doublestar glob syntax, e.g. **/*.xml").
			Errorf("invalid glob pattern %q in %q", fe.Value(), field)

	case field == "parallel":
		return oops.
			Code("CONFIG_INVALID").
			With("field", "parallel").
			With("value", cfg.Parallel).
			Hint("parallel must be between 0 and 64").
			Errorf("invalid parallel value %d", cfg.Parallel)

	case field == "timeoutseconds":
		return oops.
			Code("CONFIG_INVALID").
			With("field", "fetch.timeout_seconds").
			With("value", cfg.Fetch.TimeoutSeconds).
			Hint("fetch.timeout_seconds must be between 0 and 600").
			Errorf("invalid fetch timeout %d", cfg.Fetch.TimeoutSeconds)

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q", field)
	}
}
