// Package config loads lotctl settings from flags, LOTCTL_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/lotkit/internal/logger"
	"github.com/joshuapare/lotkit/lot"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LOTCTL"

// Keys understood by Load.
const (
	KeyFloors        = "floors"
	KeySpotsPerFloor = "spots"
	KeyFloorSizes    = "floor-sizes"
	KeyLogDir        = "log-dir"
	KeyLogLevel      = "log-level"
	KeyVerbose       = "verbose"
)

// Defaults for a lot built without any configuration.
const (
	DefaultFloors        = 3
	DefaultSpotsPerFloor = 10
)

// Config is the resolved lotctl configuration.
type Config struct {
	Floors        int    `mapstructure:"floors"`
	SpotsPerFloor int    `mapstructure:"spots"`
	FloorSizes    []int  `mapstructure:"floor-sizes"`
	LogDir        string `mapstructure:"log-dir"`
	LogLevel      string `mapstructure:"log-level"`
	Verbose       bool   `mapstructure:"verbose"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFloors, DefaultFloors)
	v.SetDefault(KeySpotsPerFloor, DefaultSpotsPerFloor)
	v.SetDefault(KeyFloorSizes, []int{})
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyVerbose, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs whose name is a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case KeyFloors, KeySpotsPerFloor, KeyFloorSizes, KeyLogDir, KeyLogLevel, KeyVerbose:
			if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
				bindErr = err
			}
		}
	})
	return bindErr
}

// Load reads file (if non-empty) into v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects configurations that cannot build a lot.
func (c Config) Validate() error {
	if len(c.FloorSizes) > 0 {
		for i, n := range c.FloorSizes {
			if n <= 0 {
				return fmt.Errorf("floor-sizes[%d]: must be positive, got %d", i, n)
			}
		}
	} else {
		if c.Floors <= 0 {
			return fmt.Errorf("floors: must be positive, got %d", c.Floors)
		}
		if c.SpotsPerFloor <= 0 {
			return fmt.Errorf("spots: must be positive, got %d", c.SpotsPerFloor)
		}
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	return nil
}

// LotOptions converts the configuration into lot.Options.
func (c Config) LotOptions() lot.Options {
	return lot.Options{
		FloorSizes:    c.FloorSizes,
		Floors:        c.Floors,
		SpotsPerFloor: c.SpotsPerFloor,
	}
}

// LoggerOptions converts the configuration into logger.Options. Logging is
// enabled when a log directory is set or verbose output is requested.
func (c Config) LoggerOptions() logger.Options {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	return logger.Options{
		Enabled: c.LogDir != "" || c.Verbose,
		LogDir:  c.LogDir,
		Level:   level,
	}
}
