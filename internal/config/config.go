package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"isorail.dev/internal/generation"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string      `mapstructure:"server_addr"`
	Map        MapConfig   `mapstructure:"map"`
	Sim        SimConfig   `mapstructure:"sim"`
	Log        LogConfig   `mapstructure:"log"`
	Cache      CacheConfig `mapstructure:"cache"`
}

// MapConfig holds world generation settings
type MapConfig struct {
	Cols  int      `mapstructure:"cols"`
	Rows  int      `mapstructure:"rows"`
	Seed  int64    `mapstructure:"seed"`
	Names []string `mapstructure:"names"`
}

// SimConfig holds train simulation settings
type SimConfig struct {
	TickRate   time.Duration `mapstructure:"tick_rate"`
	FrameEvery int           `mapstructure:"frame_every"` // publish a frame every N ticks
	TrainSpeed float64       `mapstructure:"train_speed"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty logs to stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// CacheConfig sizes the generated-world cache
type CacheConfig struct {
	MaxWorlds int64 `mapstructure:"max_worlds"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("map.cols", 25)
	v.SetDefault("map.rows", 25)
	v.SetDefault("map.seed", 0)
	v.SetDefault("map.names", generation.DefaultCityNames)
	v.SetDefault("sim.tick_rate", 16*time.Millisecond)
	v.SetDefault("sim.frame_every", 2)
	v.SetDefault("sim.train_speed", 0.008)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("cache.max_worlds", 32)
}

// Load reads .env, the optional config file and ISORAIL_* environment variables
func Load(configFile string) (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load(".env")

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("isorail")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("data")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates configuration already loaded into v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	// Unmarshal goes through AllSettings, so env overrides of nested keys apply
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the rest of the program relies on
func (c *Config) Validate() error {
	if c.Map.Cols < 2 || c.Map.Rows < 2 {
		return fmt.Errorf("map size %dx%d: %w", c.Map.Cols, c.Map.Rows, generation.ErrGridTooSmall)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %s", c.Sim.TickRate)
	}
	if c.Sim.FrameEvery < 1 {
		return fmt.Errorf("sim.frame_every must be at least 1, got %d", c.Sim.FrameEvery)
	}
	if c.Sim.TrainSpeed <= 0 || c.Sim.TrainSpeed >= 1 {
		return fmt.Errorf("sim.train_speed must be in (0,1), got %v", c.Sim.TrainSpeed)
	}
	if c.Cache.MaxWorlds < 1 {
		return fmt.Errorf("cache.max_worlds must be at least 1, got %d", c.Cache.MaxWorlds)
	}
	return nil
}

// GenerationOptions converts map settings into generator options
func (c *Config) GenerationOptions(seed int64) generation.Options {
	return generation.Options{
		Cols:  c.Map.Cols,
		Rows:  c.Map.Rows,
		Seed:  seed,
		Names: c.Map.Names,
	}
}
