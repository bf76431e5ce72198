package neural

import (
	"fmt"
	"strings"

	"github.com/baldhumanity/sparsenet/internal/logging"
	"gopkg.in/ini.v1"
)

// Config stores the parameters needed to build a Simulation.
type Config struct {
	Simulation SimulationConfig
	Logging    LoggingConfig
}

// SimulationConfig holds the generation parameters. They are fixed for the
// lifetime of a Simulation and shared by every network in it.
type SimulationConfig struct {
	Seed           uint64 `ini:"seed"`
	PopulationSize int    `ini:"population_size"`
	InputSize      int    `ini:"input_size"`
	OutputSize     int    `ini:"output_size"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level string `ini:"level"` // "info", "debug" or "trace"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:           1,
			PopulationSize: 1,
			InputSize:      2,
			OutputSize:     2,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig loads configuration parameters from INI data held in memory.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := &Config{}

	if err := cfg.Section("Simulation").StrictMapTo(&config.Simulation); err != nil {
		return nil, fmt.Errorf("failed to map [Simulation] section: %w", err)
	}
	if err := cfg.Section("Logging").StrictMapTo(&config.Logging); err != nil {
		return nil, fmt.Errorf("failed to map [Logging] section: %w", err)
	}

	// Inline comments are kept by IgnoreInlineComment, strip them from strings
	config.Logging.Level = strings.ToLower(cleanIniString(config.Logging.Level))

	defaults := DefaultConfig()
	if !cfg.Section("Simulation").HasKey("seed") {
		config.Simulation.Seed = defaults.Simulation.Seed
	}
	if !cfg.Section("Simulation").HasKey("population_size") {
		config.Simulation.PopulationSize = defaults.Simulation.PopulationSize
	}
	if !cfg.Section("Simulation").HasKey("input_size") {
		config.Simulation.InputSize = defaults.Simulation.InputSize
	}
	if !cfg.Section("Simulation").HasKey("output_size") {
		config.Simulation.OutputSize = defaults.Simulation.OutputSize
	}
	if config.Logging.Level == "" {
		config.Logging.Level = defaults.Logging.Level
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values a Simulation cannot be built from.
func (c *Config) Validate() error {
	if c.Simulation.PopulationSize < 0 {
		return fmt.Errorf("config error: population_size cannot be negative")
	}
	if c.Simulation.InputSize < 0 {
		return fmt.Errorf("config error: input_size cannot be negative")
	}
	if c.Simulation.OutputSize < 0 {
		return fmt.Errorf("config error: output_size cannot be negative")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
