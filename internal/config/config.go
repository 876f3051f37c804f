package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the transaction generator
type Config struct {
	// Data generation configuration
	Generate GenerateConfig `mapstructure:"generate"`

	// Database configuration for the import command
	Database DatabaseConfig `mapstructure:"database"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// GenerateConfig holds transaction generation settings
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// InputFile is the monthly expense aggregate CSV
	InputFile string `mapstructure:"input_file"`

	// OutputDir for the generated transactions file
	OutputDir string `mapstructure:"output_dir"`

	// Compress pipes output through xz
	Compress bool `mapstructure:"compress"`

	// XZPreset is the compression preset 0-9
	XZPreset int `mapstructure:"xz_preset"`

	// FlushBatchRows is input rows per output flush
	FlushBatchRows int `mapstructure:"flush_batch_rows"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Connection string (DSN)
	// Format: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Driver (mysql)
	Driver string `mapstructure:"driver"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Seed:           DefaultSeed,
			InputFile:      "./data/users_monthly_expense_12m.csv",
			OutputDir:      "./output",
			Compress:       false,
			XZPreset:       6,
			FlushBatchRows: FlushBatchRows,
		},
		Database: DatabaseConfig{
			Driver:          DBDriver,
			MaxOpenConns:    DBMaxOpenConns,
			MaxIdleConns:    DBMaxIdleConns,
			ConnMaxLifetime: DBConnMaxLifetime,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	if c.Generate.InputFile == "" {
		errs = append(errs, "generate.input_file must be set")
	}
	if c.Generate.OutputDir == "" {
		errs = append(errs, "generate.output_dir must be set")
	}
	if c.Generate.XZPreset < 0 || c.Generate.XZPreset > 9 {
		errs = append(errs, "generate.xz_preset must be 0-9")
	}
	if c.Generate.FlushBatchRows < 1 {
		errs = append(errs, "generate.flush_batch_rows must be >= 1")
	}

	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
