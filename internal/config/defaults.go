// Package config contains configuration and compile-time defaults for the
// transaction generator. Edit the constants and recompile to tune behavior.
package config

import "time"

// Generation defaults
const (
	// DefaultSeed is the run seed used when none is given (0 = random).
	DefaultSeed = 42

	// FlushBatchRows is how many input rows are processed between output
	// flushes. Keeps memory flat on multi-million-row inputs.
	FlushBatchRows = 500

	// LogEvery is how many input rows pass between progress updates.
	LogEvery = 500

	// OutputName is the output filename without extension.
	OutputName = "transactions"
)

// Dataset window: the twelve months the monthly aggregates cover. Rows
// whose month_start_date cannot be parsed fall back to this window via
// their month_index.
const (
	WindowStartYear  = 2024
	WindowStartMonth = 5 // May 2024 through April 2025
	WindowMonths     = 12
)

// Database defaults for the import command
const (
	// DBDriver is the database driver to use
	DBDriver = "mysql"

	// DBMaxOpenConns is maximum open connections in the pool
	DBMaxOpenConns = 10

	// DBMaxIdleConns is maximum idle connections in the pool
	DBMaxIdleConns = 2

	// DBConnMaxLifetime is how long a connection can be reused
	DBConnMaxLifetime = 5 * time.Minute

	// DBImportTimeout caps a single LOAD DATA statement
	DBImportTimeout = 30 * time.Minute
)
