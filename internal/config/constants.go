package config

import "time"

// Application constants
const (
	AppName      = "RATP Dashboard"
	EnvPrefix    = "RATPDASH"
	EnvConfigVar = "RATPDASH_CONFIG"

	// Validations export
	DefaultCSVPath   = "TP Dashboard/validations-reseau-ferre-nombre-validations-par-jour-1er-trimestre.csv"
	DefaultDelimiter = ";"
	DefaultTopStops  = 10

	// Table paging
	DefaultPageSize = 100
	MaxPageSize     = 1000

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Timeouts
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
