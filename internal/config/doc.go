// Package config loads the dashboard configuration.
//
// # Configuration Sources
//
// Values are resolved in the following order, later sources winning:
//
//	1. Default() values
//	2. config.yaml (path from RATPDASH_CONFIG, or config.yaml / configs/config.yaml)
//	3. a .env file in the working directory, if present
//	4. RATPDASH_* environment variables
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	RATPDASH_SERVER_PORT=8080
//	RATPDASH_DATA_CSV_PATH=/srv/data/validations.csv
//	RATPDASH_DATA_TOP_STOPS=10
//	RATPDASH_LOGGING_LEVEL=debug
//	RATPDASH_SECURITY_ALLOWED_ORIGINS=http://localhost:8080,https://dash.example
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    slog.Error("invalid configuration", slog.String("error", err.Error()))
//	    os.Exit(1)
//	}
package config
