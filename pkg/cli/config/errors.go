package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrInvalidBackend     = goerr.New("invalid repository backend")
	ErrMissingProjectID   = goerr.New("firestore-project-id is required when using firestore backend")
	ErrMissingSQLitePath  = goerr.New("sqlite-path is required when using sqlite backend")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
	ErrInvalidLinesOnPage = goerr.New("report.lines_per_page must be positive")
	ErrInvalidBcryptCost  = goerr.New("password.bcrypt_cost is out of range")
	ErrInvalidFontPath    = goerr.New("report.font_path is not a readable file")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	BackendKey    = "backend"
)
