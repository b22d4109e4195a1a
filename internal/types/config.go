package types

type RunMode string

const (
	// ModeLocal is the mode for running the API server locally
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running the API server in production
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
