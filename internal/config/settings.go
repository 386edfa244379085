package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Settings gathers every environment-driven option of the entry points.
type Settings struct {
	SSHHost         string
	SSHPort         string
	HostKeyPath     string
	WebHost         string
	WebPort         string
	DisplayHost     string // Host shown on the web page for "ssh -t"
	CatalogPath     string // Empty means the embedded catalog
	Strict          bool   // Invalid click targets end the session instead of being logged
	Audio           bool   // Local mode only
	LogLevel        string
	LogFile         string // Local mode logs here since the terminal is in raw mode
	ShutdownTimeout time.Duration
}

// FromEnv reads Settings from the environment.
func FromEnv() Settings {
	return Settings{
		SSHHost:         GetEnv("SSH_HOST", "::"),
		SSHPort:         GetEnv("SSH_PORT", "2222"),
		HostKeyPath:     GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
		WebHost:         GetEnv("WEB_HOST", "0.0.0.0"),
		WebPort:         GetEnv("WEB_PORT", "8080"),
		DisplayHost:     GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		CatalogPath:     GetEnv("JARDIN_CATALOG", ""),
		Strict:          GetEnvBool("JARDIN_STRICT", false),
		Audio:           GetEnvBool("JARDIN_AUDIO", false),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		LogFile:         GetEnv("JARDIN_LOG_FILE", ""),
		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
