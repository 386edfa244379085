package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("JARDIN_TEST_STR", "hola")
	t.Setenv("JARDIN_TEST_INT", " 42 ")
	t.Setenv("JARDIN_TEST_BAD_INT", "cuarenta")
	t.Setenv("JARDIN_TEST_BOOL", "yes")
	t.Setenv("JARDIN_TEST_BAD_BOOL", "quizás")
	t.Setenv("JARDIN_TEST_DUR", "3s")

	if got := GetEnv("JARDIN_TEST_STR", "x"); got != "hola" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("JARDIN_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("JARDIN_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("JARDIN_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("GetEnvInt malformed = %d", got)
	}
	if !GetEnvBool("JARDIN_TEST_BOOL", false) {
		t.Error("GetEnvBool yes = false")
	}
	if !GetEnvBool("JARDIN_TEST_BAD_BOOL", true) {
		t.Error("GetEnvBool malformed should fall back")
	}
	if got := GetEnvDuration("JARDIN_TEST_DUR", time.Second); got != 3*time.Second {
		t.Errorf("GetEnvDuration = %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("JARDIN_TEST_FROM_FILE=desde-archivo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("JARDIN_TEST_FROM_FILE") })

	if err := Load(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("JARDIN_TEST_FROM_FILE"); got != "desde-archivo" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JARDIN_STRICT", "true")
	t.Setenv("SSH_PORT", "2323")

	s := FromEnv()
	if !s.Strict || s.SSHPort != "2323" {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.ShutdownTimeout != 15*time.Second && os.Getenv("SHUTDOWN_TIMEOUT") == "" {
		t.Fatalf("unexpected shutdown timeout %v", s.ShutdownTimeout)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if l := NewLogger(os.Stderr, "debug"); l.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", l.GetLevel())
	}
	if l := NewLogger(os.Stderr, "nonsense"); l.GetLevel() != log.InfoLevel {
		t.Errorf("expected info fallback, got %v", l.GetLevel())
	}
}
