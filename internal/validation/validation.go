package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateDeckPath checks that path names a readable deck file and returns
// it with a leading ~ expanded.
func ValidateDeckPath(path string) (string, error) {
	path = strings.TrimSpace(path)

	if path == "" {
		return "", &ValidationError{Field: "deck", Message: "path cannot be empty"}
	}

	// Expand home directory
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &ValidationError{Field: "deck", Message: "cannot resolve home directory"}
		}
		switch {
		case path == "~":
			path = home
		case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\"):
			path = filepath.Join(home, path[2:])
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ValidationError{Field: "deck", Message: fmt.Sprintf("%s does not exist", path)}
		}
		return "", &ValidationError{Field: "deck", Message: fmt.Sprintf("cannot access %s: %v", path, err)}
	}
	if info.IsDir() {
		return "", &ValidationError{Field: "deck", Message: fmt.Sprintf("%s is a directory", path)}
	}
	return path, nil
}

// ValidateInterval validates the auto-advance interval.
func ValidateInterval(d time.Duration) error {
	if d <= 0 {
		return &ValidationError{Field: "interval_ms", Message: "must be positive"}
	}
	return nil
}

// ValidateFrames validates the settle window and its frame cap.
func ValidateFrames(stability, maxFrames int) error {
	if stability <= 0 {
		return &ValidationError{Field: "stability_frames", Message: "must be positive"}
	}
	if maxFrames < stability {
		return &ValidationError{Field: "max_frames", Message: fmt.Sprintf("must be at least stability_frames (%d)", stability)}
	}
	return nil
}

// ValidateLogLevel validates a log level name.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return &ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown level '%s'", level)}
}

// SanitizeText removes control characters other than newlines and tabs, so
// deck content cannot smuggle escape sequences into the terminal.
func SanitizeText(input string) string {
	return strings.Map(func(r rune) rune {
		if (r < 32 && r != '\n' && r != '\t') || r == 0x7f {
			return -1
		}
		return r
	}, input)
}

// SanitizeInput removes control characters and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(SanitizeText(input))
}
