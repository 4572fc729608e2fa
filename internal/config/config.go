package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/andyrewlee/glide/internal/autoadvance"
	"github.com/andyrewlee/glide/internal/settle"
	"github.com/andyrewlee/glide/internal/validation"
)

// LogLevelEnvVar overrides the configured log level.
const LogLevelEnvVar = "GLIDE_LOG_LEVEL"

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// SliderConfig tunes the carousel engine.
type SliderConfig struct {
	Interval        time.Duration // Time between automatic advances
	StabilityFrames int           // Unchanged frames before motion counts as settled
	MaxFrames       int           // Upper bound on a single settle wait
	FrameInterval   time.Duration // Animation frame period
	ScrollStep      int           // Columns per wheel notch; 0 derives it from the width
}

// SettleOptions returns the detector options for this config.
func (s SliderConfig) SettleOptions() settle.Options {
	return settle.Options{
		StabilityFrames: s.StabilityFrames,
		MaxFrames:       s.MaxFrames,
	}
}

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Slider   SliderConfig
	KeyMap   KeyMapConfig
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths: paths,
		Slider: SliderConfig{
			Interval:        autoadvance.DefaultInterval,
			StabilityFrames: settle.DefaultStabilityFrames,
			MaxFrames:       settle.DefaultMaxFrames,
			FrameInterval:   16 * time.Millisecond,
		},
		KeyMap:   KeyMapConfig{},
		LogLevel: "info",
	}, nil
}

// Load loads config overrides from ~/.glide/config.json if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(cfg.Paths.ConfigPath); err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(os.Getenv(LogLevelEnvVar)); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the slider settings and log level.
func (c *Config) Validate() error {
	if err := validation.ValidateInterval(c.Slider.Interval); err != nil {
		return err
	}
	if err := validation.ValidateFrames(c.Slider.StabilityFrames, c.Slider.MaxFrames); err != nil {
		return err
	}
	return validation.ValidateLogLevel(c.LogLevel)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var user struct {
		IntervalMs      *int         `json:"interval_ms"`
		StabilityFrames *int         `json:"stability_frames"`
		MaxFrames       *int         `json:"max_frames"`
		FrameMs         *int         `json:"frame_ms"`
		ScrollStep      *int         `json:"scroll_step"`
		LogLevel        *string      `json:"log_level"`
		KeyMap          KeyMapConfig `json:"keymap,omitempty"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}

	if user.IntervalMs != nil && *user.IntervalMs > 0 {
		c.Slider.Interval = time.Duration(*user.IntervalMs) * time.Millisecond
	}
	if user.StabilityFrames != nil && *user.StabilityFrames > 0 {
		c.Slider.StabilityFrames = *user.StabilityFrames
	}
	if user.MaxFrames != nil && *user.MaxFrames > 0 {
		c.Slider.MaxFrames = *user.MaxFrames
	}
	if user.FrameMs != nil && *user.FrameMs > 0 {
		c.Slider.FrameInterval = time.Duration(*user.FrameMs) * time.Millisecond
	}
	if user.ScrollStep != nil && *user.ScrollStep >= 0 {
		c.Slider.ScrollStep = *user.ScrollStep
	}
	if user.LogLevel != nil {
		c.LogLevel = *user.LogLevel
	}
	if len(user.KeyMap.Bindings) > 0 {
		c.KeyMap = user.KeyMap
	}
	return nil
}
