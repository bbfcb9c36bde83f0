// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/phuslu/log"

	"github.com/jeranaias/vktier/internal/notice"
	"github.com/jeranaias/vktier/internal/probe"
	"github.com/jeranaias/vktier/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete vktier configuration.
type Config struct {
	Probe  ProbeConfig  `toml:"probe" json:"probe"`
	Notice NoticeConfig `toml:"notice" json:"notice"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// ProbeConfig controls how the external probing tool is invoked.
type ProbeConfig struct {
	// Tool is the probing executable, looked up on PATH.
	Tool string `toml:"tool" json:"tool"`

	// Args is the first-attempt argument template. {index} and {file} are
	// replaced with the adapter index and the artifact path.
	Args []string `toml:"args" json:"args"`

	// FallbackArgs is the retry template. Its stdout is captured into the
	// artifact file when the tool writes none itself.
	FallbackArgs []string `toml:"fallback_args" json:"fallback_args"`

	ArtifactDir  string `toml:"artifact_dir" json:"artifact_dir"`
	ArtifactName string `toml:"artifact_name" json:"artifact_name"`

	// TimeoutSecs bounds each tool invocation.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// NoSuchAdapterMarker is the text the tool prints for an index past the
	// last adapter.
	NoSuchAdapterMarker string `toml:"no_such_adapter_marker" json:"no_such_adapter_marker"`

	MaxAdapters int `toml:"max_adapters" json:"max_adapters"`
}

// NoticeConfig controls how failures are shown to the user.
type NoticeConfig struct {
	// Mode is one of auto, tui, text, none.
	Mode string `toml:"mode" json:"mode"`
	// Wait blocks until the user acknowledges a notice.
	Wait bool `toml:"wait" json:"wait"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible defaults.
func Default() *Config {
	opts := probe.DefaultOptions()
	return &Config{
		Probe: ProbeConfig{
			Tool:                opts.Tool,
			Args:                slices.Clone(opts.Args),
			FallbackArgs:        slices.Clone(opts.FallbackArgs),
			ArtifactDir:         opts.ArtifactDir,
			ArtifactName:        opts.ArtifactName,
			TimeoutSecs:         int(opts.Timeout / time.Second),
			NoSuchAdapterMarker: opts.NoSuchAdapterMarker,
			MaxAdapters:         opts.MaxAdapters,
		},
		Notice: NoticeConfig{
			Mode: notice.ModeAuto,
			Wait: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ProbeOptions converts the probe section into invoker options.
func (c *Config) ProbeOptions() probe.Options {
	return probe.Options{
		Tool:                c.Probe.Tool,
		Args:                slices.Clone(c.Probe.Args),
		FallbackArgs:        slices.Clone(c.Probe.FallbackArgs),
		ArtifactDir:         c.Probe.ArtifactDir,
		ArtifactName:        c.Probe.ArtifactName,
		Timeout:             time.Duration(c.Probe.TimeoutSecs) * time.Second,
		NoSuchAdapterMarker: c.Probe.NoSuchAdapterMarker,
		MaxAdapters:         c.Probe.MaxAdapters,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the vktier configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".vktier"), nil
}

// ConfigPathTOML returns the path to the default TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.vktier/config.toml when it exists, otherwise uses defaults.
// Environment overrides are applied last, then the result is validated.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .json are decoded as JSON, anything else as TOML. Keys absent from the
// file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Unknown keys are logged, not rejected.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warn().Str("path", path).Str("key", key.String()).Msg("Ignoring unknown config key")
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores location fields a file left blank.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Probe.ArtifactDir == "" {
		cfg.Probe.ArtifactDir = defaults.Probe.ArtifactDir
	}
	if cfg.Probe.ArtifactName == "" {
		cfg.Probe.ArtifactName = defaults.Probe.ArtifactName
	}
	if cfg.Notice.Mode == "" {
		cfg.Notice.Mode = defaults.Notice.Mode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveTOML writes the configuration to path, creating its directory.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# vktier configuration file\n")
	buf.WriteString("# {index} and {file} in probe args are replaced per adapter.\n\n")
	if err := cfg.Encode(&buf); err != nil {
		return err
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// LogLevels are the accepted log.level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}

// Timeout and adapter-cap bounds.
const (
	MinTimeoutSecs = 1
	MaxTimeoutSecs = 300
	MinMaxAdapters = 1
	MaxMaxAdapters = 64
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Probe
	// ==========================================================================

	if strings.TrimSpace(c.Probe.Tool) == "" {
		errs = append(errs, ValidationError{
			Field:   "probe.tool",
			Message: "tool cannot be empty",
		})
	}

	if !containsPlaceholder(c.Probe.Args, probe.IndexPlaceholder) {
		errs = append(errs, ValidationError{
			Field:   "probe.args",
			Message: fmt.Sprintf("args must contain %s", probe.IndexPlaceholder),
		})
	}
	if !containsPlaceholder(c.Probe.Args, probe.FilePlaceholder) {
		errs = append(errs, ValidationError{
			Field:   "probe.args",
			Message: fmt.Sprintf("args must contain %s so the artifact can be found", probe.FilePlaceholder),
		})
	}
	if len(c.Probe.FallbackArgs) > 0 && !containsPlaceholder(c.Probe.FallbackArgs, probe.IndexPlaceholder) {
		errs = append(errs, ValidationError{
			Field:   "probe.fallback_args",
			Message: fmt.Sprintf("fallback_args must contain %s", probe.IndexPlaceholder),
		})
	}

	if strings.ContainsAny(c.Probe.ArtifactName, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "probe.artifact_name",
			Message: "artifact_name must be a file name, not a path",
		})
	}

	if c.Probe.TimeoutSecs < MinTimeoutSecs || c.Probe.TimeoutSecs > MaxTimeoutSecs {
		errs = append(errs, ValidationError{
			Field:   "probe.timeout_secs",
			Message: fmt.Sprintf("timeout must be between %d and %d seconds, got %d", MinTimeoutSecs, MaxTimeoutSecs, c.Probe.TimeoutSecs),
		})
	}

	if c.Probe.MaxAdapters < MinMaxAdapters || c.Probe.MaxAdapters > MaxMaxAdapters {
		errs = append(errs, ValidationError{
			Field:   "probe.max_adapters",
			Message: fmt.Sprintf("max_adapters must be between %d and %d, got %d", MinMaxAdapters, MaxMaxAdapters, c.Probe.MaxAdapters),
		})
	}

	// ==========================================================================
	// Notice and log
	// ==========================================================================

	if !slices.Contains(notice.Modes, strings.ToLower(c.Notice.Mode)) {
		errs = append(errs, ValidationError{
			Field:   "notice.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: %s", c.Notice.Mode, strings.Join(notice.Modes, ", ")),
		})
	}

	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Log.Level, strings.Join(LogLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func containsPlaceholder(args []string, placeholder string) bool {
	for _, a := range args {
		if strings.Contains(a, placeholder) {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - VKTIER_TOOL: overrides probe.tool
//   - VKTIER_ARTIFACT_DIR: overrides probe.artifact_dir
//   - VKTIER_TIMEOUT_SECS: overrides probe.timeout_secs
//   - VKTIER_MAX_ADAPTERS: overrides probe.max_adapters
//   - VKTIER_NOTICE_MODE: overrides notice.mode
//   - VKTIER_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if tool := os.Getenv("VKTIER_TOOL"); tool != "" {
		c.Probe.Tool = tool
	}

	if dir := os.Getenv("VKTIER_ARTIFACT_DIR"); dir != "" {
		c.Probe.ArtifactDir = dir
	}

	if v := os.Getenv("VKTIER_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Probe.TimeoutSecs = secs
		} else {
			log.Warn().Str("VKTIER_TIMEOUT_SECS", v).Msg("Ignoring non-numeric override")
		}
	}

	if v := os.Getenv("VKTIER_MAX_ADAPTERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Probe.MaxAdapters = n
		} else {
			log.Warn().Str("VKTIER_MAX_ADAPTERS", v).Msg("Ignoring non-numeric override")
		}
	}

	if mode := os.Getenv("VKTIER_NOTICE_MODE"); mode != "" {
		c.Notice.Mode = mode
	}

	if level := os.Getenv("VKTIER_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
