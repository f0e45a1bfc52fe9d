// Package config resolves turretlint settings from defaults, an optional
// .turretlint.yaml file and TURRETLINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/turretlint/internal/adapter"
	m "github.com/mouse-blink/turretlint/internal/model"
)

// FileName is the optional project configuration file.
const FileName = ".turretlint.yaml"

// Environment variables read by Load.
const (
	EnvExtensions = "TURRETLINT_EXTENSIONS"
	EnvParallel   = "TURRETLINT_PARALLEL"
	EnvFailOn     = "TURRETLINT_FAIL_ON"
	EnvReports    = "TURRETLINT_REPORTS"
)

// FailOnNone disables the exit status check.
const FailOnNone = "none"

// Config holds the resolved settings for one CLI invocation.
type Config struct {
	Extensions []string `yaml:"extensions"`
	Parallel   int      `yaml:"parallel"`
	FailOn     string   `yaml:"fail_on"`
	Reports    string   `yaml:"reports"`
	Limits     m.Limits `yaml:"limits"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Extensions: append([]string(nil), adapter.DefaultExtensions...),
		Parallel:   runtime.NumCPU(),
		FailOn:     string(m.SeverityError),
		Limits:     m.DefaultLimits(),
	}
}

// Load resolves the configuration for dir. A .env file in dir is loaded
// into the environment first; variables already set are not overwritten.
func Load(dir string) (Config, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := Default()

	if err := cfg.mergeFile(filepath.Join(dir, FileName)); err != nil {
		return Config{}, err
	}

	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304 - fixed file name inside the working directory
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	if v := getenv(EnvExtensions); v != "" {
		c.Extensions = splitList(v)
	}

	if v := getenv(EnvParallel); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParallel, err)
		}

		c.Parallel = n
	}

	if v := getenv(EnvFailOn); v != "" {
		c.FailOn = strings.ToLower(strings.TrimSpace(v))
	}

	if v := getenv(EnvReports); v != "" {
		c.Reports = v
	}

	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}

	if _, err := ParseFailOn(c.FailOn); err != nil {
		return err
	}

	l := c.Limits

	switch {
	case l.MinFeedRate < 0:
		return fmt.Errorf("min_feed_rate must not be negative, got %v", l.MinFeedRate)
	case l.MaxSpindleSpeed <= 0:
		return fmt.Errorf("max_spindle_speed must be positive, got %d", l.MaxSpindleSpeed)
	case l.MaxBlockLength <= 0:
		return fmt.Errorf("max_block_length must be positive, got %d", l.MaxBlockLength)
	case l.ReleaseLookahead < 0:
		return fmt.Errorf("release_lookahead must not be negative, got %d", l.ReleaseLookahead)
	}

	return nil
}

// ParseFailOn maps a --fail-on value to the lowest severity that fails the
// run. "none" maps to the empty severity, which never fails.
func ParseFailOn(s string) (m.Severity, error) {
	switch strings.ToLower(s) {
	case string(m.SeverityError):
		return m.SeverityError, nil
	case string(m.SeverityWarning):
		return m.SeverityWarning, nil
	case string(m.SeverityInfo):
		return m.SeverityInfo, nil
	case FailOnNone, "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid fail-on value %q (want error, warning, info or none)", s)
	}
}

func splitList(v string) []string {
	return NormalizeExtensions(strings.Split(v, ","))
}

// NormalizeExtensions trims each extension, drops empty ones and adds the
// leading dot where it is missing.
func NormalizeExtensions(exts []string) []string {
	var out []string

	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	return out
}
