// Package config loads newsbinder settings from a YAML file, the environment
// and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
	"github.com/lehigh-university-libraries/newsbinder/internal/images"
	"github.com/lehigh-university-libraries/newsbinder/internal/lookup"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
	"github.com/lehigh-university-libraries/newsbinder/internal/pipeline"
)

var (
	ErrMissingDirs = errors.New("input and output directories are required")
	ErrSameDirs    = errors.New("output directory must differ from input directory")
)

// Config holds everything a run needs.
type Config struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	LookupFile    string `yaml:"lookup_file"`
	LookupDir     string `yaml:"lookup_dir"`
	LookupPattern string `yaml:"lookup_pattern"`

	KeepOriginals bool   `yaml:"keep_originals"`
	KeepRenamed   bool   `yaml:"keep_renamed"`
	WorkspaceName string `yaml:"workspace_name"`

	Extensions    []string      `yaml:"extensions"`
	CatalogPrefix string        `yaml:"catalog_prefix"`
	OnConflict    string        `yaml:"on_conflict"`
	LargeGroup    int           `yaml:"large_group"`
	Limits        images.Limits `yaml:"limits"`

	Report   string `yaml:"report"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Env maps config fields to environment variable names.
type Env struct {
	InputDir      string
	OutputDir     string
	LookupFile    string
	LookupDir     string
	LookupPattern string
	KeepOriginals string
	KeepRenamed   string
	WorkspaceName string
	Extensions    string
	CatalogPrefix string
	OnConflict    string
	LargeGroup    string
	Report        string
	LogLevel      string
	LogFile       string
}

// DefaultEnv is the NEWSBINDER_* variable set.
func DefaultEnv() *Env {
	return &Env{
		InputDir:      "NEWSBINDER_INPUT_DIR",
		OutputDir:     "NEWSBINDER_OUTPUT_DIR",
		LookupFile:    "NEWSBINDER_LOOKUP_FILE",
		LookupDir:     "NEWSBINDER_LOOKUP_DIR",
		LookupPattern: "NEWSBINDER_LOOKUP_PATTERN",
		KeepOriginals: "NEWSBINDER_KEEP_ORIGINALS",
		KeepRenamed:   "NEWSBINDER_KEEP_RENAMED",
		WorkspaceName: "NEWSBINDER_WORKSPACE_NAME",
		Extensions:    "NEWSBINDER_EXTENSIONS",
		CatalogPrefix: "NEWSBINDER_CATALOG_PREFIX",
		OnConflict:    "NEWSBINDER_ON_CONFLICT",
		LargeGroup:    "NEWSBINDER_LARGE_GROUP",
		Report:        "NEWSBINDER_REPORT",
		LogLevel:      "NEWSBINDER_LOG_LEVEL",
		LogFile:       "NEWSBINDER_LOG_FILE",
	}
}

// Load reads path, if given, and finalizes the result against the default
// environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.Finalize(DefaultEnv()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.Validate()
}

// Merge overwrites fields set in overlay. Booleans can only be switched on.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.InputDir, overlay.InputDir)
	mergeString(&c.OutputDir, overlay.OutputDir)
	mergeString(&c.LookupFile, overlay.LookupFile)
	mergeString(&c.LookupDir, overlay.LookupDir)
	mergeString(&c.LookupPattern, overlay.LookupPattern)
	mergeString(&c.WorkspaceName, overlay.WorkspaceName)
	mergeString(&c.CatalogPrefix, overlay.CatalogPrefix)
	mergeString(&c.OnConflict, overlay.OnConflict)
	mergeString(&c.Report, overlay.Report)
	mergeString(&c.LogLevel, overlay.LogLevel)
	mergeString(&c.LogFile, overlay.LogFile)

	if overlay.KeepOriginals {
		c.KeepOriginals = true
	}
	if overlay.KeepRenamed {
		c.KeepRenamed = true
	}
	if len(overlay.Extensions) > 0 {
		c.Extensions = overlay.Extensions
	}
	if overlay.LargeGroup != 0 {
		c.LargeGroup = overlay.LargeGroup
	}
	if overlay.Limits.MaxFileSize != 0 {
		c.Limits.MaxFileSize = overlay.Limits.MaxFileSize
	}
	if overlay.Limits.MaxPixels != 0 {
		c.Limits.MaxPixels = overlay.Limits.MaxPixels
	}
	if len(overlay.Limits.Formats) > 0 {
		c.Limits.Formats = overlay.Limits.Formats
	}
}

func (c *Config) loadDefaults() {
	defaults := images.DefaultLimits()

	if c.LookupPattern == "" {
		c.LookupPattern = lookup.DefaultPattern
	}
	if c.WorkspaceName == "" {
		c.WorkspaceName = pipeline.DefaultWorkspaceName
	}
	if len(c.Extensions) == 0 {
		c.Extensions = pipeline.DefaultExtensions
	}
	if c.CatalogPrefix == "" {
		c.CatalogPrefix = naming.DefaultPrefix
	}
	if c.OnConflict == "" {
		c.OnConflict = conflict.PolicyAsk
	}
	if c.LargeGroup == 0 {
		c.LargeGroup = pipeline.DefaultLargeGroup
	}
	if c.Limits.MaxFileSize == 0 {
		c.Limits.MaxFileSize = defaults.MaxFileSize
	}
	if c.Limits.MaxPixels == 0 {
		c.Limits.MaxPixels = defaults.MaxPixels
	}
	if len(c.Limits.Formats) == 0 {
		c.Limits.Formats = defaults.Formats
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv(env *Env) {
	envString(env.InputDir, &c.InputDir)
	envString(env.OutputDir, &c.OutputDir)
	envString(env.LookupFile, &c.LookupFile)
	envString(env.LookupDir, &c.LookupDir)
	envString(env.LookupPattern, &c.LookupPattern)
	envString(env.WorkspaceName, &c.WorkspaceName)
	envString(env.CatalogPrefix, &c.CatalogPrefix)
	envString(env.OnConflict, &c.OnConflict)
	envString(env.Report, &c.Report)
	envString(env.LogLevel, &c.LogLevel)
	envString(env.LogFile, &c.LogFile)

	envBool(env.KeepOriginals, &c.KeepOriginals)
	envBool(env.KeepRenamed, &c.KeepRenamed)

	if v := lookupEnv(env.Extensions); v != "" {
		var exts []string
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				exts = append(exts, e)
			}
		}
		if len(exts) > 0 {
			c.Extensions = exts
		}
	}
	if v := lookupEnv(env.LargeGroup); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LargeGroup = n
		}
	}
}

// Validate checks settings that do not depend on which command runs.
func (c *Config) Validate() error {
	if _, err := conflict.ParsePolicy(c.OnConflict); err != nil {
		return err
	}
	if c.LargeGroup < 1 {
		return fmt.Errorf("large_group must be at least 1, got %d", c.LargeGroup)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	if c.Limits.MaxFileSize < 0 || c.Limits.MaxPixels < 0 {
		return fmt.Errorf("image limits must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (use debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// ValidatePaths checks the directories a full run needs. Output may live
// inside input because the input scan is not recursive.
func (c *Config) ValidatePaths() error {
	if c.InputDir == "" || c.OutputDir == "" {
		return ErrMissingDirs
	}
	in, err := absPath(c.InputDir)
	if err != nil {
		return err
	}
	out, err := absPath(c.OutputDir)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("%w: %s", ErrSameDirs, in)
	}
	return nil
}

// PipelineOptions converts the config for pipeline.New.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		InputDir:      c.InputDir,
		OutputDir:     c.OutputDir,
		KeepOriginals: c.KeepOriginals,
		KeepRenamed:   c.KeepRenamed,
		WorkspaceName: c.WorkspaceName,
		Extensions:    c.Extensions,
		CatalogPrefix: c.CatalogPrefix,
		LargeGroup:    c.LargeGroup,
		Limits:        c.Limits,
	}
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func lookupEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func envString(name string, dst *string) {
	if v := lookupEnv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if v := lookupEnv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
