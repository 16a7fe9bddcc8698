package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/newsbinder/internal/pipeline"
)

// RunConfig records what a run was asked to do.
type RunConfig struct {
	InputDir      string `yaml:"inputdir,omitempty"`
	OutputDir     string `yaml:"outputdir"`
	WorkspaceDir  string `yaml:"workspacedir,omitempty"`
	LookupTable   string `yaml:"lookuptable,omitempty"`
	KeepOriginals bool   `yaml:"keeporiginals"`
	KeepRenamed   bool   `yaml:"keeprenamed"`
	Timestamp     string `yaml:"timestamp"`
}

// RunReport is the document written by SaveToYAML.
type RunReport struct {
	Config RunConfig        `yaml:"config"`
	Result *pipeline.Result `yaml:"result"`
}

// SaveToYAML writes cfg and res to path, creating parent directories.
func SaveToYAML(path string, cfg RunConfig, res *pipeline.Result) error {
	if cfg.Timestamp == "" {
		cfg.Timestamp = time.Now().Format(time.RFC3339)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(&RunReport{Config: cfg, Result: res})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

// LoadYAML reads a report written by SaveToYAML.
func LoadYAML(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var rep RunReport
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &rep, nil
}
