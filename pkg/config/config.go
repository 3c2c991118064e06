package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/carousel/pkg/domain"
	"github.com/aretw0/carousel/pkg/transition"
	"gopkg.in/yaml.v3"
)

// ShowFile is the on-disk definition of a show (show.yaml or show.json).
type ShowFile struct {
	Name         string         `yaml:"name" json:"name"`
	URLs         []string       `yaml:"urls" json:"urls"`
	Interval     *int           `yaml:"interval,omitempty" json:"interval,omitempty"`
	Transition   *string        `yaml:"transition,omitempty" json:"transition,omitempty"`
	Duration     *int           `yaml:"duration,omitempty" json:"duration,omitempty"`
	OverlapGuard *bool          `yaml:"overlap_guard,omitempty" json:"overlap_guard,omitempty"`
	Options      map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Load reads a show definition. The format is chosen by extension: .json is
// parsed as JSON, anything else as YAML. A missing name defaults to the file
// name without extension.
func Load(path string) (*ShowFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	f, err := Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes a show definition. ext is ".json" for JSON; YAML otherwise.
func Parse(data []byte, ext string) (*ShowFile, error) {
	var f ShowFile
	if ext == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// Partial returns the configuration overrides carried by the file.
func (f *ShowFile) Partial() domain.Partial {
	return domain.Partial{
		Interval:       f.Interval,
		TransitionName: f.Transition,
		Duration:       f.Duration,
		OverlapGuard:   f.OverlapGuard,
	}
}

// TransitionOptions returns the per-call transition options.
func (f *ShowFile) TransitionOptions() transition.Options {
	if len(f.Options) == 0 {
		return nil
	}
	return transition.Options(f.Options)
}
