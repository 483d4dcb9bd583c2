package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally onto the flags and environment variables.
type FileConfig struct {
	Content string `yaml:"content" json:"content"`
	Out     string `yaml:"out" json:"out"`
	Base    string `yaml:"base" json:"base"`

	Lookup struct {
		Data string `yaml:"data" json:"data"`
	} `yaml:"lookup" json:"lookup"`

	Language string `yaml:"language" json:"language"`
	GitHub   string `yaml:"gitHub" json:"gitHub"`
	Workers  int    `yaml:"workers" json:"workers"`

	Serve struct {
		Addr  string `yaml:"addr" json:"addr"`
		Watch bool   `yaml:"watch" json:"watch"`
	} `yaml:"serve" json:"serve"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// MergeFileConfigInto copies file values onto unset cfg fields. Flags and env
// already applied to cfg win over the file.
func MergeFileConfigInto(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = fc.Content
	}
	if cfg.OutDir == "" {
		cfg.OutDir = fc.Out
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = fc.Base
	}
	if cfg.LookupData == "" {
		cfg.LookupData = fc.Lookup.Data
	}
	if cfg.Language == "" {
		cfg.Language = fc.Language
	}
	if cfg.GitHub == "" {
		cfg.GitHub = fc.GitHub
	}
	if cfg.Workers == 0 {
		cfg.Workers = fc.Workers
	}
	if cfg.Addr == "" {
		cfg.Addr = fc.Serve.Addr
	}
	if !cfg.Watch {
		cfg.Watch = fc.Serve.Watch
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
