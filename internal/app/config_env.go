package app

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.ContentDir == "" {
		cfg.ContentDir = os.Getenv("SNIPDOC_CONTENT")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = os.Getenv("SNIPDOC_OUT")
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = os.Getenv("SNIPDOC_BASE")
	}
	if cfg.LookupData == "" {
		cfg.LookupData = os.Getenv("SNIPDOC_LOOKUP_DATA")
	}
	if cfg.Language == "" {
		cfg.Language = os.Getenv("SNIPDOC_LANGUAGE")
	}
	if cfg.GitHub == "" {
		cfg.GitHub = os.Getenv("SNIPDOC_GITHUB")
	}
	if cfg.Addr == "" {
		cfg.Addr = os.Getenv("SNIPDOC_ADDR")
	}

	if cfg.Workers == 0 {
		if s := strings.TrimSpace(os.Getenv("SNIPDOC_WORKERS")); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				cfg.Workers = n
			}
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.Watch, "SNIPDOC_WATCH")
	setBool(&cfg.Verbose, "SNIPDOC_VERBOSE")
}
