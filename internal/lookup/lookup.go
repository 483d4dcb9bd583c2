// Package lookup resolves dynamic example paths for documentation pages. A
// YAML data file maps a lookup key to per-language source paths plus optional
// inline fallback snippets, so a page rendered for one language pulls the
// matching example file without any ambient global state.
package lookup

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Resolver answers dynPath and fallback queries for one build. It is loaded
// once and read-only afterwards, so concurrent page renders can share it.
type Resolver struct {
	entries   map[string]map[string]string
	fallbacks map[string]string
}

type dataFile struct {
	Examples  map[string]map[string]string `yaml:"examples"`
	Fallbacks map[string]string            `yaml:"fallbacks"`
}

// Load reads a YAML data file into a Resolver.
func Load(path string) (*Resolver, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lookup data: %w", err)
	}
	return Parse(b)
}

// Parse builds a Resolver from raw YAML data.
func Parse(b []byte) (*Resolver, error) {
	var df dataFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return nil, fmt.Errorf("parse lookup data: %w", err)
	}
	r := &Resolver{
		entries:   df.Examples,
		fallbacks: df.Fallbacks,
	}
	if r.entries == nil {
		r.entries = map[string]map[string]string{}
	}
	if r.fallbacks == nil {
		r.fallbacks = map[string]string{}
	}
	return r, nil
}

// Empty returns a Resolver with no entries, for builds without a data file.
func Empty() *Resolver {
	return &Resolver{
		entries:   map[string]map[string]string{},
		fallbacks: map[string]string{},
	}
}

// Resolve returns the source path registered for key under the given language.
// A "default" entry applies when the language has no specific path.
func (r *Resolver) Resolve(key, lang string) (string, bool) {
	byLang, ok := r.entries[key]
	if !ok {
		return "", false
	}
	if p, ok := byLang[strings.ToLower(strings.TrimSpace(lang))]; ok && p != "" {
		return p, true
	}
	if p, ok := byLang["default"]; ok && p != "" {
		return p, true
	}
	return "", false
}

// Fallback returns the inline snippet registered for key, if any.
func (r *Resolver) Fallback(key string) (string, bool) {
	s, ok := r.fallbacks[key]
	return s, ok && s != ""
}
