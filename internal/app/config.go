package app

// Config holds runtime configuration for one snipdoc invocation. Values are
// resolved flag > env > config file > default; zero values mean unset so the
// layering can tell what was explicitly provided.
type Config struct {
	// Content
	ContentDir string
	OutDir     string
	BaseDir    string
	LookupData string

	// Rendering
	Language string
	GitHub   string

	// Build behavior
	Workers int

	// Preview
	Serve bool
	Addr  string
	Watch bool

	Verbose bool
}

// applyDefaults fills the fields every run needs.
func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutDir == "" {
		c.OutDir = "public"
	}
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8080"
	}
}
