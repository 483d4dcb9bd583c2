package excerpt

// Directive carries the selection, highlight and presentation options for one
// extraction. Field semantics follow the include shortcode's attribute table:
// exactly one of Path or DynPath names the source, Fallback supplies a literal
// snippet when a DynPath lookup has no entry, From/To trim by content markers,
// HlFrom/HlTo flag a sub-range, Lines restricts output to explicit 1-based
// segments, GitHub requests a permalink and LineNos a number gutter.
type Directive struct {
	Path     string
	DynPath  string
	Fallback string
	Syntax   string
	From     string
	To       string
	HlFrom   string
	HlTo     string
	Lines    string
	GitHub   string
	LineNos  bool
}

// ConfigError reports a directive combination the extractor cannot honor.
// Configuration mistakes are authoring bugs and abort the page build.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid directive: " + e.Reason }

// Validate enforces the mutually exclusive source attributes. Fallback only
// makes sense alongside DynPath, since a static Path either exists or fails
// the build outright.
func (d Directive) Validate() error {
	if d.Path != "" && d.DynPath != "" {
		return &ConfigError{Reason: "path and dynPath are mutually exclusive"}
	}
	if d.Path != "" && d.Fallback != "" {
		return &ConfigError{Reason: "path and fallback are mutually exclusive"}
	}
	if d.Path == "" && d.DynPath == "" {
		return &ConfigError{Reason: "one of path or dynPath is required"}
	}
	return nil
}
