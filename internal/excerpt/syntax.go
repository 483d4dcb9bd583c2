package excerpt

import (
	"path/filepath"
	"strings"
)

// extLanguages maps source file extensions to the language tag handed to the
// syntax highlighter. Anything unknown falls back to the bare extension, which
// chroma resolves or ignores on its own.
var extLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".rb":    "ruby",
	".js":    "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".rs":    "rust",
	".java":  "java",
	".cs":    "csharp",
	".php":   "php",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".sql":   "sql",
	".sh":    "bash",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".toml":  "toml",
	".html":  "html",
	".md":    "markdown",
	".polar": "polar",
}

// DetectLanguage resolves the language tag for a rendered block. An explicit
// override wins, then the source file's extension, then the caller default.
func DetectLanguage(path, override, fallback string) string {
	if v := normalizeLanguage(override); v != "" {
		return v
	}
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if lang, ok := extLanguages[ext]; ok {
			return lang
		}
		if ext != "" {
			return strings.TrimPrefix(ext, ".")
		}
	}
	return normalizeLanguage(fallback)
}

// normalizeLanguage folds common aliases onto canonical tags so an authored
// override like "Golang" or "py" still selects the right lexer.
func normalizeLanguage(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "golang":
		return "go"
	case "py", "python3":
		return "python"
	case "js", "node":
		return "javascript"
	case "ts":
		return "typescript"
	case "yml":
		return "yaml"
	case "shell", "sh", "zsh":
		return "bash"
	default:
		return v
	}
}
