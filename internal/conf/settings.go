// Package conf holds display configuration. Settings used to be the kind
// of thing a process-wide singleton would carry; here it is a plain value
// constructed once and handed to whoever needs it.
package conf

import (
	"path/filepath"
	"strings"
)

// Settings classifies file names into display kinds.
type Settings struct {
	kinds map[string]string
}

// Default returns settings with the built-in extension table.
func Default() *Settings {
	return &Settings{kinds: map[string]string{
		".c":    "C source file",
		".h":    "C header file",
		".cpp":  "C++ source file",
		".hpp":  "C++ header file",
		".go":   "Go source file",
		".py":   "Python source file",
		".rs":   "Rust source file",
		".js":   "JavaScript source file",
		".ts":   "TypeScript source file",
		".sh":   "Shell script",
		".md":   "Markdown document",
		".txt":  "Text file",
		".json": "JSON file",
		".yaml": "YAML file",
		".yml":  "YAML file",
		".toml": "TOML file",
		".mod":  "Go module file",
		".sum":  "Go checksum file",
	}}
}

// SetKind registers or overrides the label for an extension (".ext").
func (s *Settings) SetKind(ext, label string) {
	s.kinds[strings.ToLower(ext)] = label
}

// Kind returns the label for a file name, or "" when the extension is
// unknown.
func (s *Settings) Kind(filename string) string {
	return s.kinds[strings.ToLower(filepath.Ext(filename))]
}
