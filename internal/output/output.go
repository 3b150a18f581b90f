// Package output names, writes and reports converted documents.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File name suffixes.
const (
	JSONExt = ".json"
	YAMLExt = ".yaml"
)

// timestampLayout renders an ISO-8601 UTC instant with ':' and '.' replaced,
// truncated to whole seconds.
const timestampLayout = "2006-01-02T15-04-05"

// DefaultFilename returns converted_<timestamp>.json for now.
func DefaultFilename(now time.Time) string {
	return "converted_" + now.UTC().Format(timestampLayout) + JSONExt
}

// EnsureJSONExt appends .json to name unless it already ends with it.
// An empty name yields the default for the current time.
func EnsureJSONExt(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename(time.Now())
	}
	if strings.HasSuffix(name, JSONExt) {
		return name
	}
	return name + JSONExt
}

// Filename returns the save name for a document rendered as format: the
// default name when name is blank, otherwise name with .json ensured. YAML
// output swaps the .json suffix for .yaml.
func Filename(name, format string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFilename(now)
	} else {
		name = EnsureJSONExt(name)
	}
	if strings.EqualFold(format, "yaml") {
		name = strings.TrimSuffix(name, JSONExt) + YAMLExt
	}
	return name
}

// Write stores data as name inside dir and returns the written path.
// Only the base of name is used so a caller cannot escape dir.
func Write(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ConvertedStatus is the message shown after a successful conversion.
func ConvertedStatus(rows int) string {
	return fmt.Sprintf("Converted %d rows.", rows)
}

// SavedStatus is the message shown after a file is written.
func SavedStatus(name string) string {
	return "Saved as " + name
}
