package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a backup file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts a format name; "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown backup format %q (want json, yaml or toml)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatJSON
	}
	return f
}

// Export writes the current progress to w.
func (s *Store) Export(w io.Writer, format Format) error {
	return Encode(w, s.Snapshot(), format)
}

// Import reads a backup from r and replaces the current progress with it.
// Nothing changes when the backup cannot be decoded.
func (s *Store) Import(r io.Reader, format Format) error {
	u, err := Decode(r, format)
	if err != nil {
		return err
	}
	s.Replace(u)
	return nil
}

// Encode writes u in the given format.
func Encode(w io.Writer, u UserProgress, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(u)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(u); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(u)
	}
	return fmt.Errorf("unknown backup format %q", format)
}

// Decode reads progress in the given format.
func Decode(r io.Reader, format Format) (UserProgress, error) {
	var u UserProgress
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&u)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&u)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&u)
	default:
		return u, fmt.Errorf("unknown backup format %q", format)
	}
	if err != nil {
		return u, fmt.Errorf("decode %s backup: %w", format, err)
	}
	u.normalize()
	return u, nil
}
