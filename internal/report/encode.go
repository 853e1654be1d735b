package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ParseFormat accepts json, yaml or msgpack, case-insensitively. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// ContentType is the HTTP media type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMsgpack:
		return "application/msgpack"
	default:
		return "application/json"
	}
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("failed to encode msgpack report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}
