package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects a summary encoding.
type Format string

const (
	// HumanFormat renders console text
	HumanFormat Format = "human"
	// JSONFormat renders indented JSON
	JSONFormat Format = "json"
	// YAMLFormat renders YAML
	YAMLFormat Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case HumanFormat, JSONFormat, YAMLFormat:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want human, json, or yaml)", s)
	}
}

// Encode writes the summary to w in the given format.
func (s *RunSummary) Encode(w io.Writer, format Format) error {
	switch format {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(s)
	default:
		s.WriteHuman(w)
		return nil
	}
}
