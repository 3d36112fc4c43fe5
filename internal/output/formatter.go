// Package output provides formatters for displaying managed volumes in
// various formats (table, YAML, JSON) and the host-side runbook printed
// once a volume is exported.
package output

import (
	"fmt"

	"github.com/jbweber/mvctl/internal/cdm"
)

// Format names how get and list render managed volumes.
type Format string

const (
	// FormatTable prints one row per volume with state, mode, channel
	// count and sizes.
	FormatTable Format = "table"
	// FormatYAML prints the full descriptor, including export channels.
	FormatYAML Format = "yaml"
	// FormatJSON prints the descriptor with the cluster's own field names.
	FormatJSON Format = "json"
)

// Formatter renders managed volume descriptors. The runbook is not a
// Formatter; see WriteRunbook.
type Formatter interface {
	FormatVolume(vol *cdm.ManagedVolume) (string, error)

	// FormatVolumeList renders the result of a name-filtered list. Each
	// format chooses its own rendering of an empty list.
	FormatVolumeList(vols []*cdm.ManagedVolume) (string, error)
}

// Options holds the -o and --no-headers flag values.
type Options struct {
	Format    Format
	NoHeaders bool // table only
}

// NewFormatter returns the Formatter for opts.Format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat rejects an unknown -o value before any cluster call is made.
func ValidateFormat(format string) error {
	f := Format(format)
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
