package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/mvctl/internal/cdm"
)

// TableFormatter formats managed volumes as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatVolume formats a single managed volume as a table row.
func (f *TableFormatter) FormatVolume(vol *cdm.ManagedVolume) (string, error) {
	return f.FormatVolumeList([]*cdm.ManagedVolume{vol})
}

// FormatVolumeList formats a list of managed volumes as a table.
func (f *TableFormatter) FormatVolumeList(vols []*cdm.ManagedVolume) (string, error) {
	if len(vols) == 0 {
		return "No managed volumes found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	// Write header unless NoHeaders is set
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tSTATE\tMODE\tCHANNELS\tSIZE\tUSED\tID")
	}

	for _, vol := range vols {
		state := string(vol.State)
		if state == "" {
			state = "-"
		}

		channels := "-"
		if n := len(vol.Channels()); n > 0 {
			channels = fmt.Sprintf("%d", n)
		} else if vol.NumChannels > 0 {
			channels = fmt.Sprintf("%d", vol.NumChannels)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			vol.Name, state, writeMode(vol), channels,
			formatSize(vol.VolumeSize), formatSize(vol.UsedSize), vol.ID)
	}

	_ = w.Flush()
	return buf.String(), nil
}

// writeMode describes whether the volume currently accepts writes.
func writeMode(vol *cdm.ManagedVolume) string {
	if vol.IsWritable {
		return "Writable"
	}
	return "Read Only"
}

// formatSize formats a byte count with a binary unit.
// Examples: "512B", "1.0KiB", "20.0GiB", "1.5TiB"
func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f%ciB", float64(size)/float64(div), "KMGTP"[exp])
}
