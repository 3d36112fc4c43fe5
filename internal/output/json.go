package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/mvctl/internal/cdm"
)

// JSONFormatter formats managed volumes as JSON using the API field names.
type JSONFormatter struct{}

// FormatVolume formats a single managed volume as JSON.
func (f *JSONFormatter) FormatVolume(vol *cdm.ManagedVolume) (string, error) {
	data, err := json.MarshalIndent(vol, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal managed volume to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

// FormatVolumeList formats a list of managed volumes as a JSON array.
func (f *JSONFormatter) FormatVolumeList(vols []*cdm.ManagedVolume) (string, error) {
	if len(vols) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(vols, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal managed volumes to JSON: %w", err)
	}

	return string(data) + "\n", nil
}
