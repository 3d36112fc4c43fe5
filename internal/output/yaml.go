package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/mvctl/internal/cdm"
)

// YAMLFormatter renders descriptors as YAML using their camelCase yaml tags.
// Channels are only present for exported volumes.
type YAMLFormatter struct{}

func (f *YAMLFormatter) FormatVolume(vol *cdm.ManagedVolume) (string, error) {
	data, err := yaml.Marshal(vol)
	if err != nil {
		return "", fmt.Errorf("failed to marshal managed volume to YAML: %w", err)
	}

	return string(data), nil
}

// FormatVolumeList writes one YAML document per volume, so the output of
// list can be split with any multi-document YAML reader.
func (f *YAMLFormatter) FormatVolumeList(vols []*cdm.ManagedVolume) (string, error) {
	if len(vols) == 0 {
		return "", nil
	}

	var buf bytes.Buffer

	for i, vol := range vols {
		data, err := yaml.Marshal(vol)
		if err != nil {
			return "", fmt.Errorf("failed to marshal managed volume %s to YAML: %w", vol.Name, err)
		}

		if i > 0 {
			buf.WriteString("---\n")
		}

		buf.Write(data)
	}

	return buf.String(), nil
}
