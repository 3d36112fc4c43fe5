package cdm

import (
	"fmt"
)

// VolumeState is the server-reported lifecycle state of a managed volume.
// States are server-defined; the only one this package interprets is
// StateExported.
type VolumeState string

const (
	// StateExported means the NFS channels are exported and mountable.
	StateExported VolumeState = "Exported"
)

// ShareTypeNFS is the only share type requested for managed volumes.
const ShareTypeNFS = "NFS"

// ManagedVolume is the descriptor returned by GET /internal/managed_volume/{id}.
type ManagedVolume struct {
	ID             string      `json:"id" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	State          VolumeState `json:"state" yaml:"state"`
	IsWritable     bool        `json:"isWritable" yaml:"isWritable"`
	ApplicationTag string      `json:"applicationTag,omitempty" yaml:"applicationTag,omitempty"`
	NumChannels    int         `json:"numChannels,omitempty" yaml:"numChannels,omitempty"`
	VolumeSize     int64       `json:"volumeSize,omitempty" yaml:"volumeSize,omitempty"`
	UsedSize       int64       `json:"usedSize,omitempty" yaml:"usedSize,omitempty"`
	MainExport     *Export     `json:"mainExport,omitempty" yaml:"mainExport,omitempty"`
}

// Export describes the NFS export of a managed volume.
type Export struct {
	IsActive bool      `json:"isActive" yaml:"isActive"`
	Channels []Channel `json:"channels" yaml:"channels"`
}

// Channel is one NFS endpoint of a managed volume.
type Channel struct {
	IPAddress  string `json:"ipAddress" yaml:"ipAddress"`
	MountPoint string `json:"mountPoint" yaml:"mountPoint"`
}

// IsExported reports whether the volume has reached the Exported state.
func (v *ManagedVolume) IsExported() bool {
	return v.State == StateExported
}

// Channels returns the export channels in server order, or nil when the
// volume has no export yet.
func (v *ManagedVolume) Channels() []Channel {
	if v.MainExport == nil {
		return nil
	}
	return v.MainExport.Channels
}

// Validate checks that the fields callers rely on are present.
// Channel details are only required once the volume is exported.
func (v *ManagedVolume) Validate() error {
	if v.ID == "" {
		return missingField("id")
	}
	if v.Name == "" {
		return missingField("name")
	}
	if v.State == "" {
		return missingField("state")
	}

	if !v.IsExported() {
		return nil
	}

	if len(v.Channels()) == 0 {
		return missingField("mainExport.channels")
	}
	for i, ch := range v.MainExport.Channels {
		if ch.IPAddress == "" {
			return missingField(fmt.Sprintf("mainExport.channels[%d].ipAddress", i))
		}
		if ch.MountPoint == "" {
			return missingField(fmt.Sprintf("mainExport.channels[%d].mountPoint", i))
		}
	}

	return nil
}

// CreateManagedVolumeRequest is the body of POST /internal/managed_volume.
type CreateManagedVolumeRequest struct {
	Name           string       `json:"name"`
	ApplicationTag string       `json:"applicationTag,omitempty"`
	NumChannels    int          `json:"numChannels"`
	VolumeSize     int64        `json:"volumeSize"`
	ExportConfig   ExportConfig `json:"exportConfig"`
	Subnet         string       `json:"subnet,omitempty"`
}

// ExportConfig selects how the volume is exported.
type ExportConfig struct {
	ShareType string `json:"shareType"`
	Subnet    string `json:"subnet,omitempty"`
}

// managedVolumeList is the paged list envelope of GET /internal/managed_volume.
type managedVolumeList struct {
	Data    []ManagedVolume `json:"data"`
	HasMore bool            `json:"hasMore"`
	Total   int             `json:"total"`
}

// SnapshotBegin is returned by begin_snapshot.
type SnapshotBegin struct {
	SnapshotID string `json:"snapshotId"`
	OwnerID    string `json:"ownerId,omitempty"`
}

// Snapshot is returned by end_snapshot.
type Snapshot struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`
}

// ClusterInfo is returned by GET /v1/cluster/me.
type ClusterInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion,omitempty"`
}
