package provision

import (
	"context"

	"github.com/jbweber/mvctl/internal/cdm"
)

// VolumeClient defines the cluster operations needed to provision and poll
// a managed volume.
//
// In production, this is satisfied by *cdm.Client.
// In tests, this is satisfied by mock implementations.
type VolumeClient interface {
	// CreateManagedVolume submits a managed volume create request
	CreateManagedVolume(ctx context.Context, req cdm.CreateManagedVolumeRequest) (*cdm.ManagedVolume, error)

	// ManagedVolumeID resolves a volume name to its id
	ManagedVolumeID(ctx context.Context, name string) (string, error)

	// GetManagedVolume fetches the validated descriptor for an id
	GetManagedVolume(ctx context.Context, id string) (*cdm.ManagedVolume, error)
}
