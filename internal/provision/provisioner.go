package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/jbweber/mvctl/internal/cdm"
	"github.com/jbweber/mvctl/internal/config"
)

// ErrInvalidName is returned when the managed volume name is empty.
var ErrInvalidName = errors.New("managed volume name is required")

// Provisioner submits managed volume create requests.
type Provisioner struct {
	client VolumeClient
	cfg    *config.Config
}

// NewProvisioner returns a Provisioner that builds requests from cfg.
func NewProvisioner(client VolumeClient, cfg *config.Config) *Provisioner {
	return &Provisioner{client: client, cfg: cfg}
}

// Create submits the create request for name. Any failure is returned as-is;
// a name collision or a rejected parameter is not retried.
func (p *Provisioner) Create(ctx context.Context, name string) (*cdm.ManagedVolume, error) {
	req, err := BuildCreateRequest(name, p.cfg)
	if err != nil {
		return nil, err
	}

	klog.V(2).Infof("Creating managed volume %q (channels=%d, size=%d, tag=%q, subnet=%q)",
		req.Name, req.NumChannels, req.VolumeSize, req.ApplicationTag, req.Subnet)

	vol, err := p.client.CreateManagedVolume(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create managed volume %q: %w", name, err)
	}

	return vol, nil
}

// BuildCreateRequest builds the create payload for name from cfg. The
// subnet is set on both the request and its export config, and only when
// configured.
func BuildCreateRequest(name string, cfg *config.Config) (cdm.CreateManagedVolumeRequest, error) {
	if strings.TrimSpace(name) == "" {
		return cdm.CreateManagedVolumeRequest{}, ErrInvalidName
	}

	req := cdm.CreateManagedVolumeRequest{
		Name:           name,
		ApplicationTag: cfg.ApplicationTag,
		NumChannels:    cfg.NumChannels,
		VolumeSize:     cfg.VolumeSize,
		ExportConfig: cdm.ExportConfig{
			ShareType: cdm.ShareTypeNFS,
		},
	}

	if cfg.Subnet != "" {
		req.Subnet = cfg.Subnet
		req.ExportConfig.Subnet = cfg.Subnet
	}

	return req, nil
}
