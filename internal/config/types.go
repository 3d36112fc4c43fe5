// Package config loads and validates the mvctl configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jbweber/mvctl/internal/cdm"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	// DefaultMountPath is the local directory under which channel mount
	// points are created.
	DefaultMountPath = "/mnt/rubrik"

	// DefaultMountOptions are the NFS options written to /etc/fstab.
	DefaultMountOptions = "rw,bg,hard,nointr,rsize=32768,wsize=32768,tcp,vers=3,timeo=600"

	// DefaultPollInterval is the delay between managed volume state checks.
	DefaultPollInterval = 30 * time.Second
)

// Config is the complete mvctl configuration. It is loaded once and passed
// explicitly to each component.
type Config struct {
	// Cluster connection
	NodeIP    string `mapstructure:"rubrik_cdm_node_ip"`
	Username  string `mapstructure:"rubrik_cdm_username"`
	Password  string `mapstructure:"rubrik_cdm_password"`
	Token     string `mapstructure:"rubrik_cdm_token"`
	VerifySSL bool   `mapstructure:"rubrik_cdm_verify_ssl"`

	// Managed volume parameters
	ApplicationTag string `mapstructure:"applicationTag"`
	NumChannels    int    `mapstructure:"numChannels"`
	VolumeSize     int64  `mapstructure:"volumeSize"` // bytes
	Subnet         string `mapstructure:"subnet"`     // optional CIDR or IP, e.g. "10.0.0.0/24"

	// Host-side formatting
	MountPath    string `mapstructure:"nfs_mount_path"`
	MountOptions string `mapstructure:"nfs_mount_options"`

	// PollInterval accepts a duration string ("30s") or a number of seconds.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// Auth is resolved from Username/Password/Token by Load.
	Auth cdm.Auth `mapstructure:"-"`
}

// ResolveAuth picks the credential mode. A complete username/password pair
// wins; otherwise the token is used. A half-set pair with no token is an
// error.
func (c *Config) ResolveAuth() (cdm.Auth, error) {
	switch {
	case c.Username != "" && c.Password != "":
		return cdm.BasicAuth{Username: c.Username, Password: c.Password}, nil
	case c.Token != "":
		return cdm.BearerAuth{Token: c.Token}, nil
	case c.Username != "" || c.Password != "":
		return nil, fmt.Errorf("%w: rubrik_cdm_username and rubrik_cdm_password must be set together", ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("%w: either rubrik_cdm_token or rubrik_cdm_username/rubrik_cdm_password is required", ErrInvalidConfig)
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.NodeIP == "" {
		return fmt.Errorf("%w: rubrik_cdm_node_ip is required", ErrInvalidConfig)
	}

	if c.NumChannels <= 0 {
		return fmt.Errorf("%w: numChannels must be greater than 0", ErrInvalidConfig)
	}

	if c.VolumeSize <= 0 {
		return fmt.Errorf("%w: volumeSize must be greater than 0", ErrInvalidConfig)
	}

	if c.Subnet != "" {
		if _, _, err := net.ParseCIDR(c.Subnet); err != nil && net.ParseIP(c.Subnet) == nil {
			return fmt.Errorf("%w: subnet %q is not a valid CIDR or IP address", ErrInvalidConfig, c.Subnet)
		}
	}

	if c.MountPath == "" {
		return fmt.Errorf("%w: nfs_mount_path is required", ErrInvalidConfig)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be greater than 0", ErrInvalidConfig)
	}

	return nil
}
