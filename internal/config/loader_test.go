package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/mvctl/internal/cdm"
)

// writeConfig writes content to a config file in a temp directory and
// clears connection environment variables so the host environment cannot
// leak into the test.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	for _, key := range connectionKeys {
		t.Setenv(key, "")
		t.Setenv(strings.ToUpper(key), "")
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const tokenConfig = `{
  "rubrik_cdm_node_ip": "10.0.0.10",
  "rubrik_cdm_username": "",
  "rubrik_cdm_password": "",
  "rubrik_cdm_token": "abc123",
  "applicationTag": "Oracle",
  "numChannels": 2,
  "volumeSize": 1099511627776,
  "subnet": null
}`

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "config.json", tokenConfig)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.10", cfg.NodeIP)
	assert.Equal(t, "Oracle", cfg.ApplicationTag)
	assert.Equal(t, 2, cfg.NumChannels)
	assert.Equal(t, int64(1099511627776), cfg.VolumeSize)
	assert.Empty(t, cfg.Subnet)
	assert.Equal(t, DefaultMountPath, cfg.MountPath)
	assert.Equal(t, DefaultMountOptions, cfg.MountOptions)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, cdm.BearerAuth{Token: "abc123"}, cfg.Auth)
}

func TestLoadFromFile_AllFields(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "cluster.example.com",
  "rubrik_cdm_username": "admin",
  "rubrik_cdm_password": "secret",
  "rubrik_cdm_token": "",
  "rubrik_cdm_verify_ssl": true,
  "applicationTag": "Oracle",
  "numChannels": 4,
  "volumeSize": 10737418240,
  "subnet": "10.0.0.0/24",
  "nfs_mount_path": "/u01/rubrik",
  "nfs_mount_options": "rw,vers=3",
  "poll_interval": "5s"
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "cluster.example.com", cfg.NodeIP)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 4, cfg.NumChannels)
	assert.Equal(t, "10.0.0.0/24", cfg.Subnet)
	assert.Equal(t, "/u01/rubrik", cfg.MountPath)
	assert.Equal(t, "rw,vers=3", cfg.MountOptions)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, cdm.BasicAuth{Username: "admin", Password: "secret"}, cfg.Auth)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "",
  "applicationTag": "Oracle",
  "numChannels": 1,
  "volumeSize": 1073741824
}`)
	t.Setenv("rubrik_cdm_node_ip", "10.9.9.9")
	t.Setenv("RUBRIK_CDM_TOKEN", "from-env")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "10.9.9.9", cfg.NodeIP)
	assert.Equal(t, cdm.BearerAuth{Token: "from-env"}, cfg.Auth)
}

func TestLoadFromFile_NoExtension(t *testing.T) {
	path := writeConfig(t, "mvctl", tokenConfig)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.10", cfg.NodeIP)
}

func TestLoadFromFile_PollInterval(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "duration string", value: `"45s"`, want: 45 * time.Second},
		{name: "sub-second string", value: `"10ms"`, want: 10 * time.Millisecond},
		{name: "bare integer is seconds", value: `30`, want: 30 * time.Second},
		{name: "bare float is seconds", value: `1.5`, want: 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "10.0.0.10",
  "rubrik_cdm_token": "abc",
  "numChannels": 2,
  "volumeSize": 1024,
  "poll_interval": `+tt.value+`
}`)

			cfg, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.PollInterval)
		})
	}
}

func TestLoadFromFile_HalfSetPairUsesToken(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "10.0.0.10",
  "rubrik_cdm_username": "admin",
  "rubrik_cdm_password": "",
  "rubrik_cdm_token": "abc",
  "numChannels": 2,
  "volumeSize": 1024
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cdm.BearerAuth{Token: "abc"}, cfg.Auth)
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"rubrik_cdm_node_ip": `)
		_, err := LoadFromFile(path)
		assert.Error(t, err)
	})

	t.Run("negative poll interval", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "10.0.0.10",
  "rubrik_cdm_token": "abc",
  "numChannels": 1,
  "volumeSize": 1073741824,
  "poll_interval": -30
}`)
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("no credentials", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{
  "rubrik_cdm_node_ip": "10.0.0.10",
  "numChannels": 1,
  "volumeSize": 1073741824
}`)
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			NodeIP:       "10.0.0.10",
			Token:        "abc",
			NumChannels:  2,
			VolumeSize:   1073741824,
			MountPath:    DefaultMountPath,
			MountOptions: DefaultMountOptions,
			PollInterval: DefaultPollInterval,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "valid subnet", mutate: func(c *Config) { c.Subnet = "192.168.0.0/16" }},
		{name: "missing node", mutate: func(c *Config) { c.NodeIP = "" }, wantErr: "rubrik_cdm_node_ip"},
		{name: "zero channels", mutate: func(c *Config) { c.NumChannels = 0 }, wantErr: "numChannels"},
		{name: "negative size", mutate: func(c *Config) { c.VolumeSize = -1 }, wantErr: "volumeSize"},
		{name: "plain IP subnet", mutate: func(c *Config) { c.Subnet = "10.0.0.1" }},
		{name: "IPv6 subnet", mutate: func(c *Config) { c.Subnet = "fd00::/64" }},
		{name: "bad subnet", mutate: func(c *Config) { c.Subnet = "10.0.0.0/33" }, wantErr: "subnet"},
		{name: "hostname subnet", mutate: func(c *Config) { c.Subnet = "storage.lan" }, wantErr: "subnet"},
		{name: "empty mount path", mutate: func(c *Config) { c.MountPath = "" }, wantErr: "nfs_mount_path"},
		{name: "zero interval", mutate: func(c *Config) { c.PollInterval = 0 }, wantErr: "poll_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ResolveAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		token    string
		want     cdm.Auth
		wantErr  bool
	}{
		{name: "token only", token: "tok", want: cdm.BearerAuth{Token: "tok"}},
		{name: "user and password", username: "u", password: "p", want: cdm.BasicAuth{Username: "u", Password: "p"}},
		{name: "user, password and token", username: "u", password: "p", token: "tok", want: cdm.BasicAuth{Username: "u", Password: "p"}},
		{name: "user without password falls back to token", username: "u", token: "tok", want: cdm.BearerAuth{Token: "tok"}},
		{name: "password without user falls back to token", password: "p", token: "tok", want: cdm.BearerAuth{Token: "tok"}},
		{name: "user without password", username: "u", wantErr: true},
		{name: "password without user", password: "p", wantErr: true},
		{name: "nothing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Username: tt.username, Password: tt.password, Token: tt.token}
			got, err := cfg.ResolveAuth()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
