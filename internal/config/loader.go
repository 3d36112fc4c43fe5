package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "config.json"

// connectionKeys may also be supplied through environment variables of the
// same name, in lower or upper case.
var connectionKeys = []string{
	"rubrik_cdm_node_ip",
	"rubrik_cdm_username",
	"rubrik_cdm_password",
	"rubrik_cdm_token",
}

// LoadFromFile reads, defaults, and validates the configuration at path.
// Environment variables override values from the file.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	applyDefaults(v)

	for _, key := range connectionKeys {
		if err := v.BindEnv(key, key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	auth, err := cfg.ResolveAuth()
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	cfg.Auth = auth

	return &cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("nfs_mount_path", DefaultMountPath)
	v.SetDefault("nfs_mount_options", DefaultMountOptions)
	v.SetDefault("poll_interval", DefaultPollInterval.String())
	v.SetDefault("rubrik_cdm_verify_ssl", false)
}

// secondsToDurationHook decodes a bare number into a time.Duration as a
// count of seconds, so "poll_interval": 30 means 30s rather than 30ns.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType || f == durationType {
			return data, nil
		}

		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return time.Duration(reflect.ValueOf(data).Uint()) * time.Second, nil
		case reflect.Float32, reflect.Float64:
			return time.Duration(reflect.ValueOf(data).Float() * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}
