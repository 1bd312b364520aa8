// Package config loads and validates the CLI configuration: which provider
// backs a deployment, the provider-specific hardware parameters, the deploy
// input handed to the boot script, and where handle records are kept.
package config

import (
	"fmt"
	"time"

	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

// Provider names accepted in the configuration.
const (
	ProviderHivelocity = "hivelocity"
	ProviderHyperstack = "hyperstack"
	ProviderHetzner    = "hetzner"
)

// Config is the top-level CLI configuration.
type Config struct {
	Provider string               `mapstructure:"provider"`
	Deploy   deployer.DeployInput `mapstructure:"deploy"`

	Hivelocity *HivelocityConfig `mapstructure:"hivelocity"`
	Hyperstack *HyperstackConfig `mapstructure:"hyperstack"`
	Hetzner    *HetznerConfig    `mapstructure:"hetzner"`

	State StateConfig `mapstructure:"state"`
	Poll  PollConfig  `mapstructure:"poll"`
}

// HivelocityConfig holds the Hivelocity hardware parameters.
type HivelocityConfig struct {
	Class        string   `mapstructure:"class"` // "bare-metal" or "compute"
	LocationName string   `mapstructure:"location_name"`
	Period       string   `mapstructure:"period"`
	Tags         []string `mapstructure:"tags"`
	ProductID    uint64   `mapstructure:"product_id"`
	Hostname     string   `mapstructure:"hostname"`
}

// HyperstackConfig holds the Hyperstack hardware parameters.
type HyperstackConfig struct {
	Name            string `mapstructure:"name"`
	EnvironmentName string `mapstructure:"environment_name"`
	FlavorName      string `mapstructure:"flavor_name"`
	KeyName         string `mapstructure:"key_name"`
}

// HetznerConfig holds the Hetzner Cloud hardware parameters.
type HetznerConfig struct {
	Name       string            `mapstructure:"name"`
	ServerType string            `mapstructure:"server_type"`
	Image      string            `mapstructure:"image"`
	Location   string            `mapstructure:"location"`
	SSHKeys    []string          `mapstructure:"ssh_keys"`
	Labels     map[string]string `mapstructure:"labels"`
}

// StateConfig selects where handle records are persisted. When S3 is set it
// wins over the local state directory.
type StateConfig struct {
	Dir string    `mapstructure:"dir"`
	S3  *S3Config `mapstructure:"s3"`
}

// S3Config holds the S3-compatible handle store parameters. Credentials
// come from the environment, not the config file.
type S3Config struct {
	Endpoint string `mapstructure:"endpoint"`
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
}

// PollConfig holds readiness polling settings for deploy --wait.
type PollConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	MaxAttempts     int `mapstructure:"max_attempts"`
}

// Interval returns the poll interval as a duration.
func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// Validate checks that the configuration is internally consistent and that
// the selected provider has its hardware block filled in.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderHivelocity:
		if c.Hivelocity == nil {
			return fmt.Errorf("provider is %s but the hivelocity section is missing", c.Provider)
		}
		if c.Hivelocity.Class != "bare-metal" && c.Hivelocity.Class != "compute" {
			return fmt.Errorf("hivelocity.class must be \"bare-metal\" or \"compute\", got %q", c.Hivelocity.Class)
		}
		if c.Hivelocity.ProductID == 0 {
			return fmt.Errorf("hivelocity.product_id is required")
		}
		if c.Hivelocity.Hostname == "" {
			return fmt.Errorf("hivelocity.hostname is required")
		}
	case ProviderHyperstack:
		if c.Hyperstack == nil {
			return fmt.Errorf("provider is %s but the hyperstack section is missing", c.Provider)
		}
		if c.Hyperstack.EnvironmentName == "" {
			return fmt.Errorf("hyperstack.environment_name is required")
		}
		if c.Hyperstack.FlavorName == "" {
			return fmt.Errorf("hyperstack.flavor_name is required")
		}
	case ProviderHetzner:
		if c.Hetzner == nil {
			return fmt.Errorf("provider is %s but the hetzner section is missing", c.Provider)
		}
		if c.Hetzner.ServerType == "" {
			return fmt.Errorf("hetzner.server_type is required")
		}
		if c.Hetzner.Image == "" {
			return fmt.Errorf("hetzner.image is required")
		}
	case "":
		return fmt.Errorf("provider is required")
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.State.S3 != nil && c.State.S3.Bucket == "" {
		return fmt.Errorf("state.s3.bucket is required when state.s3 is set")
	}
	if c.Poll.IntervalSeconds < 0 || c.Poll.MaxAttempts < 0 {
		return fmt.Errorf("poll settings must not be negative")
	}

	return nil
}
