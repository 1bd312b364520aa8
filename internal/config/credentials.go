package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Credentials holds every secret the CLI may need. They come from the
// environment, never from the config file; a .env file next to the working
// directory is loaded first when present.
type Credentials struct {
	HivelocityAPIKey string `env:"HIVELOCITY_API_KEY"`
	HyperstackAPIKey string `env:"HYPERSTACK_API_KEY"`
	HCloudToken      string `env:"HCLOUD_TOKEN"`
	S3AccessKey      string `env:"XNODE_S3_ACCESS_KEY"`
	S3SecretKey      string `env:"XNODE_S3_SECRET_KEY"`
}

// LoadCredentials reads credentials from the environment.
func LoadCredentials() (*Credentials, error) {
	// Missing .env is fine; explicit environment always applies.
	_ = godotenv.Load()

	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials from environment: %w", err)
	}
	return &creds, nil
}

// ForProvider returns the credential for the given provider, or an error
// when it is unset.
func (c *Credentials) ForProvider(provider string) (string, error) {
	switch provider {
	case ProviderHivelocity:
		if c.HivelocityAPIKey == "" {
			return "", fmt.Errorf("HIVELOCITY_API_KEY is not set")
		}
		return c.HivelocityAPIKey, nil
	case ProviderHyperstack:
		if c.HyperstackAPIKey == "" {
			return "", fmt.Errorf("HYPERSTACK_API_KEY is not set")
		}
		return c.HyperstackAPIKey, nil
	case ProviderHetzner:
		if c.HCloudToken == "" {
			return "", fmt.Errorf("HCLOUD_TOKEN is not set")
		}
		return c.HCloudToken, nil
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
}
