package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileHivelocity(t *testing.T) {
	path := writeConfig(t, `
provider: hivelocity
deploy:
  xnode_owner: "eth:0xabc"
  domain: "node.example.org"
  initial_config: "services.openssh.enable = true;"
hivelocity:
  class: bare-metal
  location_name: TPA1
  period: monthly
  tags: ["xnode"]
  product_id: 593
  hostname: xnode.example.org
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderHivelocity, cfg.Provider)
	assert.Equal(t, "eth:0xabc", cfg.Deploy.XnodeOwner)
	assert.Equal(t, "node.example.org", cfg.Deploy.Domain)
	assert.Equal(t, "services.openssh.enable = true;", cfg.Deploy.InitialConfig)

	require.NotNil(t, cfg.Hivelocity)
	assert.Equal(t, "bare-metal", cfg.Hivelocity.Class)
	assert.Equal(t, "TPA1", cfg.Hivelocity.LocationName)
	assert.Equal(t, uint64(593), cfg.Hivelocity.ProductID)
	assert.Equal(t, []string{"xnode"}, cfg.Hivelocity.Tags)

	// Defaults fill in what the file omits.
	assert.Equal(t, ".xnode-deployer", cfg.State.Dir)
	assert.Equal(t, 1*time.Second, cfg.Poll.Interval())
	assert.Equal(t, 300, cfg.Poll.MaxAttempts)
}

func TestLoadFileHyperstackWithState(t *testing.T) {
	path := writeConfig(t, `
provider: hyperstack
hyperstack:
  name: xnode-vm
  environment_name: default-CANADA-1
  flavor_name: n1-cpu-small
  key_name: xnode-key
state:
  s3:
    endpoint: https://s3.example.org
    region: us-east-1
    bucket: xnode-handles
    prefix: prod
poll:
  interval_seconds: 5
  max_attempts: 60
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderHyperstack, cfg.Provider)
	require.NotNil(t, cfg.State.S3)
	assert.Equal(t, "xnode-handles", cfg.State.S3.Bucket)
	assert.Equal(t, "prod", cfg.State.S3.Prefix)
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval())
	assert.Equal(t, 60, cfg.Poll.MaxAttempts)
}

func TestLoadFileHetzner(t *testing.T) {
	path := writeConfig(t, `
provider: hetzner
hetzner:
  name: xnode-vm
  server_type: cx22
  image: ubuntu-24.04
  location: fsn1
  ssh_keys: ["xnode-key"]
  labels:
    managed-by: xnode-deployer
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Hetzner)
	assert.Equal(t, "cx22", cfg.Hetzner.ServerType)
	assert.Equal(t, map[string]string{"managed-by": "xnode-deployer"}, cfg.Hetzner.Labels)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing provider",
			content: `deploy: {}`,
			wantErr: "provider is required",
		},
		{
			name:    "unknown provider",
			content: `provider: digitalocean`,
			wantErr: "unknown provider",
		},
		{
			name: "missing provider section",
			content: `
provider: hivelocity
`,
			wantErr: "hivelocity section is missing",
		},
		{
			name: "bad hivelocity class",
			content: `
provider: hivelocity
hivelocity:
  class: metal
  product_id: 593
  hostname: x.example.org
`,
			wantErr: "hivelocity.class",
		},
		{
			name: "missing product id",
			content: `
provider: hivelocity
hivelocity:
  class: compute
  hostname: x.example.org
`,
			wantErr: "hivelocity.product_id is required",
		},
		{
			name: "missing flavor",
			content: `
provider: hyperstack
hyperstack:
  environment_name: default-CANADA-1
`,
			wantErr: "hyperstack.flavor_name is required",
		},
		{
			name: "missing server type",
			content: `
provider: hetzner
hetzner:
  image: ubuntu-24.04
`,
			wantErr: "hetzner.server_type is required",
		},
		{
			name: "s3 without bucket",
			content: `
provider: hetzner
hetzner:
  server_type: cx22
  image: ubuntu-24.04
state:
  s3:
    region: us-east-1
`,
			wantErr: "state.s3.bucket is required",
		},
		{
			name:    "invalid yaml",
			content: "provider: [",
			wantErr: "failed to unmarshal yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
