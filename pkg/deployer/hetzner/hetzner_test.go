package hetzner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

func testHardware() Hardware {
	return Hardware{
		Name:       "xnode-test",
		ServerType: "cx22",
		Image:      "ubuntu-24.04",
		Location:   "fsn1",
		SSHKeys:    []string{"xnode-key"},
		Labels:     map[string]string{"managed-by": "xnode-deployer"},
	}
}

func newTestDeployer(t *testing.T, handler http.Handler) *Deployer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := hcloud.NewClient(hcloud.WithToken("test-token"), hcloud.WithEndpoint(srv.URL))
	return New("test-token", testHardware(), WithClient(client))
}

func TestDeploy(t *testing.T) {
	var gotBody map[string]any
	d := newTestDeployer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/servers", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"server": {"id": 42, "name": "xnode-test", "public_net": {"ipv4": {"ip": "0.0.0.0"}}},
			"action": {"id": 1, "status": "running", "progress": 0}
		}`))
	}))

	handle, err := d.Deploy(context.Background(), deployer.DeployInput{XnodeOwner: "eth:0xabc"})
	require.NoError(t, err)
	assert.Equal(t, Handle{ID: 42}, handle)

	assert.Equal(t, "xnode-test", gotBody["name"])
	assert.Equal(t, "cx22", gotBody["server_type"])
	assert.Equal(t, "ubuntu-24.04", gotBody["image"])
	assert.Equal(t, "fsn1", gotBody["location"])
	assert.Contains(t, gotBody["user_data"], `export XNODE_OWNER="eth:0xabc" && `)
	assert.Contains(t, gotBody["user_data"], "#cloud-config")
}

func TestDeployFailure(t *testing.T) {
	d := newTestDeployer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"code": "uniqueness_error", "message": "name already used"}}`))
	}))

	_, err := d.Deploy(context.Background(), deployer.DeployInput{})
	require.Error(t, err)
	assert.True(t, deployer.IsTransport(err))

	var hcErr hcloud.Error
	assert.ErrorAs(t, err, &hcErr)
	assert.Equal(t, hcloud.ErrorCode("uniqueness_error"), hcErr.Code)
}

func TestUndeploy(t *testing.T) {
	var gotMethod, gotPath string
	d := newTestDeployer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"action": {"id": 2, "status": "running", "progress": 0}}`))
	}))

	err := d.Undeploy(context.Background(), Handle{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/servers/42", gotPath)
}

func TestIPv4(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		wantAddr string
	}{
		{
			name:     "assigned",
			status:   http.StatusOK,
			response: `{"server": {"id": 42, "public_net": {"ipv4": {"ip": "198.51.100.3"}}}}`,
			wantAddr: "198.51.100.3",
		},
		{
			name:     "no public address",
			status:   http.StatusOK,
			response: `{"server": {"id": 42, "public_net": {}}}`,
			wantAddr: "",
		},
		{
			name:     "server gone",
			status:   http.StatusNotFound,
			response: `{"error": {"code": "not_found", "message": "server not found"}}`,
			wantAddr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeployer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/servers/42", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))

			res, err := d.IPv4(context.Background(), Handle{ID: 42})
			require.NoError(t, err)

			addr, supported := res.Get()
			require.True(t, supported)
			if tt.wantAddr == "" {
				assert.False(t, addr.IsValid())
			} else {
				assert.Equal(t, tt.wantAddr, addr.String())
			}
		})
	}
}
