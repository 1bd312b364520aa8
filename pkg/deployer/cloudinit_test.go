package deployer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const scriptTail = "curl https://raw.githubusercontent.com/Openmesh-Network/xnode-manager/main/os/install.sh | bash 2>&1 | tee /tmp/xnodeos.log"

func TestCloudInitEmptyInput(t *testing.T) {
	got := DeployInput{}.CloudInit()

	assert.Equal(t, "#cloud-config\nruncmd:\n - "+scriptTail, got)
	assert.NotContains(t, got, "export")
}

func TestCloudInitSingleField(t *testing.T) {
	got := DeployInput{Domain: "a.com"}.CloudInit()

	assert.Equal(t, "#cloud-config\nruncmd:\n - export DOMAIN=\"a.com\" && "+scriptTail, got)
	assert.Equal(t, 1, strings.Count(got, "export"))
}

func TestCloudInitAllFieldsFixedOrder(t *testing.T) {
	in := DeployInput{
		XnodeOwner:    "owner",
		Domain:        "a.com",
		ACMEEmail:     "ops@a.com",
		UserPasswd:    "hunter2",
		Encrypted:     "blob",
		InitialConfig: "cfg",
	}

	got := in.CloudInit()

	want := "#cloud-config\nruncmd:\n - " +
		"export XNODE_OWNER=\"owner\" && " +
		"export DOMAIN=\"a.com\" && " +
		"export ACME_EMAIL=\"ops@a.com\" && " +
		"export USER_PASSWD=\"hunter2\" && " +
		"export ENCRYPTED=\"blob\" && " +
		"export INITIAL_CONFIG=\"cfg\" && " +
		scriptTail
	assert.Equal(t, want, got)
}

func TestCloudInitSubsets(t *testing.T) {
	tests := []struct {
		name        string
		input       DeployInput
		wantExports []string
	}{
		{
			name:        "owner and config",
			input:       DeployInput{XnodeOwner: "o", InitialConfig: "c"},
			wantExports: []string{`export XNODE_OWNER="o" && `, `export INITIAL_CONFIG="c" && `},
		},
		{
			name:        "password only",
			input:       DeployInput{UserPasswd: "p"},
			wantExports: []string{`export USER_PASSWD="p" && `},
		},
		{
			name:        "email and encrypted",
			input:       DeployInput{ACMEEmail: "e@x.io", Encrypted: "z"},
			wantExports: []string{`export ACME_EMAIL="e@x.io" && `, `export ENCRYPTED="z" && `},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.CloudInit()

			assert.Equal(t, len(tt.wantExports), strings.Count(got, "export"))
			for _, fragment := range tt.wantExports {
				assert.Contains(t, got, fragment)
			}

			// Present fields must keep the fixed order.
			last := -1
			for _, fragment := range tt.wantExports {
				idx := strings.Index(got, fragment)
				assert.Greater(t, idx, last)
				last = idx
			}

			assert.True(t, strings.HasPrefix(got, "#cloud-config\nruncmd:\n - "))
			assert.True(t, strings.HasSuffix(got, scriptTail))
		})
	}
}
