package deployer

import "strings"

// installScriptURL bootstraps the XnodeOS installation on first boot. The
// surrounding script shape is a frozen contract with the installer; changing
// it breaks machines mid-provisioning.
const installScriptURL = "https://raw.githubusercontent.com/Openmesh-Network/xnode-manager/main/os/install.sh"

// CloudInit renders the boot-time configuration script. Each present field
// becomes one `export NAME="value" && ` fragment, in a fixed order (owner,
// domain, ACME email, password, encrypted blob, initial config). Values are
// wrapped in double quotes but not otherwise escaped: the caller must ensure
// they contain no characters that break shell quoting.
func (in DeployInput) CloudInit() string {
	var env strings.Builder
	for _, f := range []struct {
		name  string
		value string
	}{
		{"XNODE_OWNER", in.XnodeOwner},
		{"DOMAIN", in.Domain},
		{"ACME_EMAIL", in.ACMEEmail},
		{"USER_PASSWD", in.UserPasswd},
		{"ENCRYPTED", in.Encrypted},
		{"INITIAL_CONFIG", in.InitialConfig},
	} {
		if f.value == "" {
			continue
		}
		env.WriteString("export " + f.name + "=\"" + f.value + "\" && ")
	}

	return "#cloud-config\nruncmd:\n - " + env.String() +
		"curl " + installScriptURL + " | bash 2>&1 | tee /tmp/xnodeos.log"
}
