package handlers

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/linup/internal/config"
	"github.com/imamik/linup/internal/credentials"
	"github.com/imamik/linup/internal/platform/linode"
	"github.com/imamik/linup/internal/provisioning"
)

// saveAndRestoreFactories snapshots every factory variable and restores
// it when the test finishes.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfig := loadConfig
	origNewProviderClient := newProviderClient
	origNewPasswordLog := newPasswordLog
	origNewDeployContext := newDeployContext
	origRunDeploy := runDeploy
	origPromptForMissing := promptForMissing
	origConfirmDeploy := confirmDeploy
	origStdinIsTTY := stdinIsTTY
	origGenerateKeyPair := generateKeyPair

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newProviderClient = origNewProviderClient
		newPasswordLog = origNewPasswordLog
		newDeployContext = origNewDeployContext
		runDeploy = origRunDeploy
		promptForMissing = origPromptForMissing
		confirmDeploy = origConfirmDeploy
		stdinIsTTY = origStdinIsTTY
		generateKeyPair = origGenerateKeyPair
	})
}

// testDeployConfig returns a complete configuration rooted in temp dirs.
func testDeployConfig(t *testing.T) *config.Config {
	t.Helper()

	keyPath := filepath.Join(t.TempDir(), "linup_ed25519.pub")
	require.NoError(t, os.WriteFile(keyPath, []byte("ssh-ed25519 AAAA test\n"), 0o644))

	return &config.Config{
		Token:             "tok",
		AdminUser:         "sysadm",
		DefaultImage:      "linode/ubuntu24.04",
		ScriptsDir:        t.TempDir(),
		PollBudgetSeconds: 100,
		NotifyEmail:       "ops@example.com",
		AuthorizedKeyPath: keyPath,
		SSHUser:           "root",
		RemoteSetupDir:    "/root/setup",
		RemoteEntryPoint:  "setup.sh",
		LogDir:            t.TempDir(),
	}
}

// stubCommonFactories wires the factories for a deploy test: canned
// config, mock provider, temp password log, recorded runDeploy.
func stubCommonFactories(t *testing.T, cfg *config.Config, provider linode.Client) *provisioning.DeployParams {
	t.Helper()

	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	newProviderClient = func(string) linode.Client { return provider }
	newPasswordLog = func(string) (*credentials.Log, error) {
		return credentials.NewLog(t.TempDir())
	}
	stdinIsTTY = func() bool { return false }

	var got provisioning.DeployParams
	runDeploy = func(_ *provisioning.Context, p provisioning.DeployParams) error {
		got = p
		return nil
	}
	return &got
}

func fullDeployOptions() DeployOptions {
	return DeployOptions{
		Label:        "demo",
		Region:       "us-east",
		Type:         "g6-nanode-1",
		ServerName:   "host1",
		CustomerUser: "customer1",
		Domain:       "example.com",
		Yes:          true,
	}
}

// captureStdout runs fn and returns what it wrote to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	require.NoError(t, w.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data), runErr
}

var testCtx = context.Background()
