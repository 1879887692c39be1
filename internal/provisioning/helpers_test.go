package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imamik/linup/internal/config"
	"github.com/imamik/linup/internal/credentials"
	"github.com/imamik/linup/internal/platform/linode"
)

// recordingObserver captures progress output for assertions.
type recordingObserver struct {
	mu    sync.Mutex
	lines []string
	ticks int
}

func (o *recordingObserver) Printf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, format)
}

func (o *recordingObserver) Tick() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ticks++
}

// fakeTransport records transport activity. Probe returns the errors in
// probeErrs in order, then nil forever.
type fakeTransport struct {
	probeErrs  []error
	probeCalls int

	uploadedDirs  [][2]string
	uploadedFiles [][2]string

	// uploadedConfig captures the setup config content at upload time,
	// before the orchestrator deletes the local file.
	uploadedConfig string

	launched []string

	uploadFileErr error
}

func (f *fakeTransport) Probe(context.Context) error {
	f.probeCalls++
	if f.probeCalls <= len(f.probeErrs) {
		return f.probeErrs[f.probeCalls-1]
	}
	return nil
}

func (f *fakeTransport) UploadDir(_ context.Context, local, remote string) error {
	f.uploadedDirs = append(f.uploadedDirs, [2]string{local, remote})
	return nil
}

func (f *fakeTransport) UploadFile(_ context.Context, local, remote string) error {
	f.uploadedFiles = append(f.uploadedFiles, [2]string{local, remote})
	if f.uploadFileErr != nil {
		return f.uploadFileErr
	}
	if data, err := os.ReadFile(local); err == nil {
		f.uploadedConfig = string(data)
	}
	return nil
}

func (f *fakeTransport) Launch(_ context.Context, command string) error {
	f.launched = append(f.launched, command)
	return nil
}

// testConfig returns a complete configuration rooted in temp dirs.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	scriptsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "setup.sh"), []byte("#!/bin/sh\n"), 0o755))

	keyPath := filepath.Join(t.TempDir(), "linup_ed25519.pub")
	require.NoError(t, os.WriteFile(keyPath, []byte("ssh-ed25519 AAAAC3Nza test@linup\n"), 0o644))

	return &config.Config{
		Token:             "tok",
		AdminUser:         "sysadm",
		DefaultImage:      "linode/ubuntu24.04",
		ScriptsDir:        scriptsDir,
		PollBudgetSeconds: 1,
		NotifyEmail:       "ops@example.com",
		AuthorizedKeyPath: keyPath,
		SSHUser:           "root",
		RemoteSetupDir:    "/root/setup",
		RemoteEntryPoint:  "setup.sh",
	}
}

// testContext wires a Context around the mock provider and fake
// transport, with a millisecond poll interval.
func testContext(t *testing.T, cfg *config.Config, provider linode.Client, transport *fakeTransport) *Context {
	t.Helper()

	log, err := credentials.NewLog(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	return &Context{
		Context:  context.Background(),
		Config:   cfg,
		Provider: provider,
		Creds:    credentials.NewGenerator(log),
		Log:      log,
		Observer: &recordingObserver{},
		State:    &State{},
		NewTransport: func(host, user, rootPassword string) (Transport, error) {
			return transport, nil
		},
		ForgetHost:   func(string) error { return nil },
		PollInterval: 10 * time.Millisecond,
	}
}
