package provisioning

import (
	"context"
	"time"

	"github.com/imamik/linup/internal/config"
	"github.com/imamik/linup/internal/credentials"
	"github.com/imamik/linup/internal/platform/linode"
	platformssh "github.com/imamik/linup/internal/platform/ssh"
)

// State holds the shared results of deploy phases. It is progressively
// populated as each phase completes; later phases read what earlier ones
// produced. All run state lives here, never in package globals.
type State struct {
	// InstanceID is set by the create phase.
	InstanceID string

	// RootPassword is the generated root password used at create time
	// and for the SSH fallback auth.
	RootPassword string

	// InstanceIP is resolved once the instance reports running.
	InstanceIP string

	// SetupConfigPath is the local secrets-bearing config file. Cleared
	// once the file is deleted; Deploy removes any leftover on exit.
	SetupConfigPath string
}

// Context wraps all dependencies and state needed by deploy phases.
type Context struct {
	context.Context

	Config   *config.Config
	Provider linode.Client
	Creds    *credentials.Generator
	Log      *credentials.Log
	Observer Observer
	State    *State

	// NewTransport builds the SSH transport once the address is known.
	NewTransport TransportFactory

	// ForgetHost scrubs stale trust records for a reused address before
	// the first connection.
	ForgetHost func(host string) error

	// PollInterval is the pause between poll probes. One second in
	// production; tests shrink it.
	PollInterval time.Duration

	// transport is established by the reachability phase and consumed by
	// the transfer and launch phases.
	transport Transport
}

// NewContext creates a deploy context with production defaults.
func NewContext(ctx context.Context, cfg *config.Config, provider linode.Client, log *credentials.Log) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Provider: provider,
		Creds:    credentials.NewGenerator(log),
		Log:      log,
		Observer: NewConsoleObserver(),
		State:    &State{},

		NewTransport: NewSSHTransportFactory(cfg.PrivateKeyPath()),
		ForgetHost: func(host string) error {
			return platformssh.ForgetHost(platformssh.DefaultKnownHostsPath(), host)
		},
		PollInterval: time.Second,
	}
}
