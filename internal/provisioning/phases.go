package provisioning

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/imamik/linup/internal/platform/linode"
)

// DeployParams are the per-run inputs collected from flags and prompts.
type DeployParams struct {
	Label        string
	Region       string
	Type         string
	Image        string
	ServerName   string
	CustomerUser string
	Domain       string
}

// Deploy runs the full provisioning sequence. Any phase failure aborts
// the remaining phases; the local secrets-bearing setup config is removed
// on the way out regardless of outcome.
func Deploy(ctx *Context, params DeployParams) error {
	defer func() {
		if p := ctx.State.SetupConfigPath; p != "" {
			_ = os.Remove(p)
			ctx.State.SetupConfigPath = ""
		}
	}()

	return RunPhases(ctx, []Phase{
		&validationPhase{},
		&createPhase{params: params},
		&waitRunningPhase{},
		&resolveAddressPhase{},
		&reachabilityPhase{},
		&setupConfigPhase{params: params},
		&transferPhase{},
		&launchPhase{},
		&reportPhase{},
	})
}

// validationPhase confirms the configuration is complete before any
// provisioning action.
type validationPhase struct{}

func (*validationPhase) Name() string { return "validation" }

func (*validationPhase) Run(ctx *Context) error {
	return ctx.Config.Validate()
}

// createPhase generates the root password and creates the instance.
type createPhase struct {
	params DeployParams
}

func (*createPhase) Name() string { return "create" }

func (p *createPhase) Run(ctx *Context) error {
	authorizedKey, err := os.ReadFile(ctx.Config.AuthorizedKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read authorized key %s (run 'linup keys init'): %w",
			ctx.Config.AuthorizedKeyPath, err)
	}

	rootPassword, err := ctx.Creds.Generate("root password")
	if err != nil {
		return err
	}
	ctx.State.RootPassword = rootPassword

	inst, err := ctx.Provider.CreateInstance(ctx, linode.CreateOptions{
		Label:          p.params.Label,
		Region:         p.params.Region,
		Type:           p.params.Type,
		Image:          p.params.Image,
		RootPassword:   rootPassword,
		AuthorizedKeys: []string{strings.TrimSpace(string(authorizedKey))},
	})
	if err != nil {
		return err
	}

	ctx.State.InstanceID = inst.ID
	ctx.Observer.Printf("created instance %s (%s, %s, %s)", inst.ID, p.params.Region, p.params.Type, p.params.Image)
	return nil
}

// waitRunningPhase polls until the provider reports the instance running.
type waitRunningPhase struct{}

func (*waitRunningPhase) Name() string { return "wait-running" }

func (*waitRunningPhase) Run(ctx *Context) error {
	inst, err := ctx.WaitForStatus(ctx.State.InstanceID, linode.StatusRunning)
	if err != nil {
		return err
	}
	// The address is usually assigned by the time the instance runs;
	// pick it up here to save a read.
	ctx.State.InstanceIP = inst.IPv4
	return nil
}

// resolveAddressPhase ensures the public address is known.
type resolveAddressPhase struct{}

func (*resolveAddressPhase) Name() string { return "resolve-address" }

func (*resolveAddressPhase) Run(ctx *Context) error {
	if ctx.State.InstanceIP != "" {
		return nil
	}

	inst, err := ctx.Provider.GetInstance(ctx, ctx.State.InstanceID)
	if err != nil {
		return err
	}
	if inst.IPv4 == "" {
		return fmt.Errorf("instance %s is running but has no public address", ctx.State.InstanceID)
	}
	ctx.State.InstanceIP = inst.IPv4
	return nil
}

// reachabilityPhase scrubs stale trust records for the address, builds
// the transport, and polls until an SSH connection succeeds.
type reachabilityPhase struct{}

func (*reachabilityPhase) Name() string { return "wait-reachable" }

func (*reachabilityPhase) Run(ctx *Context) error {
	host := ctx.State.InstanceIP

	// Providers reuse addresses across runs; a stale key would trip up
	// later manual sessions.
	if err := ctx.ForgetHost(host); err != nil {
		return err
	}

	t, err := ctx.NewTransport(host, ctx.Config.SSHUser, ctx.State.RootPassword)
	if err != nil {
		return err
	}
	ctx.transport = t

	return ctx.WaitForReachable(t, host)
}

// setupConfigPhase builds the local secrets-bearing configuration file.
type setupConfigPhase struct {
	params DeployParams
}

func (*setupConfigPhase) Name() string { return "setup-config" }

func (p *setupConfigPhase) Run(ctx *Context) error {
	path, err := BuildSetupConfig(ctx, p.params.ServerName, p.params.CustomerUser, p.params.Domain)
	if err != nil {
		return err
	}
	ctx.State.SetupConfigPath = path
	return nil
}

// transferPhase uploads the setup scripts and configuration, then deletes
// the local configuration file. Secrets never persist locally past the
// transfer.
type transferPhase struct{}

func (*transferPhase) Name() string { return "transfer" }

func (*transferPhase) Run(ctx *Context) error {
	remoteDir := ctx.Config.RemoteSetupDir

	if err := ctx.transport.UploadDir(ctx, ctx.Config.ScriptsDir, remoteDir); err != nil {
		return fmt.Errorf("failed to transfer setup scripts: %w", err)
	}

	remoteConf := path.Join(remoteDir, "setup.conf")
	if err := ctx.transport.UploadFile(ctx, ctx.State.SetupConfigPath, remoteConf); err != nil {
		return fmt.Errorf("failed to transfer setup config: %w", err)
	}

	if err := os.Remove(ctx.State.SetupConfigPath); err != nil {
		return fmt.Errorf("failed to remove local setup config: %w", err)
	}
	ctx.State.SetupConfigPath = ""
	return nil
}

// launchPhase starts the remote setup entry point detached. The run does
// not wait on remote completion; setup failures past this point surface
// only through the notification address.
type launchPhase struct{}

func (*launchPhase) Name() string { return "launch" }

func (*launchPhase) Run(ctx *Context) error {
	entry := path.Join(ctx.Config.RemoteSetupDir, ctx.Config.RemoteEntryPoint)
	return ctx.transport.Launch(ctx, fmt.Sprintf("sh %s", entry))
}

// reportPhase tells the operator where the credentials were logged.
type reportPhase struct{}

func (*reportPhase) Name() string { return "report" }

func (*reportPhase) Run(ctx *Context) error {
	ctx.Observer.Printf("instance %s up at %s; setup running in background", ctx.State.InstanceID, ctx.State.InstanceIP)
	ctx.Observer.Printf("passwords logged to %s", ctx.Log.Path())
	return nil
}
