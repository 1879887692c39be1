// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/imamik/linup/internal/config"
	"github.com/imamik/linup/internal/credentials"
	"github.com/imamik/linup/internal/platform/linode"
	"github.com/imamik/linup/internal/provisioning"
	"github.com/imamik/linup/internal/ui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the run configuration.
	loadConfig = config.Load

	// newProviderClient creates the provider API client.
	newProviderClient = func(token string) linode.Client {
		return linode.NewRealClient(token)
	}

	// newPasswordLog opens the per-run password log.
	newPasswordLog = credentials.NewLog

	// newDeployContext builds the provisioning context.
	newDeployContext = provisioning.NewContext

	// runDeploy executes the provisioning pipeline.
	runDeploy = provisioning.Deploy

	// promptForMissing fills missing deploy values interactively.
	promptForMissing = promptMissing

	// confirmDeploy asks the operator to confirm the plan.
	confirmDeploy = confirmPlan

	// stdinIsTTY reports whether interactive prompting is possible.
	stdinIsTTY = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd())
	}
)

// DeployOptions are the flag values for the deploy command.
type DeployOptions struct {
	ConfigPath   string
	Label        string
	Region       string
	Type         string
	Image        string
	ServerName   string
	CustomerUser string
	Domain       string
	Yes          bool
}

// MissingInputError lists required deploy values that are still absent
// after flags and prompting. The command shows usage when it sees one.
type MissingInputError struct {
	Fields []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required values: %s", strings.Join(e.Fields, ", "))
}

// Deploy provisions a new instance and hands off to the remote setup.
//
// The sequence is: load and validate configuration, collect missing
// inputs (interactively when possible), confirm, open the password log,
// then run the provisioning pipeline. The password log location is part
// of the final report.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	// Configuration must be complete before any provisioning action.
	if err := cfg.Validate(); err != nil {
		return err
	}

	params := provisioning.DeployParams{
		Label:        opts.Label,
		Region:       opts.Region,
		Type:         opts.Type,
		Image:        opts.Image,
		ServerName:   opts.ServerName,
		CustomerUser: opts.CustomerUser,
		Domain:       opts.Domain,
	}
	if params.Image == "" {
		params.Image = cfg.DefaultImage
	}

	provider := newProviderClient(cfg.Token)

	if fields := missingFields(params); len(fields) > 0 {
		if !stdinIsTTY() {
			return &MissingInputError{Fields: fields}
		}
		if err := promptForMissing(ctx, provider, &params); err != nil {
			return err
		}
		if fields := missingFields(params); len(fields) > 0 {
			return &MissingInputError{Fields: fields}
		}
	}

	if !opts.Yes {
		if !stdinIsTTY() {
			return fmt.Errorf("refusing to deploy without confirmation; pass --yes for non-interactive runs")
		}
		ok, err := confirmDeploy(ctx, params)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("deploy aborted")
		}
	}

	log, err := newPasswordLog(cfg.LogDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	pctx := newDeployContext(ctx, cfg, provider, log)
	if err := runDeploy(pctx, params); err != nil {
		return err
	}

	fmt.Print(ui.DeployReport{
		InstanceID:  pctx.State.InstanceID,
		InstanceIP:  pctx.State.InstanceIP,
		Label:       params.Label,
		PasswordLog: log.Path(),
	}.Render(ui.Styled()))

	return nil
}

// missingFields returns the required deploy values that are still empty.
func missingFields(p provisioning.DeployParams) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"label", p.Label},
		{"region", p.Region},
		{"type", p.Type},
		{"server-name", p.ServerName},
		{"customer-user", p.CustomerUser},
		{"domain", p.Domain},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
