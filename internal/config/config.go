package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when
// no explicit path is given.
const DefaultFile = "linup.yaml"

// Config holds every setting the deploy run depends on. Required fields
// must be non-empty before any provisioning action; Validate enforces
// that.
type Config struct {
	// Token is the Linode API token. Required.
	Token string `yaml:"token"`

	// AdminUser is the administrative account configured on the new
	// instance. Required.
	AdminUser string `yaml:"admin_user"`

	// DefaultImage is the image deployed when none is chosen on the
	// command line. Required.
	DefaultImage string `yaml:"default_image"`

	// ScriptsDir is the local directory of setup scripts transferred to
	// the instance. Required.
	ScriptsDir string `yaml:"scripts_dir"`

	// PollBudgetSeconds bounds each wait loop (status, reachability).
	// Required, must be positive.
	PollBudgetSeconds int `yaml:"poll_budget"`

	// NotifyEmail receives setup notifications from the remote scripts.
	// Required.
	NotifyEmail string `yaml:"notify_email"`

	// AuthorizedKeyPath is the public key installed on the instance at
	// create time. The matching private key (same path without ".pub")
	// is used for SSH access. Defaults to ~/.ssh/linup_ed25519.pub.
	AuthorizedKeyPath string `yaml:"authorized_key"`

	// BaselineConfig optionally seeds the generated setup configuration
	// with a template file before run-specific values are appended.
	BaselineConfig string `yaml:"baseline_config"`

	// SSHUser is the account used for the handoff. Defaults to root.
	SSHUser string `yaml:"ssh_user"`

	// RemoteSetupDir is where scripts land on the instance. Defaults to
	// /root/setup.
	RemoteSetupDir string `yaml:"remote_setup_dir"`

	// RemoteEntryPoint is the script launched (detached) after transfer,
	// relative to RemoteSetupDir. Defaults to setup.sh.
	RemoteEntryPoint string `yaml:"remote_entry_point"`

	// LogDir is where per-run password logs are written. Defaults to the
	// working directory.
	LogDir string `yaml:"log_dir"`
}

// Load reads the configuration file at path, then applies environment
// overrides and defaults. An empty path falls back to DefaultFile in the
// working directory; a missing default file is not an error since the
// environment may carry every setting.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv overlays environment variables on file values. Environment
// wins so operators can override a checked-in config per run.
func (c *Config) applyEnv() {
	if v := os.Getenv("LINODE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("LINUP_ADMIN_USER"); v != "" {
		c.AdminUser = v
	}
	if v := os.Getenv("LINUP_DEFAULT_IMAGE"); v != "" {
		c.DefaultImage = v
	}
	if v := os.Getenv("LINUP_SCRIPTS_DIR"); v != "" {
		c.ScriptsDir = v
	}
	if v := os.Getenv("LINUP_POLL_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PollBudgetSeconds = n
		}
	}
	if v := os.Getenv("LINUP_NOTIFY_EMAIL"); v != "" {
		c.NotifyEmail = v
	}
}

func (c *Config) applyDefaults() {
	if c.AuthorizedKeyPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.AuthorizedKeyPath = filepath.Join(home, ".ssh", "linup_ed25519.pub")
		}
	}
	if c.SSHUser == "" {
		c.SSHUser = "root"
	}
	if c.RemoteSetupDir == "" {
		c.RemoteSetupDir = "/root/setup"
	}
	if c.RemoteEntryPoint == "" {
		c.RemoteEntryPoint = "setup.sh"
	}
	if c.LogDir == "" {
		c.LogDir = "."
	}
}

// PollBudget returns the wait-loop budget as a duration.
func (c *Config) PollBudget() time.Duration {
	return time.Duration(c.PollBudgetSeconds) * time.Second
}

// PrivateKeyPath returns the private key path matching AuthorizedKeyPath.
func (c *Config) PrivateKeyPath() string {
	if filepath.Ext(c.AuthorizedKeyPath) == ".pub" {
		return c.AuthorizedKeyPath[:len(c.AuthorizedKeyPath)-len(".pub")]
	}
	return c.AuthorizedKeyPath
}
