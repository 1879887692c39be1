package config

import (
	"fmt"
	"strings"
)

// MissingKeysError lists every required configuration key that is absent.
// All missing keys are reported at once so the operator fixes the
// configuration in a single pass.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Keys, ", "))
}

// Validate checks that every required setting is present. It returns a
// *MissingKeysError naming all absent keys, or nil when the configuration
// is complete. Must pass before any provisioning action.
func (c *Config) Validate() error {
	required := []struct {
		key string
		ok  bool
	}{
		{"token", c.Token != ""},
		{"admin_user", c.AdminUser != ""},
		{"default_image", c.DefaultImage != ""},
		{"scripts_dir", c.ScriptsDir != ""},
		{"poll_budget", c.PollBudgetSeconds > 0},
		{"notify_email", c.NotifyEmail != ""},
	}

	var missing []string
	for _, r := range required {
		if !r.ok {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}
	return nil
}
