package ssh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKnownHostsPath returns ~/.ssh/known_hosts, or an empty string
// when the home directory cannot be resolved.
func DefaultKnownHostsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "known_hosts")
}

// ForgetHost removes every known_hosts entry for host from the file at
// path. Providers reuse addresses across provisioning runs, so a stale
// recorded key would make later manual SSH sessions fail host
// verification. A missing file is not an error. Hashed entries cannot be
// matched by address and are left alone.
func ForgetHost(path, host string) error {
	if path == "" || host == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read known_hosts: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	changed := false

	for _, line := range lines {
		if matchesHost(line, host) {
			changed = true
			continue
		}
		kept = append(kept, line)
	}

	if !changed {
		return nil
	}

	out := strings.Join(kept, "\n")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		return fmt.Errorf("failed to rewrite known_hosts: %w", err)
	}
	return nil
}

// matchesHost reports whether a known_hosts line records the given host.
// The first field is a comma-separated host list; entries may carry a
// bracketed host with port.
func matchesHost(line, host string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 3 {
		return false
	}

	for _, h := range strings.Split(fields[0], ",") {
		h = strings.TrimPrefix(h, "[")
		if i := strings.Index(h, "]"); i >= 0 {
			h = h[:i]
		}
		if h == host {
			return true
		}
	}
	return false
}
