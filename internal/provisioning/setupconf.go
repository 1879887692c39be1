package provisioning

import (
	"fmt"
	"io"
	"os"
)

// BuildSetupConfig assembles the secrets-bearing configuration consumed
// by the remote setup scripts. It writes a uniquely named temp file,
// optionally seeded from the configured baseline template, then appends
// the run-specific shell-style assignments.
//
// Every password appended here comes from the credential generator, so it
// is in the password log before it reaches the file. The returned path
// holds plaintext secrets; the caller must delete it after transfer and
// must not let it outlive the run.
func BuildSetupConfig(ctx *Context, serverName, customerUser, domain string) (string, error) {
	f, err := os.CreateTemp("", "linup-setup-*.conf")
	if err != nil {
		return "", fmt.Errorf("failed to create setup config: %w", err)
	}
	path := f.Name()

	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}

	if ctx.Config.BaselineConfig != "" {
		baseline, err := os.Open(ctx.Config.BaselineConfig)
		if err != nil {
			return fail(fmt.Errorf("failed to open baseline config: %w", err))
		}
		_, err = io.Copy(f, baseline)
		_ = baseline.Close()
		if err != nil {
			return fail(fmt.Errorf("failed to copy baseline config: %w", err))
		}
	}

	adminPass, err := ctx.Creds.Generate("admin password")
	if err != nil {
		return fail(err)
	}
	dbRootPass, err := ctx.Creds.Generate("database root password")
	if err != nil {
		return fail(err)
	}
	customerPass, err := ctx.Creds.Generate("customer password")
	if err != nil {
		return fail(err)
	}

	assignments := []struct {
		key   string
		value string
	}{
		{"ADMINUSER", ctx.Config.AdminUser},
		{"ADMINPASS", adminPass},
		{"SERVERNAME", serverName},
		{"DBROOTPASS", dbRootPass},
		{"CUSTOMERUSER", customerUser},
		{"CUSTOMERPASS", customerPass},
		{"DOMAIN", domain},
		{"NOTIFYEMAIL", ctx.Config.NotifyEmail},
	}

	for _, a := range assignments {
		if _, err := fmt.Fprintf(f, "%s=%q;\n", a.key, a.value); err != nil {
			return fail(fmt.Errorf("failed to write setup config: %w", err))
		}
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close setup config: %w", err)
	}

	return path, nil
}
