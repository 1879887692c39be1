// Package ui renders operator-facing output for the CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Styled reports whether stdout is a terminal. Non-terminal output (logs,
// pipes) gets plain text.
func Styled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// DeployReport is the summary shown after a successful run.
type DeployReport struct {
	InstanceID  string
	InstanceIP  string
	Label       string
	PasswordLog string
}

// Render formats the report, styled when the output is a terminal.
func (r DeployReport) Render(styled bool) string {
	var b strings.Builder

	title := "Instance deployed"
	if styled {
		title = titleStyle.Render(title)
	}
	b.WriteString(title + "\n")

	rows := []struct {
		label string
		value string
	}{
		{"label", r.Label},
		{"instance", r.InstanceID},
		{"address", r.InstanceIP},
		{"passwords", r.PasswordLog},
	}
	for _, row := range rows {
		label := fmt.Sprintf("%-10s", row.label)
		if styled {
			label = labelStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", label, row.value))
	}

	note := "Remote setup continues in the background; completion is reported to the notification address."
	if styled {
		note = warnStyle.Render(note)
	}
	b.WriteString(note + "\n")

	return b.String()
}

// RenderError formats a fatal run error.
func RenderError(err error, styled bool) string {
	msg := fmt.Sprintf("deploy failed: %v", err)
	if styled {
		return errorStyle.Render(msg) + "\n"
	}
	return msg + "\n"
}
