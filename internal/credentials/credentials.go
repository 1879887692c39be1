package credentials

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// alphabet is the character set for generated secrets. Alphanumeric only,
// so secrets pass through shell-quoted config lines and provider password
// fields without escaping.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SecretLength is the length of every generated secret.
const SecretLength = 24

// Log is the append-only password log for one provisioning run. Every
// generated credential is recorded here before it is used anywhere else,
// so no secret exists without an audit trail.
type Log struct {
	path string
	f    *os.File
}

// NewLog creates a fresh password log in dir, named after the current
// time so reruns never collide. The file is owner-readable only.
func NewLog(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("passwords-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create password log: %w", err)
	}

	return &Log{path: path, f: f}, nil
}

// Append records one credential as a "label: secret" line. Entries appear
// in call order.
func (l *Log) Append(label, secret string) error {
	if _, err := fmt.Fprintf(l.f, "%s: %s\n", label, secret); err != nil {
		return fmt.Errorf("failed to append to password log: %w", err)
	}
	// Flush each entry so the log survives an aborted run.
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync password log: %w", err)
	}
	return nil
}

// Path returns the log file location, reported to the operator at the end
// of a run.
func (l *Log) Path() string {
	return l.path
}

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}

// Generator produces random secrets and records each one in the password
// log before returning it.
type Generator struct {
	log *Log

	// entropy is the randomness source, crypto/rand by default.
	// Replaceable in tests.
	entropy io.Reader
}

// NewGenerator creates a Generator writing to log.
func NewGenerator(log *Log) *Generator {
	return &Generator{log: log, entropy: rand.Reader}
}

// Generate produces a new secret for label and appends it to the password
// log. An unreadable entropy source is an explicit error; Generate never
// returns an empty secret.
func (g *Generator) Generate(label string) (string, error) {
	buf := make([]byte, SecretLength)
	if _, err := io.ReadFull(g.entropy, buf); err != nil {
		return "", fmt.Errorf("entropy source unavailable for %q: %w", label, err)
	}

	secret := make([]byte, SecretLength)
	for i, b := range buf {
		secret[i] = alphabet[int(b)%len(alphabet)]
	}

	if err := g.log.Append(label, string(secret)); err != nil {
		return "", err
	}
	return string(secret), nil
}
