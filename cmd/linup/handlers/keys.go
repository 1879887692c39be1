package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/linup/internal/util/keygen"
)

// generateKeyPair is a factory variable for test injection.
var generateKeyPair = keygen.GenerateEd25519KeyPair

// KeysInit generates the key pair whose public half is installed on every
// created instance. An existing key is preserved unless force is set.
func KeysInit(_ context.Context, configPath string, force bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pubPath := cfg.AuthorizedKeyPath
	privPath := cfg.PrivateKeyPath()

	if !force {
		if _, err := os.Stat(pubPath); err == nil {
			return fmt.Errorf("key already exists at %s (use --force to overwrite)", pubPath)
		}
	}

	kp, err := generateKeyPair()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(privPath), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(privPath, kp.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(pubPath, kp.PublicKey, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	fmt.Printf("key pair written to %s\n", privPath)
	return nil
}
