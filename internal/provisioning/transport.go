package provisioning

import (
	"context"
	"fmt"
	"os"

	platformssh "github.com/imamik/linup/internal/platform/ssh"
)

// Transport moves files to and runs commands on the new instance. The
// real implementation speaks SSH/SFTP; tests substitute a fake.
type Transport interface {
	// Probe makes a single reachability attempt.
	Probe(ctx context.Context) error

	// UploadFile copies one local file to the remote path.
	UploadFile(ctx context.Context, localPath, remotePath string) error

	// UploadDir mirrors a local directory to the remote path.
	UploadDir(ctx context.Context, localDir, remoteDir string) error

	// Launch starts a remote command without awaiting completion.
	// Remote failures after launch are invisible to this tool by
	// contract.
	Launch(ctx context.Context, command string) error
}

// TransportFactory builds a Transport once the instance address and root
// password are known.
type TransportFactory func(host, user, rootPassword string) (Transport, error)

// NewSSHTransportFactory returns the production factory. The private key
// at privateKeyPath is offered when it exists; the generated root
// password serves as fallback auth.
func NewSSHTransportFactory(privateKeyPath string) TransportFactory {
	return func(host, user, rootPassword string) (Transport, error) {
		cfg := &platformssh.Config{
			Host:     host,
			User:     user,
			Password: rootPassword,
		}

		if privateKeyPath != "" {
			key, err := os.ReadFile(privateKeyPath)
			switch {
			case err == nil:
				cfg.PrivateKey = key
			case !os.IsNotExist(err):
				return nil, fmt.Errorf("failed to read private key: %w", err)
			}
		}

		client, err := platformssh.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
