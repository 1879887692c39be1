package ssh

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/imamik/linup/internal/util/retry"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
	defaultMaxRetries  = 10
	defaultRetryDelay  = 2 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// Config holds SSH client configuration.
type Config struct {
	Host string
	Port int
	User string

	// PrivateKey authenticates with a key when set.
	PrivateKey []byte

	// Password authenticates with a password when set. Both methods may
	// be offered at once; the server picks.
	Password string

	// DialTimeout bounds the TCP connection attempt.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// MaxRetries is the maximum number of connection retry attempts.
	// If zero, defaultMaxRetries is used.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	// If zero, defaultRetryDelay is used.
	RetryDelay time.Duration

	// HostKeyCallback handles host key verification. If nil,
	// ssh.InsecureIgnoreHostKey() is used: the target host is freshly
	// created and has no prior trust record, so the first connection
	// must accept its identity without prompting.
	HostKeyCallback ssh.HostKeyCallback
}

// Client executes commands on and uploads files to a remote host.
// Connections are created on demand per call.
type Client struct {
	config *Config
	signer ssh.Signer
}

// NewClient creates a new SSH client, validating the configuration and
// parsing the private key once.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if len(cfg.PrivateKey) == 0 && cfg.Password == "" {
		return nil, fmt.Errorf("config needs a private key or a password")
	}

	configCopy := *cfg
	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.DialTimeout == 0 {
		configCopy.DialTimeout = defaultDialTimeout
	}
	if configCopy.MaxRetries == 0 {
		configCopy.MaxRetries = defaultMaxRetries
	}
	if configCopy.RetryDelay == 0 {
		configCopy.RetryDelay = defaultRetryDelay
	}
	if configCopy.HostKeyCallback == nil {
		configCopy.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Trust-on-first-use for freshly created hosts
	}

	c := &Client{config: &configCopy}

	if len(configCopy.PrivateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(configCopy.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		c.signer = signer
	}

	return c, nil
}

func (c *Client) clientConfig() *ssh.ClientConfig {
	var auth []ssh.AuthMethod
	if c.signer != nil {
		auth = append(auth, ssh.PublicKeys(c.signer))
	}
	if c.config.Password != "" {
		auth = append(auth, ssh.Password(c.config.Password))
	}

	return &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            auth,
		HostKeyCallback: c.config.HostKeyCallback,
		Timeout:         c.config.DialTimeout,
	}
}

func (c *Client) addr() string {
	return fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
}

// Probe makes a single connection attempt and closes it. It carries no
// retry of its own; callers polling for reachability own the loop.
func (c *Client) Probe(_ context.Context) error {
	conn, err := ssh.Dial("tcp", c.addr(), c.clientConfig())
	if err != nil {
		return fmt.Errorf("host %s not reachable: %w", c.addr(), err)
	}
	return conn.Close()
}

// Execute runs a command on the remote host and returns its combined
// output, retrying connection establishment on failure.
func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create SSH session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("command failed on %s: %w\nCommand: %s\nOutput: %s",
			c.config.Host, err, command, string(output))
	}

	return string(output), nil
}

// Launch starts a command on the remote host without waiting for it to
// finish. The command is wrapped so it survives the closed session; the
// caller learns nothing about the remote outcome afterward, by contract.
func (c *Client) Launch(ctx context.Context, command string) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	detached := fmt.Sprintf("nohup %s > /dev/null 2>&1 < /dev/null &", command)
	if err := session.Start(detached); err != nil {
		return fmt.Errorf("failed to launch %q on %s: %w", command, c.config.Host, err)
	}

	// No Wait: the shell backgrounds the command and exits immediately.
	return session.Wait()
}

// UploadFile copies a local file to the remote path over SFTP, creating
// parent directories as needed and preserving the file mode.
func (c *Client) UploadFile(ctx context.Context, localPath, remotePath string) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ftp, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to open sftp session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = ftp.Close() }()

	return uploadOne(ftp, localPath, remotePath)
}

// UploadDir copies every regular file under localDir to remoteDir over a
// single SFTP session, mirroring the directory layout.
func (c *Client) UploadDir(ctx context.Context, localDir, remoteDir string) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ftp, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to open sftp session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = ftp.Close() }()

	return filepath.WalkDir(localDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			return err
		}
		return uploadOne(ftp, path, filepath.ToSlash(filepath.Join(remoteDir, rel)))
	})
}

func uploadOne(ftp *sftp.Client, localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	if err := ftp.MkdirAll(filepath.ToSlash(filepath.Dir(remotePath))); err != nil {
		return fmt.Errorf("failed to create remote directory for %s: %w", remotePath, err)
	}

	dst, err := ftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}

	if err := ftp.Chmod(remotePath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", remotePath, err)
	}
	return nil
}

// connect establishes the SSH connection with retry logic. Freshly booted
// instances refuse connections until sshd is up.
func (c *Client) connect(ctx context.Context) (*ssh.Client, error) {
	var client *ssh.Client

	err := retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", c.addr(), c.clientConfig())
		return dialErr
	},
		retry.WithMaxRetries(c.config.MaxRetries),
		retry.WithInitialDelay(c.config.RetryDelay),
		retry.WithMaxDelay(defaultMaxDelay),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to establish SSH connection to %s after %d retry attempts: %w",
			c.addr(), c.config.MaxRetries, err)
	}

	return client, nil
}
