package provisioning

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/linup/internal/platform/linode"
)

func demoParams() DeployParams {
	return DeployParams{
		Label:        "demo",
		Region:       "us-east",
		Type:         "g6-nanode-1",
		Image:        "linode/ubuntu18.04",
		ServerName:   "host1",
		CustomerUser: "customer1",
		Domain:       "example.com",
	}
}

// demoProvider returns a mock that creates instance 555 and reaches
// running on the 3rd status poll.
func demoProvider(creates, polls *int) *linode.MockClient {
	statuses := []linode.Status{
		linode.StatusProvisioning, linode.StatusBooting, linode.StatusRunning,
	}
	return &linode.MockClient{
		CreateInstanceFunc: func(_ context.Context, opts linode.CreateOptions) (*linode.Instance, error) {
			*creates++
			return &linode.Instance{
				ID:     "555",
				Label:  opts.Label,
				Region: opts.Region,
				Type:   opts.Type,
				Image:  opts.Image,
				Status: linode.StatusProvisioning,
			}, nil
		},
		GetInstanceFunc: func(_ context.Context, id string) (*linode.Instance, error) {
			i := *polls
			*polls++
			if i >= len(statuses) {
				i = len(statuses) - 1
			}
			inst := &linode.Instance{ID: id, Status: statuses[i]}
			if inst.Status == linode.StatusRunning {
				inst.IPv4 = "203.0.113.10"
			}
			return inst, nil
		},
	}
}

func TestDeploy_EndToEnd(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	transport := &fakeTransport{}
	cfg := testConfig(t)
	ctx := testContext(t, cfg, provider, transport)

	err := Deploy(ctx, demoParams())
	require.NoError(t, err)

	// One create, exactly three status polls, one reachability probe.
	assert.Equal(t, 1, creates)
	assert.Equal(t, 3, polls)
	assert.Equal(t, 1, transport.probeCalls)

	// The uploaded config carried the run-specific assignments.
	assert.Contains(t, transport.uploadedConfig, `SERVERNAME="host1";`)
	assert.Contains(t, transport.uploadedConfig, `CUSTOMERUSER="customer1";`)

	// Scripts then config were transferred.
	require.Len(t, transport.uploadedDirs, 1)
	assert.Equal(t, cfg.ScriptsDir, transport.uploadedDirs[0][0])
	assert.Equal(t, "/root/setup", transport.uploadedDirs[0][1])
	require.Len(t, transport.uploadedFiles, 1)
	assert.Equal(t, "/root/setup/setup.conf", transport.uploadedFiles[0][1])

	// The local secrets file is gone after transfer.
	_, statErr := os.Stat(transport.uploadedFiles[0][0])
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, ctx.State.SetupConfigPath)

	// The remote setup entry point was launched.
	require.Len(t, transport.launched, 1)
	assert.Equal(t, "sh /root/setup/setup.sh", transport.launched[0])

	// Run state and the password log location are reported.
	assert.Equal(t, "555", ctx.State.InstanceID)
	assert.Equal(t, "203.0.113.10", ctx.State.InstanceIP)
	assert.NotEmpty(t, ctx.Log.Path())
}

func TestDeploy_RootPasswordFlowsToCreateAndLog(t *testing.T) {
	var rootPass string
	provider := &linode.MockClient{
		CreateInstanceFunc: func(_ context.Context, opts linode.CreateOptions) (*linode.Instance, error) {
			rootPass = opts.RootPassword
			return &linode.Instance{ID: "555", Status: linode.StatusProvisioning}, nil
		},
		GetInstanceFunc: func(_ context.Context, id string) (*linode.Instance, error) {
			return &linode.Instance{ID: id, Status: linode.StatusRunning, IPv4: "203.0.113.10"}, nil
		},
	}
	ctx := testContext(t, testConfig(t), provider, &fakeTransport{})

	require.NoError(t, Deploy(ctx, demoParams()))
	require.NotEmpty(t, rootPass)

	logData, err := os.ReadFile(ctx.Log.Path())
	require.NoError(t, err)
	assert.Contains(t, string(logData), "root password: "+rootPass)
}

func TestDeploy_StatusTimeoutSkipsReachability(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	// Never leaves provisioning.
	provider.GetInstanceFunc = func(_ context.Context, id string) (*linode.Instance, error) {
		polls++
		return &linode.Instance{ID: id, Status: linode.StatusProvisioning}, nil
	}

	transport := &fakeTransport{}
	cfg := testConfig(t)
	cfg.PollBudgetSeconds = 1
	ctx := testContext(t, cfg, provider, transport)

	err := Deploy(ctx, demoParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait-running")

	// No reachability probing happens after a status timeout.
	assert.Equal(t, 0, transport.probeCalls)
	assert.Empty(t, transport.launched)
}

func TestDeploy_InvalidConfigAbortsBeforeProvisioning(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	cfg := testConfig(t)
	cfg.Token = ""
	cfg.NotifyEmail = ""
	ctx := testContext(t, cfg, provider, &fakeTransport{})

	err := Deploy(ctx, demoParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing configuration")
	assert.Contains(t, err.Error(), "token")
	assert.Contains(t, err.Error(), "notify_email")
	assert.Equal(t, 0, creates)
}

func TestDeploy_CreateFailureAbortsRun(t *testing.T) {
	var polls int
	provider := &linode.MockClient{
		CreateInstanceFunc: func(context.Context, linode.CreateOptions) (*linode.Instance, error) {
			return nil, errors.New("instance creation returned no identifier")
		},
		GetInstanceFunc: func(_ context.Context, id string) (*linode.Instance, error) {
			polls++
			return nil, errors.New("unexpected poll")
		},
	}
	ctx := testContext(t, testConfig(t), provider, &fakeTransport{})

	err := Deploy(ctx, demoParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identifier")
	assert.Equal(t, 0, polls)
}

func TestDeploy_MissingAuthorizedKeyFails(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	cfg := testConfig(t)
	cfg.AuthorizedKeyPath = cfg.AuthorizedKeyPath + ".missing"
	ctx := testContext(t, cfg, provider, &fakeTransport{})

	err := Deploy(ctx, demoParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorized key")
	assert.Equal(t, 0, creates)
}

func TestDeploy_TransferFailureRemovesLocalConfig(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	transport := &fakeTransport{uploadFileErr: errors.New("broken pipe")}
	ctx := testContext(t, testConfig(t), provider, transport)

	err := Deploy(ctx, demoParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer")

	// The deferred cleanup removed the secrets file even though the
	// transfer phase failed before its own delete step.
	require.Len(t, transport.uploadedFiles, 1)
	_, statErr := os.Stat(transport.uploadedFiles[0][0])
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, ctx.State.SetupConfigPath)
}

func TestDeploy_ForgetHostCalledWithInstanceAddress(t *testing.T) {
	var creates, polls int
	provider := demoProvider(&creates, &polls)
	ctx := testContext(t, testConfig(t), provider, &fakeTransport{})

	var forgotten []string
	ctx.ForgetHost = func(host string) error {
		forgotten = append(forgotten, host)
		return nil
	}

	require.NoError(t, Deploy(ctx, demoParams()))
	assert.Equal(t, []string{"203.0.113.10"}, forgotten)
}
