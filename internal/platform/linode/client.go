package linode

import (
	"context"
)

// Status is the provider-reported instance lifecycle state.
type Status string

// Instance states this tool cares about. The provider reports more
// transient states (rebooting, migrating, ...); they are carried through
// as opaque values.
const (
	StatusProvisioning Status = "provisioning"
	StatusBooting      Status = "booting"
	StatusRunning      Status = "running"
	StatusOffline      Status = "offline"
)

// Instance is the provider-independent view of a compute instance.
type Instance struct {
	ID     string
	Label  string
	Region string
	Type   string
	Image  string
	Status Status

	// IPv4 is the public address, assigned once the instance runs.
	IPv4 string
}

// CreateOptions are the parameters for instance creation.
type CreateOptions struct {
	Label          string
	Region         string
	Type           string
	Image          string
	RootPassword   string
	AuthorizedKeys []string
}

// Region is one provider datacenter.
type Region struct {
	ID    string
	Label string
}

// InstanceType is one provider plan.
type InstanceType struct {
	ID           string
	Label        string
	VCPUs        int
	MemoryMB     int
	MonthlyPrice float32
}

// Image is one deployable OS image.
type Image struct {
	ID    string
	Label string
}

// Client is the typed provider API used by provisioning and the CLI.
// RealClient talks to Linode; MockClient serves tests.
type Client interface {
	// CreateInstance creates an instance and returns it with its
	// identifier set. A creation that yields no identifier is an error.
	CreateInstance(ctx context.Context, opts CreateOptions) (*Instance, error)

	// GetInstance reads the live instance state (status, address).
	GetInstance(ctx context.Context, id string) (*Instance, error)

	// RebootInstance reboots the instance.
	RebootInstance(ctx context.Context, id string) error

	// ListRegions returns the available datacenters.
	ListRegions(ctx context.Context) ([]Region, error)

	// ListTypes returns the available instance plans.
	ListTypes(ctx context.Context) ([]InstanceType, error)

	// ListImages returns the deployable public images.
	ListImages(ctx context.Context) ([]Image, error)
}
