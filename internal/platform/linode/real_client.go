package linode

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/linode/linodego"
	"golang.org/x/oauth2"
)

// RealClient implements Client against the Linode API via linodego.
type RealClient struct {
	api *linodego.Client
}

// NewRealClient creates a client authenticated with the given API token.
func NewRealClient(token string) *RealClient {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: tokenSource},
	}

	api := linodego.NewClient(httpClient)
	api.SetUserAgent("linup")

	return &RealClient{api: &api}
}

// CreateInstance implements Client.
func (c *RealClient) CreateInstance(ctx context.Context, opts CreateOptions) (*Instance, error) {
	booted := true
	inst, err := c.api.CreateInstance(ctx, linodego.InstanceCreateOptions{
		Label:          opts.Label,
		Region:         opts.Region,
		Type:           opts.Type,
		Image:          opts.Image,
		RootPass:       opts.RootPassword,
		AuthorizedKeys: opts.AuthorizedKeys,
		Booted:         &booted,
	})
	if err != nil {
		return nil, fmt.Errorf("instance creation failed: %w", err)
	}
	if inst == nil || inst.ID == 0 {
		return nil, fmt.Errorf("instance creation returned no identifier")
	}

	return instanceFromAPI(inst), nil
}

// GetInstance implements Client.
func (c *RealClient) GetInstance(ctx context.Context, id string) (*Instance, error) {
	linodeID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	inst, err := c.api.GetInstance(ctx, linodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance %s: %w", id, err)
	}

	return instanceFromAPI(inst), nil
}

// RebootInstance implements Client.
func (c *RealClient) RebootInstance(ctx context.Context, id string) error {
	linodeID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := c.api.RebootInstance(ctx, linodeID, 0); err != nil {
		return fmt.Errorf("failed to reboot instance %s: %w", id, err)
	}
	return nil
}

// ListRegions implements Client.
func (c *RealClient) ListRegions(ctx context.Context) ([]Region, error) {
	apiRegions, err := c.api.ListRegions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	regions := make([]Region, 0, len(apiRegions))
	for _, r := range apiRegions {
		regions = append(regions, Region{ID: r.ID, Label: r.Label})
	}
	return regions, nil
}

// ListTypes implements Client.
func (c *RealClient) ListTypes(ctx context.Context) ([]InstanceType, error) {
	apiTypes, err := c.api.ListTypes(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list instance types: %w", err)
	}

	types := make([]InstanceType, 0, len(apiTypes))
	for _, t := range apiTypes {
		it := InstanceType{
			ID:       t.ID,
			Label:    t.Label,
			VCPUs:    t.VCPUs,
			MemoryMB: t.Memory,
		}
		if t.Price != nil {
			it.MonthlyPrice = t.Price.Monthly
		}
		types = append(types, it)
	}
	return types, nil
}

// ListImages implements Client.
func (c *RealClient) ListImages(ctx context.Context) ([]Image, error) {
	apiImages, err := c.api.ListImages(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var images []Image
	for _, img := range apiImages {
		if !img.IsPublic || img.Deprecated {
			continue
		}
		images = append(images, Image{ID: img.ID, Label: img.Label})
	}
	return images, nil
}

// instanceFromAPI converts a linodego instance to the domain type.
func instanceFromAPI(inst *linodego.Instance) *Instance {
	out := &Instance{
		ID:     strconv.Itoa(inst.ID),
		Label:  inst.Label,
		Region: inst.Region,
		Type:   inst.Type,
		Image:  inst.Image,
		Status: Status(inst.Status),
	}
	if len(inst.IPv4) > 0 && inst.IPv4[0] != nil {
		out.IPv4 = inst.IPv4[0].String()
	}
	return out
}

func parseID(id string) (int, error) {
	linodeID, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("invalid instance id %q: %w", id, err)
	}
	return linodeID, nil
}
