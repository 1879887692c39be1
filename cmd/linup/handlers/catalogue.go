package handlers

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/imamik/linup/internal/config"
	"github.com/imamik/linup/internal/platform/linode"
)

// providerFromConfig loads the configuration and builds a provider
// client. Read-only commands only need the API token, not the full
// deploy configuration.
func providerFromConfig(path string) (*config.Config, linode.Client, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Token == "" {
		return nil, nil, fmt.Errorf("missing configuration: token (set LINODE_TOKEN or token in linup.yaml)")
	}
	return cfg, newProviderClient(cfg.Token), nil
}

// Regions lists the provider's datacenters.
func Regions(ctx context.Context, configPath string) error {
	_, provider, err := providerFromConfig(configPath)
	if err != nil {
		return err
	}

	regions, err := provider.ListRegions(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL")
	for _, r := range regions {
		fmt.Fprintf(w, "%s\t%s\n", r.ID, r.Label)
	}
	return w.Flush()
}

// Types lists the provider's instance plans.
func Types(ctx context.Context, configPath string) error {
	_, provider, err := providerFromConfig(configPath)
	if err != nil {
		return err
	}

	types, err := provider.ListTypes(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVCPUS\tRAM\tMONTHLY")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%d\t%.0fGB\t$%.2f\n", t.ID, t.VCPUs, float64(t.MemoryMB)/1024, t.MonthlyPrice)
	}
	return w.Flush()
}

// Images lists the deployable public images.
func Images(ctx context.Context, configPath string) error {
	_, provider, err := providerFromConfig(configPath)
	if err != nil {
		return err
	}

	images, err := provider.ListImages(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL")
	for _, img := range images {
		fmt.Fprintf(w, "%s\t%s\n", img.ID, img.Label)
	}
	return w.Flush()
}
