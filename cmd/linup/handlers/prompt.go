package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/imamik/linup/internal/platform/linode"
	"github.com/imamik/linup/internal/provisioning"
)

// promptMissing fills empty deploy values interactively. Free-text fields
// get input prompts; region and type get select menus populated live from
// the provider catalogue.
func promptMissing(ctx context.Context, provider linode.Client, p *provisioning.DeployParams) error {
	var groups []*huh.Group

	if p.Label == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Instance label").
				Description("Shown in the provider console").
				Placeholder("web-01").
				Value(&p.Label).
				Validate(notEmpty("label")),
		))
	}

	if p.Region == "" {
		regions, err := provider.ListRegions(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch regions for prompt: %w", err)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("Provider datacenter location").
				Options(regionOptions(regions)...).
				Value(&p.Region),
		))
	}

	if p.Type == "" {
		types, err := provider.ListTypes(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch instance types for prompt: %w", err)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instance type").
				Options(typeOptions(types)...).
				Value(&p.Type),
		))
	}

	if p.ServerName == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Server name").
				Description("Hostname configured on the instance").
				Placeholder("host1").
				Value(&p.ServerName).
				Validate(notEmpty("server name")),
		))
	}

	if p.CustomerUser == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Customer user").
				Description("Account created by the setup scripts").
				Value(&p.CustomerUser).
				Validate(notEmpty("customer user")),
		))
	}

	if p.Domain == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Placeholder("example.com").
				Value(&p.Domain).
				Validate(notEmpty("domain")),
		))
	}

	if len(groups) == 0 {
		return nil
	}

	if err := huh.NewForm(groups...).RunWithContext(ctx); err != nil {
		return fmt.Errorf("prompt canceled: %w", err)
	}
	return nil
}

// confirmPlan shows the deploy summary and asks for confirmation.
func confirmPlan(ctx context.Context, p provisioning.DeployParams) (bool, error) {
	var ok bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Create instance %q (%s, %s, %s)?", p.Label, p.Region, p.Type, p.Image)).
			Description(fmt.Sprintf("server %s | customer %s | domain %s", p.ServerName, p.CustomerUser, p.Domain)).
			Value(&ok),
	))

	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return ok, nil
}

func regionOptions(regions []linode.Region) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(regions))
	for _, r := range regions {
		label := r.ID
		if r.Label != "" {
			label = fmt.Sprintf("%s (%s)", r.Label, r.ID)
		}
		opts = append(opts, huh.NewOption(label, r.ID))
	}
	return opts
}

func typeOptions(types []linode.InstanceType) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		label := fmt.Sprintf("%s - %d vCPU, %.0fGB RAM", t.ID, t.VCPUs, float64(t.MemoryMB)/1024)
		if t.MonthlyPrice > 0 {
			label += fmt.Sprintf(" (~$%.2f/mo)", t.MonthlyPrice)
		}
		opts = append(opts, huh.NewOption(label, t.ID))
	}
	return opts
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
