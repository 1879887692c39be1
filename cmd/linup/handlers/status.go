package handlers

import (
	"context"
	"fmt"
)

// Status reads an instance and prints either the full state or, with a
// field selector, a single scalar value suitable for scripting.
func Status(ctx context.Context, configPath, id, field string) error {
	_, provider, err := providerFromConfig(configPath)
	if err != nil {
		return err
	}

	inst, err := provider.GetInstance(ctx, id)
	if err != nil {
		return err
	}

	switch field {
	case "":
		fmt.Printf("id:     %s\n", inst.ID)
		fmt.Printf("label:  %s\n", inst.Label)
		fmt.Printf("status: %s\n", inst.Status)
		fmt.Printf("ip:     %s\n", inst.IPv4)
		fmt.Printf("region: %s\n", inst.Region)
		fmt.Printf("type:   %s\n", inst.Type)
		fmt.Printf("image:  %s\n", inst.Image)
	case "status":
		fmt.Println(inst.Status)
	case "ip":
		fmt.Println(inst.IPv4)
	case "label":
		fmt.Println(inst.Label)
	case "region":
		fmt.Println(inst.Region)
	case "type":
		fmt.Println(inst.Type)
	case "image":
		fmt.Println(inst.Image)
	default:
		return fmt.Errorf("unknown field %q (expected status, ip, label, region, type or image)", field)
	}
	return nil
}

// Reboot reboots an instance.
func Reboot(ctx context.Context, configPath, id string) error {
	_, provider, err := providerFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := provider.RebootInstance(ctx, id); err != nil {
		return err
	}

	fmt.Printf("instance %s rebooting\n", id)
	return nil
}
