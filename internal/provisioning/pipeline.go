package provisioning

import (
	"fmt"
	"time"
)

// Phase is one step of the deploy run.
type Phase interface {
	// Name identifies the phase in progress output and errors.
	Name() string

	// Run executes the phase against the shared context.
	Run(ctx *Context) error
}

// RunPhases executes all phases sequentially. The first failure aborts
// every subsequent phase.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Deploy completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
