package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/linup/internal/platform/linode"
)

// waitUntil polls probe at the context's interval until it reports
// satisfied, the budget elapses, or the probe fails hard.
//
// The deadline is computed once at entry. The sequence is probe, check
// deadline, sleep: the loop fails the instant the deadline has passed
// rather than sleeping one more interval, so a timeout surfaces no
// earlier than the budget and no later than budget plus one interval.
func (ctx *Context) waitUntil(what string, probe func() (bool, error)) error {
	budget := ctx.Config.PollBudget()
	deadline := time.Now().Add(budget)

	for {
		ok, err := probe()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		ctx.Observer.Tick()

		if !time.Now().Before(deadline) {
			return fmt.Errorf("timed out waiting for %s after %s", what, budget)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ctx.PollInterval):
		}
	}
}

// WaitForStatus polls the instance until the provider reports the target
// status. Provider read errors abort immediately; only a non-matching
// status keeps the loop going. On success the freshly read instance is
// returned so callers can pick up fields assigned along the way (the
// public address in particular).
func (ctx *Context) WaitForStatus(id string, target linode.Status) (*linode.Instance, error) {
	var last *linode.Instance

	err := ctx.waitUntil(
		fmt.Sprintf("instance %s to reach status %q", id, target),
		func() (bool, error) {
			inst, err := ctx.Provider.GetInstance(ctx, id)
			if err != nil {
				return false, err
			}
			last = inst
			return inst.Status == target, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return last, nil
}

// WaitForReachable probes the transport until one connection attempt
// succeeds. Connection failures are the expected state while the host
// boots, so they keep the loop going instead of aborting it.
func (ctx *Context) WaitForReachable(t Transport, host string) error {
	return ctx.waitUntil(
		fmt.Sprintf("host %s to accept SSH connections", host),
		func() (bool, error) {
			return t.Probe(ctx) == nil, nil
		},
	)
}
