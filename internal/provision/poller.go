package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"k8s.io/klog/v2"

	"github.com/jbweber/mvctl/internal/cdm"
	"github.com/jbweber/mvctl/internal/config"
)

// ErrNotExported is returned by WaitForExport when MaxAttempts is reached
// before the volume exports.
var ErrNotExported = errors.New("managed volume not exported")

// Poller waits for a managed volume to reach the Exported state.
type Poller struct {
	client VolumeClient

	// Interval is the fixed delay between checks.
	Interval time.Duration

	// MaxAttempts bounds the number of checks. Zero means no bound.
	MaxAttempts int

	// Timer replaces the real sleep. Nil uses a real timer.
	Timer backoff.Timer

	// Out receives one progress line per check that is not yet exported.
	// Nil discards progress.
	Out io.Writer
}

// NewPoller returns an unbounded Poller that checks every interval.
// A non-positive interval falls back to config.DefaultPollInterval.
func NewPoller(client VolumeClient, interval time.Duration, out io.Writer) *Poller {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	return &Poller{
		client:   client,
		Interval: interval,
		Out:      out,
	}
}

// FetchVolume resolves name to an id and returns its current descriptor.
func FetchVolume(ctx context.Context, client VolumeClient, name string) (*cdm.ManagedVolume, error) {
	id, err := client.ManagedVolumeID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up managed volume %q: %w", name, err)
	}

	vol, err := client.GetManagedVolume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get managed volume %q (%s): %w", name, id, err)
	}

	return vol, nil
}

// WaitForExport fetches the volume until its state is Exported and returns
// the exported descriptor. Lookup and fetch errors end the wait immediately.
func (p *Poller) WaitForExport(ctx context.Context, name string) (*cdm.ManagedVolume, error) {
	var b backoff.BackOff = backoff.NewConstantBackOff(p.Interval)
	switch {
	case p.MaxAttempts == 1:
		b = &backoff.StopBackOff{}
	case p.MaxAttempts > 1:
		b = backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1))
	}
	b = backoff.WithContext(b, ctx)

	var (
		vol      *cdm.ManagedVolume
		attempts int
	)

	check := func() error {
		attempts++
		v, err := FetchVolume(ctx, p.client, name)
		if err != nil {
			return backoff.Permanent(err)
		}
		vol = v

		klog.V(3).Infof("Managed volume %q check %d: state %s", name, attempts, v.State)
		if !v.IsExported() {
			return fmt.Errorf("%w: %q is in state %s", ErrNotExported, name, v.State)
		}
		return nil
	}

	notify := func(_ error, wait time.Duration) {
		if p.Out == nil {
			return
		}
		_, _ = fmt.Fprintf(p.Out, "Managed Volume is still in state %s...sleeping for %d seconds\n",
			vol.State, int(wait.Seconds()))
	}

	if err := backoff.RetryNotifyWithTimer(check, b, notify, p.Timer); err != nil {
		return nil, err
	}

	klog.V(2).Infof("Managed volume %q exported after %d check(s)", name, attempts)
	return vol, nil
}
