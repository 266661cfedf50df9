package core

import (
	"context"
	"fmt"

	units "github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	"github.com/projecteru2/corral/config"
	"github.com/projecteru2/corral/hypervisor"
	"github.com/projecteru2/corral/hypervisor/vboxmanage"
	"github.com/projecteru2/corral/inventory"
)

// BaseHandler provides shared config access for all command handlers.
type BaseHandler struct {
	ConfProvider func() *config.Config
}

// Init returns the command context and validated config in one call.
func (h BaseHandler) Init(cmd *cobra.Command) (context.Context, *config.Config, error) {
	conf, err := h.Conf()
	if err != nil {
		return nil, nil, err
	}
	return CommandContext(cmd), conf, nil
}

// Conf validates and returns the config. All handlers call this first.
func (h BaseHandler) Conf() (*config.Config, error) {
	if h.ConfProvider == nil {
		return nil, fmt.Errorf("config provider is nil")
	}
	conf := h.ConfProvider()
	if conf == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return conf, nil
}

// CommandContext returns the command context, falling back to Background.
func CommandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// InitHypervisor probes for the control binary and builds the backend.
func InitHypervisor(conf *config.Config) (hypervisor.Hypervisor, error) {
	vb, err := vboxmanage.New(conf)
	if err != nil {
		return nil, fmt.Errorf("init hypervisor: %w", err)
	}
	return vb, nil
}

// FetchInventory queries the full and running VM lists and snapshots the
// cache file. Both lists are fetched up front: the wildcard and running
// targets need them, and the snapshot keeps the cache current even when the
// target turns out to be a fragment. A cache write failure is logged, not
// fatal — the snapshot is advisory.
func FetchInventory(ctx context.Context, conf *config.Config, hyper hypervisor.Hypervisor) (all, running []string, err error) {
	runID := uuid.New().String()[:8]
	logger := log.WithFunc("core.FetchInventory")

	all, err = hyper.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list VMs: %w", err)
	}
	running, err = hyper.ListRunning(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list running VMs: %w", err)
	}
	logger.Debugf(ctx, "run %s: inventory %d VM(s), %d running", runID, len(all), len(running))

	if err := inventory.Snapshot(ctx, conf, all); err != nil {
		logger.Warnf(ctx, "run %s: %v", runID, err)
	}
	return all, running, nil
}

// FormatSize renders a byte count for humans.
func FormatSize(bytes int64) string {
	return units.BytesSize(float64(bytes))
}
