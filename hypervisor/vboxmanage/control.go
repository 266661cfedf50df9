package vboxmanage

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/corral/hypervisor"
)

// Start boots the named VM headless via "startvm NAME --type headless".
func (v *VBoxManage) Start(ctx context.Context, name string) error {
	logger := log.WithFunc("vboxmanage.Start")
	logger.Debugf(ctx, "startvm %s", name)
	if _, err := v.run.Run(ctx, "startvm", name, "--type", "headless"); err != nil {
		return fmt.Errorf("start VM %s: %w", name, err)
	}
	return nil
}

// Control applies a lifecycle action via "controlvm NAME ACTION".
func (v *VBoxManage) Control(ctx context.Context, name string, action hypervisor.Action) error {
	logger := log.WithFunc("vboxmanage.Control")
	logger.Debugf(ctx, "controlvm %s %s", name, action)
	if _, err := v.run.Run(ctx, "controlvm", name, string(action)); err != nil {
		return fmt.Errorf("%s VM %s: %w", action, name, err)
	}
	return nil
}
