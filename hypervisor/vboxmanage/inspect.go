package vboxmanage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/projecteru2/corral/hypervisor"
	"github.com/projecteru2/corral/types"
)

// Inspect parses "showvminfo NAME --machinereadable" into a VMInfo.
// Returns hypervisor.ErrNotFound when VBoxManage reports the VM is unknown.
func (v *VBoxManage) Inspect(ctx context.Context, name string) (*types.VMInfo, error) {
	out, err := v.run.Run(ctx, "showvminfo", name, "--machinereadable")
	if err != nil {
		if strings.Contains(err.Error(), "Could not find a registered machine") {
			return nil, fmt.Errorf("inspect %s: %w", name, hypervisor.ErrNotFound)
		}
		return nil, fmt.Errorf("inspect %s: %w", name, err)
	}
	return parseVMInfo(out), nil
}

// parseVMInfo turns machine-readable key=value lines into a VMInfo.
// Values may be bare (memory=2048) or quoted (name="DC-01").
func parseVMInfo(out string) *types.VMInfo {
	info := &types.VMInfo{State: types.VMStateUnknown, Raw: map[string]string{}}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		info.Raw[key] = value

		switch key {
		case "name":
			info.Name = value
		case "UUID":
			info.UUID = value
		case "VMState":
			info.State = normalizeState(value)
		case "ostype":
			info.OSType = value
		case "cpus":
			info.CPUs, _ = strconv.Atoi(value)
		case "memory":
			// reported in MB
			mb, _ := strconv.ParseInt(value, 10, 64)
			info.Memory = mb << 20 //nolint:mnd
		}
	}
	return info
}

// normalizeState maps the reported VMState onto the states corral
// distinguishes; anything else (aborted, starting, ...) is unknown. The
// verbatim value stays available in Raw.
func normalizeState(value string) types.VMState {
	switch s := types.VMState(value); s {
	case types.VMStateRunning, types.VMStatePaused, types.VMStateSaved, types.VMStateOff:
		return s
	default:
		return types.VMStateUnknown
	}
}
