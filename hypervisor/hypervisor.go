package hypervisor

import (
	"context"
	"errors"

	"github.com/projecteru2/corral/types"
)

// ErrNotFound is returned when a VM name is not known to the hypervisor.
var ErrNotFound = errors.New("VM not found")

// Action is a controlvm lifecycle action.
type Action string

const (
	ActionPause           Action = "pause"
	ActionResume          Action = "resume"
	ActionReset           Action = "reset"
	ActionACPIPowerButton Action = "acpipowerbutton"
	ActionPoweroff        Action = "poweroff"
	ActionSavestate       Action = "savestate"
)

// ControlActions enumerates the supported controlvm actions in CLI order.
var ControlActions = []Action{
	ActionPause,
	ActionResume,
	ActionReset,
	ActionACPIPowerButton,
	ActionPoweroff,
	ActionSavestate,
}

// IsControlAction reports whether name is a supported controlvm action.
func IsControlAction(name string) bool {
	for _, a := range ControlActions {
		if string(a) == name {
			return true
		}
	}
	return false
}

// Hypervisor drives the lifecycle of VMs through an external control binary.
// Each backend (e.g. VBoxManage) implements this interface.
type Hypervisor interface {
	Type() string

	// List returns all VM names in the order the backend emits them,
	// without deduplication. ListRunning returns the running subset.
	List(ctx context.Context) ([]string, error)
	ListRunning(ctx context.Context) ([]string, error)
	// ListMatching performs one bulk list query and returns the names whose
	// raw output line contains fragment. Used by the list command so that
	// listing never turns into a per-VM loop.
	ListMatching(ctx context.Context, fragment string) ([]string, error)

	// Start boots the named VM headless.
	Start(ctx context.Context, name string) error
	// Control applies a lifecycle action to a running VM.
	Control(ctx context.Context, name string, action Action) error
	// Inspect returns the parsed machine-readable info for one VM.
	Inspect(ctx context.Context, name string) (*types.VMInfo, error)
}
