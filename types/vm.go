package types

// VMState is the lifecycle state of a VM as reported by VBoxManage.
type VMState string

const (
	VMStateRunning VMState = "running"
	VMStatePaused  VMState = "paused"
	VMStateSaved   VMState = "saved"
	VMStateOff     VMState = "poweroff"
	VMStateUnknown VMState = "unknown"
)

// VMInfo is the parsed view of "showvminfo --machinereadable" for one VM.
// Only the fields corral renders are promoted; everything else stays in Raw.
type VMInfo struct {
	Name   string  `json:"name"`
	UUID   string  `json:"uuid"`
	State  VMState `json:"state"`
	OSType string  `json:"os_type"`
	CPUs   int     `json:"cpus"`
	Memory int64   `json:"memory"` // bytes

	Raw map[string]string `json:"raw,omitempty"`
}
