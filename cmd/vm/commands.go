package vm

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actions defines the VM-facing operations.
type Actions interface {
	// Dispatch handles every lifecycle command; the command name selects
	// the hypervisor action.
	Dispatch(cmd *cobra.Command, args []string) error
	List(cmd *cobra.Command, args []string) error
	Inspect(cmd *cobra.Command, args []string) error
}

// lifecycle describes one dispatchable command.
type lifecycle struct {
	name        string
	short       string
	destructive bool
}

var lifecycles = []lifecycle{
	{name: "start", short: "Start matching VMs headless"},
	{name: "pause", short: "Pause matching running VMs"},
	{name: "resume", short: "Resume matching paused VMs"},
	{name: "reset", short: "Hard-reset matching running VMs", destructive: true},
	{name: "acpipowerbutton", short: "Send an ACPI power button event to matching VMs"},
	{name: "poweroff", short: "Hard power off matching VMs", destructive: true},
	{name: "savestate", short: "Save state and stop matching VMs"},
}

// Commands builds the lifecycle, list and inspect command set.
// Every lifecycle command takes one TARGET argument; omitting it prints
// usage and exits zero.
func Commands(h Actions) []*cobra.Command {
	var cmds []*cobra.Command
	for _, lc := range lifecycles {
		c := &cobra.Command{
			Use:   fmt.Sprintf("%s TARGET", lc.name),
			Short: lc.short,
			Args:  cobra.MaximumNArgs(1),
			RunE:  h.Dispatch,
		}
		c.Flags().Int("parallel", 1, "max concurrent invocations (1 = sequential, in inventory order)")
		if lc.destructive {
			c.Flags().Bool("yes", false, "skip the confirmation prompt for multi-VM targets")
		}
		cmds = append(cmds, c)
	}

	listCmd := &cobra.Command{
		Use:     "list TARGET",
		Aliases: []string{"ls"},
		Short:   "List VM names matching TARGET ('*' for all)",
		Args:    cobra.MaximumNArgs(1),
		RunE:    h.List,
	}
	listCmd.Flags().Bool("long", false, "tabular output with state, CPUs and memory")

	inspectCmd := &cobra.Command{
		Use:   "inspect VM",
		Short: "Show detailed VM info (JSON)",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Inspect,
	}

	return append(cmds, listCmd, inspectCmd)
}
