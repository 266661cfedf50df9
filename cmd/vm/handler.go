package vm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	cmdcore "github.com/projecteru2/corral/cmd/core"
	"github.com/projecteru2/corral/config"
	"github.com/projecteru2/corral/dispatch"
	"github.com/projecteru2/corral/hypervisor"
	"github.com/projecteru2/corral/target"
	"github.com/projecteru2/corral/version"
)

type Handler struct {
	cmdcore.BaseHandler
	// HyperProvider overrides hypervisor construction; nil selects the
	// VBoxManage backend. Handler tests inject a fake through it.
	HyperProvider func(*config.Config) (hypervisor.Hypervisor, error)
}

func (h Handler) hypervisor(conf *config.Config) (hypervisor.Hypervisor, error) {
	if h.HyperProvider != nil {
		return h.HyperProvider(conf)
	}
	return cmdcore.InitHypervisor(conf)
}

// initHyper is the shared init for every handler method.
func (h Handler) initHyper(cmd *cobra.Command) (context.Context, hypervisor.Hypervisor, error) {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return nil, nil, err
	}
	hyper, err := h.hypervisor(conf)
	if err != nil {
		return nil, nil, err
	}
	return ctx, hyper, nil
}

// resolveTarget fetches the inventory and resolves the TARGET argument.
func (h Handler) resolveTarget(cmd *cobra.Command, arg string) (context.Context, hypervisor.Hypervisor, *target.Spec, error) {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	hyper, err := h.hypervisor(conf)
	if err != nil {
		return nil, nil, nil, err
	}
	all, running, err := cmdcore.FetchInventory(ctx, conf, hyper)
	if err != nil {
		return nil, nil, nil, err
	}
	spec, err := target.Resolve(arg, all, running)
	if err != nil {
		return nil, nil, nil, err
	}
	return ctx, hyper, spec, nil
}

// handleMeta covers the reserved targets that do not resolve to VM names.
// Returns true when the target was consumed.
func handleMeta(ctx context.Context, cmd *cobra.Command, spec *target.Spec) (bool, error) {
	switch spec.Kind {
	case target.KindUsage:
		return true, cmd.Root().Help()
	case target.KindProgram:
		fmt.Print(version.About)
		return true, nil
	case target.KindCopyright:
		fmt.Print(version.License)
		return true, nil
	case target.KindUnsupported:
		log.WithFunc("cmd.target").Warnf(ctx,
			"target %q not supported: no inventory query distinguishes saved/off VMs", spec.Arg)
		return true, nil
	default:
		return false, nil
	}
}

// Dispatch runs the lifecycle command named by cmd against the resolved
// target set. All targets are processed; failures are summarized at the end
// and decide the exit status.
func (h Handler) Dispatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	command := cmd.Name()
	logger := log.WithFunc("cmd." + command)

	ctx, hyper, spec, err := h.resolveTarget(cmd, args[0])
	if err != nil {
		return err
	}
	if done, err := handleMeta(ctx, cmd, spec); done {
		return err
	}
	if len(spec.Names) == 0 {
		logger.Infof(ctx, "no VMs match target %q", spec.Arg)
		return nil
	}

	ok, err := h.confirmDestructive(cmd, command, len(spec.Names))
	if err != nil {
		return err
	}
	if !ok {
		logger.Infof(ctx, "aborted by user")
		return nil
	}

	parallel, _ := cmd.Flags().GetInt("parallel")
	if conf, err := h.Conf(); err == nil && parallel > conf.PoolSize {
		parallel = conf.PoolSize
	}

	results := dispatch.Run(ctx, hyper, command, spec.Names, parallel)
	for _, r := range results {
		if r.Err != nil {
			logger.Warnf(ctx, "%s %s: %v", command, r.Name, r.Err)
			continue
		}
		logger.Infof(ctx, "%s: %s", command, r.Name)
	}
	return dispatch.Summarize(command, results)
}

// List is the bulk query + filter path: one inventory fetch, filtered by the
// shared predicate, names printed unquoted one per line. It never loops
// per VM unless --long asks for detail.
func (h Handler) List(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	ctx, hyper, spec, err := h.resolveTarget(cmd, args[0])
	if err != nil {
		return err
	}
	if done, err := handleMeta(ctx, cmd, spec); done {
		return err
	}

	names := spec.Names
	if len(spec.Fragments) > 0 {
		// Fragment and file targets filter the raw list output, so a
		// fragment may also hit the UUID part of a line.
		names, err = listMatching(ctx, hyper, spec.Fragments)
		if err != nil {
			return err
		}
	}

	if long, _ := cmd.Flags().GetBool("long"); long {
		return h.listLong(ctx, hyper, names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// listMatching unions the bulk-filter results for each fragment, keeping
// first-occurrence order.
func listMatching(ctx context.Context, hyper hypervisor.Hypervisor, fragments []string) ([]string, error) {
	groups := make([][]string, 0, len(fragments))
	for _, fragment := range fragments {
		matched, err := hyper.ListMatching(ctx, fragment)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		groups = append(groups, matched)
	}
	return target.UnionOrdered(groups...), nil
}

func (h Handler) listLong(ctx context.Context, hyper hypervisor.Hypervisor, names []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATE\tCPU\tMEMORY\tOS")
	for _, name := range names {
		info, err := hyper.Inspect(ctx, name)
		if err != nil {
			log.WithFunc("cmd.list").Warnf(ctx, "inspect %s: %v", name, err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			info.Name, info.State, info.CPUs, cmdcore.FormatSize(info.Memory), info.OSType)
	}
	return w.Flush()
}

func (h Handler) Inspect(cmd *cobra.Command, args []string) error {
	ctx, hyper, err := h.initHyper(cmd)
	if err != nil {
		return err
	}

	info, err := hyper.Inspect(ctx, args[0])
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

// confirmDestructive prompts before reset/poweroff of more than one VM when
// attached to a terminal. --yes and non-interactive runs skip the prompt.
func (h Handler) confirmDestructive(cmd *cobra.Command, command string, n int) (bool, error) {
	if !isDestructive(command) || n <= 1 {
		return true, nil
	}
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}

	fmt.Fprintf(os.Stderr, "About to %s %d VMs. Continue? [y/N] ", command, n)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func isDestructive(command string) bool {
	for _, lc := range lifecycles {
		if lc.name == command {
			return lc.destructive
		}
	}
	return false
}
