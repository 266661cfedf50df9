package vboxmanage

import (
	"context"
	"regexp"
	"strings"

	"github.com/projecteru2/corral/target"
)

// quotedName captures the first double-quoted substring of a line.
// "VBoxManage list vms" emits one VM per line: "NAME" {UUID}.
var quotedName = regexp.MustCompile(`"([^"]*)"`)

// List returns every VM name known to VirtualBox, in emission order.
// Names are not deduplicated; an unexpected output format yields an empty
// list rather than an error, matching the loose contract of the CLI output.
func (v *VBoxManage) List(ctx context.Context) ([]string, error) {
	out, err := v.run.Run(ctx, "list", "vms")
	if err != nil {
		return nil, err
	}
	return extractNames(out), nil
}

// ListRunning returns the currently running subset.
func (v *VBoxManage) ListRunning(ctx context.Context) ([]string, error) {
	out, err := v.run.Run(ctx, "list", "runningvms")
	if err != nil {
		return nil, err
	}
	return extractNames(out), nil
}

// ListMatching performs one bulk "list vms" query and keeps the names whose
// raw output line contains fragment. This is a single query + filter, never
// a per-VM loop.
func (v *VBoxManage) ListMatching(ctx context.Context, fragment string) ([]string, error) {
	out, err := v.run.Run(ctx, "list", "vms")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if !target.Match(line, fragment) {
			continue
		}
		names = append(names, extractNames(line)...)
	}
	return names, nil
}

// extractNames pulls every double-quoted substring out of CLI output,
// quotes stripped, order preserved.
func extractNames(out string) []string {
	var names []string
	for _, m := range quotedName.FindAllStringSubmatch(out, -1) {
		names = append(names, m[1])
	}
	return names
}
