// Package vboxmanage implements hypervisor.Hypervisor on top of the
// VBoxManage command line interface. VBoxManage is treated as a black box:
// the only contract is its text output, where every VM name appears as a
// double-quoted substring.
package vboxmanage

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/projecteru2/corral/config"
	"github.com/projecteru2/corral/hypervisor"
)

const typ = "vboxmanage"

// compile-time interface check.
var _ hypervisor.Hypervisor = (*VBoxManage)(nil)

// VBoxManage drives VirtualBox through its control binary.
type VBoxManage struct {
	conf *config.Config
	bin  string
	run  Runner
}

// New resolves the control binary and prepares the backend. A missing binary
// is a pre-flight failure naming the requirement, before any other action.
func New(conf *config.Config) (*VBoxManage, error) {
	bin, err := exec.LookPath(conf.VBoxManage)
	if err != nil {
		return nil, fmt.Errorf("required command %q not found: %w", conf.VBoxManage, err)
	}
	if err := conf.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("ensure dirs: %w", err)
	}
	return &VBoxManage{
		conf: conf,
		bin:  bin,
		run:  &execRunner{bin: bin, timeout: time.Duration(conf.TimeoutSeconds) * time.Second},
	}, nil
}

// NewWithRunner wires a custom Runner, bypassing the PATH probe. Test hook.
func NewWithRunner(conf *config.Config, run Runner) *VBoxManage {
	return &VBoxManage{conf: conf, bin: conf.VBoxManage, run: run}
}

func (v *VBoxManage) Type() string { return typ }

// Binary returns the resolved absolute path of the control binary.
func (v *VBoxManage) Binary() string { return v.bin }
