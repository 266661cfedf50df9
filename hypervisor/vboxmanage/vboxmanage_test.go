package vboxmanage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecteru2/corral/config"
	"github.com/projecteru2/corral/hypervisor"
	"github.com/projecteru2/corral/types"
)

func TestMain(m *testing.M) {
	_ = log.SetupLog(context.Background(), &coretypes.ServerLogConfig{Level: "warn"}, "")
	m.Run()
}

const listVMsOutput = `"DC-01" {5a2f9d6e-9410-4d0a-b3cc-e53f7a381bcd}
"DC-02" {77d8e9c4-1f22-4fd1-bd91-2bd1f07c55aa}
"WEB-01" {c0a6fbc2-0eab-43e9-94d0-7f0a5e66b0de}
`

// fakeRunner records invocations and replies from a canned table keyed by
// the first two arguments.
type fakeRunner struct {
	calls   [][]string
	replies map[string]string
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args[:2], " ")
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.replies[key], nil
}

func newBackend(run *fakeRunner) *VBoxManage {
	conf := config.DefaultConfig()
	return NewWithRunner(conf, run)
}

func TestListExtractsQuotedNames(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{"list vms": listVMsOutput}}
	vb := newBackend(run)

	names, err := vb.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"DC-01", "DC-02", "WEB-01"}, names)
	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{"list", "vms"}, run.calls[0])
}

func TestListRunning(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{"list runningvms": `"WEB-01" {c0a6fbc2}` + "\n"}}
	vb := newBackend(run)

	names, err := vb.ListRunning(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"WEB-01"}, names)
}

func TestListEmptyOutput(t *testing.T) {
	// No validation of the CLI output format: garbage or empty output
	// yields an empty inventory, not an error.
	run := &fakeRunner{replies: map[string]string{"list vms": "no quoted names here\n"}}
	vb := newBackend(run)

	names, err := vb.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListMatchingFiltersLines(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{"list vms": listVMsOutput}}
	vb := newBackend(run)

	names, err := vb.ListMatching(context.Background(), "DC")
	require.NoError(t, err)
	assert.Equal(t, []string{"DC-01", "DC-02"}, names)
	require.Len(t, run.calls, 1, "list is one bulk query, never a per-VM loop")
}

func TestListMatchingHitsUUIDText(t *testing.T) {
	// Filtering happens on the raw output line, so a fragment can match
	// inside the UUID portion as well.
	run := &fakeRunner{replies: map[string]string{"list vms": listVMsOutput}}
	vb := newBackend(run)

	names, err := vb.ListMatching(context.Background(), "77d8e9c4")
	require.NoError(t, err)
	assert.Equal(t, []string{"DC-02"}, names)
}

func TestStartHeadless(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{}}
	vb := newBackend(run)

	require.NoError(t, vb.Start(context.Background(), "DC-01"))
	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{"startvm", "DC-01", "--type", "headless"}, run.calls[0])
}

func TestControlActions(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{}}
	vb := newBackend(run)

	for _, action := range hypervisor.ControlActions {
		require.NoError(t, vb.Control(context.Background(), "WEB-01", action))
	}
	require.Len(t, run.calls, len(hypervisor.ControlActions))
	assert.Equal(t, []string{"controlvm", "WEB-01", "pause"}, run.calls[0])
	assert.Equal(t, []string{"controlvm", "WEB-01", "savestate"}, run.calls[len(run.calls)-1])
}

func TestControlErrorWrapsName(t *testing.T) {
	run := &fakeRunner{errs: map[string]error{"controlvm WEB-01": assert.AnError}}
	vb := newBackend(run)

	err := vb.Control(context.Background(), "WEB-01", hypervisor.ActionPoweroff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEB-01")
	assert.ErrorIs(t, err, assert.AnError)
}

const showVMInfoOutput = `name="DC-01"
UUID="5a2f9d6e-9410-4d0a-b3cc-e53f7a381bcd"
ostype="Ubuntu (64-bit)"
memory=2048
cpus=2
VMState="running"
VMStateChangeTime="2026-08-20T09:14:02.000000000"
`

func TestInspectParsesMachineReadable(t *testing.T) {
	run := &fakeRunner{replies: map[string]string{"showvminfo DC-01": showVMInfoOutput}}
	vb := newBackend(run)

	info, err := vb.Inspect(context.Background(), "DC-01")
	require.NoError(t, err)
	assert.Equal(t, "DC-01", info.Name)
	assert.Equal(t, "5a2f9d6e-9410-4d0a-b3cc-e53f7a381bcd", info.UUID)
	assert.Equal(t, types.VMStateRunning, info.State)
	assert.Equal(t, 2, info.CPUs)
	assert.Equal(t, int64(2048)<<20, info.Memory)
	assert.Equal(t, "Ubuntu (64-bit)", info.OSType)
	assert.Equal(t, "2026-08-20T09:14:02.000000000", info.Raw["VMStateChangeTime"])
}

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		value string
		want  types.VMState
	}{
		{"running", types.VMStateRunning},
		{"paused", types.VMStatePaused},
		{"saved", types.VMStateSaved},
		{"poweroff", types.VMStateOff},
		{"aborted", types.VMStateUnknown},
		{"", types.VMStateUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeState(tc.value))
		})
	}
}

func TestInspectKeepsRawStateValue(t *testing.T) {
	out := "name=\"DC-01\"\nVMState=\"aborted\"\n"
	run := &fakeRunner{replies: map[string]string{"showvminfo DC-01": out}}
	vb := newBackend(run)

	info, err := vb.Inspect(context.Background(), "DC-01")
	require.NoError(t, err)
	assert.Equal(t, types.VMStateUnknown, info.State)
	assert.Equal(t, "aborted", info.Raw["VMState"])
}

var errNotRegistered = errors.New("VBoxManage: error: Could not find a registered machine named 'ghost'")

func TestInspectNotFound(t *testing.T) {
	run := &fakeRunner{errs: map[string]error{
		"showvminfo ghost": errNotRegistered,
	}}
	vb := newBackend(run)

	_, err := vb.Inspect(context.Background(), "ghost")
	assert.ErrorIs(t, err, hypervisor.ErrNotFound)
}
