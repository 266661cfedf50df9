package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	assert.Equal(t, "/var/lib/corral", conf.RootDir)
	assert.Equal(t, "VBoxManage", conf.VBoxManage)
	assert.Equal(t, runtime.NumCPU(), conf.PoolSize)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Positive(t, conf.Log.MaxSize, "log rotation must be size-capped")
	assert.Positive(t, conf.Log.MaxBackups, "rotation keeps history instead of discarding it")
}

func TestLoadConfigMissingFile(t *testing.T) {
	conf, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().RootDir, conf.RootDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corral.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vboxmanage": "/opt/vbox/VBoxManage", "timeout_seconds": 30}`), 0o600))

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/vbox/VBoxManage", conf.VBoxManage)
	assert.Equal(t, 30, conf.TimeoutSeconds)
	assert.Equal(t, "/var/lib/corral", conf.RootDir, "unset keys keep defaults")
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corral.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	conf := &Config{PoolSize: -1, TimeoutSeconds: -5}
	conf.Normalize()
	assert.Equal(t, runtime.NumCPU(), conf.PoolSize)
	assert.Equal(t, "VBoxManage", conf.VBoxManage)
	assert.Zero(t, conf.TimeoutSeconds)
}

func TestPaths(t *testing.T) {
	conf := DefaultConfig()
	conf.RunDir = "/run/corral"
	conf.LogDir = "/var/log/corral"

	assert.Equal(t, "/run/corral/inventory.cache", conf.CacheFile())
	assert.Equal(t, "/run/corral/inventory.lock", conf.CacheLock())
	assert.Equal(t, "/var/log/corral/corral.log", conf.LogFile())
}
