package config

import (
	"path/filepath"

	"github.com/projecteru2/corral/utils"
)

// EnsureDirs creates the directories the VBoxManage backend writes to.
func (c *Config) EnsureDirs() error {
	return utils.EnsureDirs(
		c.RootDir,
		c.RunDir,
		c.LogDir,
	)
}

// CacheFile is the transient inventory snapshot, one VM name per line,
// overwritten on every run.
func (c *Config) CacheFile() string { return filepath.Join(c.RunDir, "inventory.cache") }

// CacheLock guards the cache file against overlapping invocations.
func (c *Config) CacheLock() string { return filepath.Join(c.RunDir, "inventory.lock") }

// LogFile is the rotated corral log.
func (c *Config) LogFile() string { return filepath.Join(c.LogDir, "corral.log") }
