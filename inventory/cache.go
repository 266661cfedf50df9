// Package inventory persists the transient VM inventory snapshot: one name
// per line, overwritten on every run. The snapshot is written atomically
// under a file lock so overlapping invocations never interleave partial
// writes.
package inventory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/projecteru2/corral/config"
	"github.com/projecteru2/corral/lock"
	"github.com/projecteru2/corral/lock/flock"
	"github.com/projecteru2/corral/utils"
)

// Snapshot overwrites the cache file with names, one per line.
func Snapshot(ctx context.Context, conf *config.Config, names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return lock.WithLock(ctx, flock.New(conf.CacheLock()), func() error {
		if err := utils.AtomicWriteFile(conf.CacheFile(), []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("write inventory cache: %w", err)
		}
		return nil
	})
}

// Load reads the cache back. A missing cache is an empty inventory.
func Load(ctx context.Context, conf *config.Config) ([]string, error) {
	var names []string
	err := lock.WithLock(ctx, flock.New(conf.CacheLock()), func() error {
		data, err := os.ReadFile(conf.CacheFile()) //nolint:gosec // corral-managed path
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("read inventory cache: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line == "" {
				continue
			}
			names = append(names, line)
		}
		return nil
	})
	return names, err
}
