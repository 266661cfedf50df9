package others

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestVersion(t *testing.T) {
	out := captureStdout(t, func() {
		require.NoError(t, Handler{}.Version(nil, nil))
	})
	assert.Contains(t, out, "Version:")
}

func TestLicense(t *testing.T) {
	out := captureStdout(t, func() {
		require.NoError(t, Handler{}.License(nil, nil))
	})
	assert.Contains(t, out, "Apache License")
}
