//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProc builds <root>/<pid>/fd/<n> symlinks pointing at the given targets.
func fakeProc(t *testing.T, fds map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for pid, targets := range fds {
		dir := filepath.Join(root, pid, "fd")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for i, target := range targets {
			require.NoError(t, os.Symlink(target, filepath.Join(dir, string(rune('0'+i)))))
		}
	}
	return root
}

func TestSocketOwners(t *testing.T) {
	root := fakeProc(t, map[string][]string{
		"42":   {"/dev/null", "socket:[1234]", "socket:[1234]", "pipe:[99]"},
		"7":    {"socket:[1234]", "socket:[5678]"},
		"self": {"socket:[1]"},
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "uptime"), []byte("1 1"), 0o644))

	owners, err := SocketOwners(root)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{
		"1234": {7, 42},
		"5678": {7},
	}, owners)
}

func TestSocketOwnersMissingRoot(t *testing.T) {
	_, err := SocketOwners(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
