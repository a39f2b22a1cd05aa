//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultProcRoot is where per-process fd tables are read from.
const DefaultProcRoot = "/proc"

// SocketOwners maps socket inodes to the PIDs holding a descriptor for them,
// by reading the socket:[inode] links under <procRoot>/<pid>/fd. Processes
// that vanish or deny access are skipped.
func SocketOwners(procRoot string) (map[string][]int, error) {
	procs, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}

	owners := make(map[string][]int)
	for _, p := range procs {
		if !p.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(p.Name())
		if err != nil {
			continue
		}

		fdPath := filepath.Join(procRoot, p.Name(), "fd")
		fds, err := os.ReadDir(fdPath)
		if err != nil {
			continue
		}

		seen := make(map[string]bool)
		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdPath, fd.Name()))
			if err != nil {
				continue
			}
			if !strings.HasPrefix(link, "socket:[") {
				continue
			}
			inode := strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]")
			if seen[inode] {
				continue
			}
			seen[inode] = true
			owners[inode] = append(owners[inode], pid)
		}
	}

	for _, pids := range owners {
		sort.Ints(pids)
	}
	return owners, nil
}
