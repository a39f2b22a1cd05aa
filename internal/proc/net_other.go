//go:build !linux

package proc

import "github.com/pkg/errors"

const DefaultProcRoot = "/proc"

func SocketOwners(procRoot string) (map[string][]int, error) {
	return nil, errors.New("socket owner lookup is only supported on Linux")
}
