package pipeline

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pranshuparmar/unhex/internal/proc"
	"github.com/pranshuparmar/unhex/pkg/model"
)

type LoadConfig struct {
	Path    string
	Lenient bool
	States  []model.TCPState
	Logger  logrus.FieldLogger

	// ResolveOwners looks up owning PIDs under ProcRoot. Only meaningful
	// for the live table of this host.
	ResolveOwners bool
	ProcRoot      string
}

// LoadSockets reads and decodes the socket table at cfg.Path. By default the
// first malformed row aborts the load; with Lenient set it is logged and
// skipped instead.
func LoadSockets(cfg LoadConfig) ([]model.TCPSocket, error) {
	if cfg.Path == "" {
		cfg.Path = proc.DefaultTCPTable
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("path", cfg.Path)

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open socket table")
	}
	defer f.Close()

	log.Debug("reading socket table")
	sockets, skipped, err := decode(f, cfg, log)
	if err != nil {
		return nil, errors.Wrap(err, cfg.Path)
	}
	log.WithFields(logrus.Fields{
		"rows":    len(sockets),
		"skipped": skipped,
	}).Debug("decoded socket table")

	sockets = FilterStates(sockets, cfg.States)
	if cfg.ResolveOwners {
		attachOwners(sockets, cfg.ProcRoot, log)
	}
	return sockets, nil
}

// attachOwners fills in PIDs. A failed lookup is logged and leaves the
// sockets untouched.
func attachOwners(sockets []model.TCPSocket, procRoot string, log logrus.FieldLogger) {
	if procRoot == "" {
		procRoot = proc.DefaultProcRoot
	}
	owners, err := proc.SocketOwners(procRoot)
	if err != nil {
		log.WithError(err).Warn("cannot resolve socket owners")
		return
	}
	for i := range sockets {
		// TIME_WAIT and similar sockets report inode 0 and have no owner.
		if sockets[i].Inode == "0" {
			continue
		}
		sockets[i].PIDs = owners[sockets[i].Inode]
	}
}

func decode(r io.Reader, cfg LoadConfig, log logrus.FieldLogger) ([]model.TCPSocket, int, error) {
	if !cfg.Lenient {
		sockets, err := proc.ParseTCPTable(r)
		return sockets, 0, err
	}

	var sockets []model.TCPSocket
	skipped := 0
	err := proc.ScanTCPTable(r, func(s model.TCPSocket, rowErr error) error {
		if rowErr != nil {
			skipped++
			log.WithError(rowErr).Warn("skipping malformed row")
			return nil
		}
		sockets = append(sockets, s)
		return nil
	})
	return sockets, skipped, err
}

// FilterStates keeps sockets in any of the given states, preserving order.
// An empty filter keeps everything.
func FilterStates(sockets []model.TCPSocket, states []model.TCPState) []model.TCPSocket {
	if len(states) == 0 {
		return sockets
	}
	want := make(map[model.TCPState]bool, len(states))
	for _, s := range states {
		want[s] = true
	}

	filtered := make([]model.TCPSocket, 0, len(sockets))
	for _, s := range sockets {
		if want[s.State] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
