package app

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/unhex/internal/output"
	"github.com/pranshuparmar/unhex/internal/pipeline"
	"github.com/pranshuparmar/unhex/internal/proc"
	"github.com/pranshuparmar/unhex/internal/tui"
	"github.com/pranshuparmar/unhex/pkg/model"
)

type tcpOptions struct {
	file    string
	format  string
	states  []string
	lenient bool
	owners  bool
	tui     bool
	noColor bool
	verbose bool
}

// NewTCPCommand builds the tcpdecode command.
func NewTCPCommand() *cobra.Command {
	opts := tcpOptions{}

	cmd := &cobra.Command{
		Use:   "tcpdecode",
		Short: "Parse /proc/net/tcp into a human readable table",
		Long: `Decodes the kernel's IPv4 TCP socket table: local and remote addresses and
ports, connection state, owning UID and socket inode. Reads the live table by
default, or an offline dump given with --file.`,
		Example: `  tcpdecode
  tcpdecode -f saved-tcp.txt --state listen
  tcpdecode -o json | jq '.[] | select(.state == "ESTABLISHED")'`,
		Version: versionString(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTCP(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", proc.DefaultTCPTable, "path to the tcp table")
	flags.StringVarP(&opts.format, "output", "o", "table", "output format: table, styled, json or yaml")
	flags.StringSliceVar(&opts.states, "state", nil, "only show sockets in these states (repeatable)")
	flags.BoolVar(&opts.lenient, "lenient", false, "skip malformed rows with a warning instead of failing")
	flags.BoolVar(&opts.owners, "owners", false, "resolve owning PIDs from /proc (json, yaml and tui output)")
	flags.BoolVar(&opts.tui, "tui", false, "browse the decoded table interactively")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")

	return cmd
}

func runTCP(cmd *cobra.Command, opts tcpOptions) error {
	states, err := parseStates(opts.states)
	if err != nil {
		return err
	}

	render, err := renderer(opts.format)
	if err != nil {
		return err
	}

	sockets, err := pipeline.LoadSockets(pipeline.LoadConfig{
		Path:    opts.file,
		Lenient: opts.lenient,
		States:  states,
		Logger:  newLogger(cmd.ErrOrStderr(), opts.verbose),

		ResolveOwners: opts.owners,
	})
	if err != nil {
		return err
	}

	if opts.tui {
		return tui.Start(sockets, opts.file)
	}

	out := cmd.OutOrStdout()
	return render(out, sockets, !opts.noColor && isTerminal(out))
}

func parseStates(names []string) ([]model.TCPState, error) {
	var states []model.TCPState
	for _, name := range names {
		s, ok := proc.ParseStateName(name)
		if !ok {
			return nil, errors.Errorf("unknown state %q", name)
		}
		states = append(states, s)
	}
	return states, nil
}

type renderFunc func(w io.Writer, sockets []model.TCPSocket, color bool) error

func renderer(format string) (renderFunc, error) {
	switch format {
	case "table":
		return func(w io.Writer, sockets []model.TCPSocket, _ bool) error {
			return output.RenderTable(w, sockets)
		}, nil
	case "styled":
		return output.RenderStyled, nil
	case "json":
		return func(w io.Writer, sockets []model.TCPSocket, _ bool) error {
			s, err := output.ToJSON(sockets)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, s)
			return err
		}, nil
	case "yaml":
		return func(w io.Writer, sockets []model.TCPSocket, _ bool) error {
			s, err := output.ToYAML(sockets)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, s)
			return err
		}, nil
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

func ExecuteTCP() {
	os.Exit(run(NewTCPCommand(), os.Args[1:], os.Stdout, os.Stderr))
}
