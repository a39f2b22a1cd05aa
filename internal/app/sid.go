package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/unhex/internal/sid"
)

const sidUsage = "Usage: sid2str <hex_sid>"

// NewSIDCommand builds the sid2str command. A canonical S-R-A argument is
// encoded back to hex; anything else is decoded as hex.
func NewSIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sid2str <hex_sid>",
		Short: "Convert a hex encoded Windows SID (e.g. from MSSQL) to S-R-A form",
		Example: `  sid2str 0x01020000000000052000000020020000
  sid2str "01 02 00 00 00 00 00 05 20 00 00 00 20 02 00 00"
  sid2str S-1-5-32-544`,
		Version: versionString(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				fmt.Fprintln(cmd.OutOrStdout(), sidUsage)
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := args[0]
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(arg)), "S-") {
				s, err := sid.Parse(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sid.EncodeString(s))
				return nil
			}

			s, err := sid.DecodeString(arg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func ExecuteSID() {
	os.Exit(run(NewSIDCommand(), os.Args[1:], os.Stdout, os.Stderr))
}
