package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkg.jsn.cam/lorem/pkg/lorem"
	"pkg.jsn.cam/lorem/pkg/protocol"
)

func (a *app) versionCmd() *cobra.Command {
	var (
		bump string
		ops  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version, bump it, or check a server's compatibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case bump != "":
				next, err := protocol.BumpVersion(protocol.Version, bump)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, next)

			case ops:
				for _, op := range lorem.Operations() {
					fmt.Fprintln(out, op)
				}

			case a.remote != "":
				serverVersion, err := a.client().CheckVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "client %s, server %s: compatible\n", protocol.Version, serverVersion)

			default:
				fmt.Fprintln(out, protocol.Version)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bump, "bump", "", "print the next version: major, minor, patch or pre")
	cmd.Flags().BoolVar(&ops, "ops", false, "list the named word transforms")
	return cmd
}
