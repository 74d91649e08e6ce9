package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cargodist/scenario"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := g.logger(cmd.ErrOrStderr()); err != nil {
				return err
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := sc.Build(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d stations, cargos %v\n",
				args[0], len(sc.Stations), sc.CargoIDs())

			return nil
		},
	}
}
