package main

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	opts := &clientOptions{}
	var x, y float64
	cmd := &cobra.Command{
		Use:   "status <message>",
		Short: "Report a status message to the hub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := opts.newDataHub()
			if err != nil {
				return err
			}
			return hub.UpdateStatus(cmd.Context(), args[0], x, y)
		},
	}
	opts.bind(cmd)
	cmd.Flags().Float64Var(&x, "x", 0, "x position the status was issued from")
	cmd.Flags().Float64Var(&y, "y", 0, "y position the status was issued from")
	return cmd
}
