package main

import (
	"github.com/spf13/cobra"
)

func pickCmd() *cobra.Command {
	opts := &clientOptions{}
	cmd := &cobra.Command{
		Use:   "pick <id>",
		Short: "Record a pick by decrementing an item's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := opts.newDataHub()
			if err != nil {
				return err
			}
			return hub.UpdateAfterPick(cmd.Context(), args[0])
		},
	}
	opts.bind(cmd)
	return cmd
}
