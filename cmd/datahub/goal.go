package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func goalCmd() *cobra.Command {
	opts := &clientOptions{}
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Fetch the open orders as order id -> item id -> quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := opts.newDataHub()
			if err != nil {
				return err
			}
			goal, err := hub.Goal(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(goal, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}
