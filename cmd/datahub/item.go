package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func itemCmd() *cobra.Command {
	opts := &clientOptions{}
	cmd := &cobra.Command{
		Use:   "item <id>",
		Short: "Fetch one inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := opts.newDataHub()
			if err != nil {
				return err
			}
			item, err := hub.ItemInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(item, "", "  ")
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
