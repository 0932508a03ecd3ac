package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func locateCmd() *cobra.Command {
	opts := &clientOptions{}
	cmd := &cobra.Command{
		Use:   "locate <x> <y>",
		Short: "Report the robot's current position to the hub",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %q", args[0])
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %q", args[1])
			}

			hub, err := opts.newDataHub()
			if err != nil {
				return err
			}
			return hub.UpdateLocation(cmd.Context(), x, y)
		},
	}
	opts.bind(cmd)
	return cmd
}
