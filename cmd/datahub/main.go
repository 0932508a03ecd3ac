package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "datahub",
		Short: "Team data hub server and robot client",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(serveCmd())
	root.AddCommand(locateCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(goalCmd())
	root.AddCommand(itemCmd())
	root.AddCommand(pickCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
