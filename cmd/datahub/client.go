package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-it-bots/datahub/internal/catalog"
	"github.com/b-it-bots/datahub/internal/client"
	"github.com/b-it-bots/datahub/internal/config"
)

// clientOptions are the flags shared by every client subcommand.
type clientOptions struct {
	profilePath string
	apiInfoPath string
	verbose     bool
}

func (o *clientOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.profilePath, "profile", "", "connection profile YAML (defaults apply when omitted)")
	cmd.Flags().StringVar(&o.apiInfoPath, "api-info", "config/rest_api_info.yaml", "API info YAML")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log each dispatched request")
}

func (o *clientOptions) newDataHub() (*client.DataHub, error) {
	profile := config.DefaultProfile()
	if o.profilePath != "" {
		loaded, err := config.LoadProfile(o.profilePath)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	cat, err := catalog.Load(o.apiInfoPath)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if o.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	dispatcher := client.NewDispatcher(cat, profile, logger)
	return client.NewDataHub(dispatcher, profile), nil
}
