package main

import (
	"github.com/orgoj/logpipe/internal/version"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "logpipe",
		Short:         "Configuration-driven logging pipelines",
		Long:          "logpipe assembles logging pipelines from a YAML configuration and runs them as a CLI or as an HTTP ingestion service.",
		Version:       version.VersionInfo(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCommand())
	root.AddCommand(newEmitCommand())
	root.AddCommand(newServeCommand())
	return root
}
