package main

import (
	"fmt"

	"github.com/orgoj/logpipe/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Load a configuration file and report whether it is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid! (%d loggers)\n", len(cfg.Loggers))
			return nil
		},
	}
}
