package main

import (
	"fmt"

	"github.com/orgoj/logpipe/internal/config"
	"github.com/orgoj/logpipe/internal/logger"
	"github.com/orgoj/logpipe/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP record-ingestion service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			manager := logger.NewManager(cfg.BasePath)
			if err := manager.InitLoggers(cfg.Loggers); err != nil {
				return err
			}
			defer manager.CloseAll()

			srv := server.NewServer(server.Dependencies{
				Config:        cfg,
				LoggerManager: manager,
			})

			fmt.Printf("[INFO] Listening on %s:%d (%d loggers)\n",
				cfg.Server.Host, cfg.Server.Port, len(manager.Names()))
			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "logpipe.yaml", "configuration file")
	return cmd
}
