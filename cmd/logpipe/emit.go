package main

import (
	"encoding/json"
	"fmt"

	"github.com/orgoj/logpipe/internal/config"
	"github.com/orgoj/logpipe/internal/logger"
	"github.com/orgoj/logpipe/internal/record"
	"github.com/spf13/cobra"
)

func newEmitCommand() *cobra.Command {
	var (
		configPath string
		loggerName string
		levelName  string
		contextRaw string
	)

	cmd := &cobra.Command{
		Use:   "emit <message>",
		Short: "Send a one-shot record through a configured logger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			opts, ok := cfg.Loggers[loggerName]
			if !ok {
				return fmt.Errorf("unknown logger '%s'", loggerName)
			}

			var context map[string]any
			if contextRaw != "" {
				if err := json.Unmarshal([]byte(contextRaw), &context); err != nil {
					return fmt.Errorf("invalid context JSON: %w", err)
				}
			}

			l, err := logger.Build(loggerName, opts, cfg.BasePath)
			if err != nil {
				return err
			}
			defer l.Close()

			level, _ := record.ParseLevel(levelName)
			return l.Log(level, args[0], context)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "logpipe.yaml", "configuration file")
	cmd.Flags().StringVarP(&loggerName, "logger", "l", "app", "logger name")
	cmd.Flags().StringVar(&levelName, "level", "error", "record level")
	cmd.Flags().StringVar(&contextRaw, "context", "", "record context as JSON")
	return cmd
}
