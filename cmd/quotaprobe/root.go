package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quotaprobe/internal/logging"
	"quotaprobe/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool
	var verboseFlag bool
	var noColorFlag bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "quotaprobe",
		Short:         "Display Antigravity model quota usage",
		Long:          "quotaprobe finds the local Antigravity language server, authenticates with credentials recovered from its launch arguments, and prints remaining model quota.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if verboseFlag {
				cfg.Logging.Level = "debug"
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			report, err := pipeline.New(cfg, logger).Run(cmd.Context())
			if err != nil {
				logger.Error("pipeline failed", logging.Args(
					logging.String(logging.FieldStage, pipeline.StageName(err)),
					logging.Error(err),
				)...)
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, report)
			}
			renderReport(cmd.OutOrStdout(), report, useColor(noColorFlag))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the report as JSON instead of a table")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func useColor(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
