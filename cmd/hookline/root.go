package main

import (
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/ui/tui"
	"github.com/PizzaHomicide/hookline/internal/version"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "hookline",
		Short:         "Write and voice short video scripts from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return ctx.ensure()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info("Starting up hookline", "version", version.GetVersion(), "build_time", version.GetBuildTime())
			if err := tui.Run(ctx.config, ctx.services); err != nil {
				log.Error("Unhandled error while running TUI", "error", err)
				return err
			}
			log.Info("hookline shutting down.  Goodbye!")
			return nil
		},
	}

	rootCmd.AddCommand(newProjectsCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newWhoamiCommand(ctx))
	rootCmd.AddCommand(newCompleteCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
