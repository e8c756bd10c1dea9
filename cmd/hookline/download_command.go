package main

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download <speechId>",
		Short: "Download a generated speech",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireSignIn(); err != nil {
				return err
			}
			if dir == "" {
				dir = ctx.config.Download.Dir
			}

			reqCtx, cancel := context.WithTimeout(cmd.Context(), ctx.config.API.Timeout)
			defer cancel()

			result, err := ctx.services.Downloader.Download(reqCtx, args[0], dir)
			if err != nil {
				log.Error("Download failed", "speech", args[0], "error", err)
				return fmt.Errorf("download failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to save into (default: the configured download directory)")
	return cmd
}
