package main

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/spf13/cobra"
)

func newCompleteCommand(ctx *commandContext) *cobra.Command {
	var params domain.CompleteParams

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Turn the signed in guest account into a full account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireSignIn(); err != nil {
				return err
			}

			reqCtx, cancel := context.WithTimeout(cmd.Context(), ctx.config.API.Timeout)
			defer cancel()

			if err := ctx.services.Auth.Complete(reqCtx, params); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account completed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&params.Password, "password", "", "New password")
	cmd.Flags().StringVar(&params.Purpose, "purpose", "", "What you will use hookline for (optional)")
	cmd.Flags().StringVar(&params.Source, "source", "", "How you heard about hookline (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
