package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqCtx, cancel := context.WithTimeout(cmd.Context(), ctx.config.API.Timeout)
			defer cancel()

			result := ctx.services.Auth.Login(reqCtx, username, password)
			if result.NeedsPassword {
				return errors.New("this account has a password, pass it with --password")
			}
			if result.Error != nil {
				return fmt.Errorf("login failed: %w", result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", result.User.DisplayName())
			if result.User.IsGuest() {
				fmt.Fprintln(cmd.OutOrStdout(), "This is a guest account.  Run 'hookline complete' to set a name and password.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password, if the account has one")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
