package main

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account and its token balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireSignIn(); err != nil {
				return err
			}

			reqCtx, cancel := context.WithTimeout(cmd.Context(), ctx.config.API.Timeout)
			defer cancel()

			user, err := ctx.services.Auth.CurrentUser(reqCtx)
			if err != nil {
				return fmt.Errorf("failed to fetch account: %w", err)
			}
			for _, line := range accountSummary(user) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func accountSummary(user *domain.User) []string {
	name := user.DisplayName()
	if user.Name != "" && user.Username != "" {
		name = fmt.Sprintf("%s (%s)", user.Name, user.Username)
	}

	lines := []string{
		"Signed in as " + name,
		fmt.Sprintf("Tokens: %s of %s remaining (%.0f%%)",
			humanize.Comma(int64(user.Tokens)), humanize.Comma(domain.TokenAllowance), user.TokenFraction()*100),
	}
	if user.IsGuest() {
		lines = append(lines, "This is a guest account.  Run 'hookline complete' to set a name and password.")
	}
	return lines
}
