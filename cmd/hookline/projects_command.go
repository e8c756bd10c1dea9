package main

import (
	"context"
	"fmt"
	"time"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/format"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const nameColumnWidth = 40

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List your projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireSignIn(); err != nil {
				return err
			}

			reqCtx, cancel := context.WithTimeout(cmd.Context(), ctx.config.API.Timeout)
			defer cancel()

			projectService := ctx.services.Projects
			if err := projectService.LoadProjects(reqCtx); err != nil {
				return fmt.Errorf("failed to load projects: %w", err)
			}

			projects := projectService.Filter(query)
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			headers, rows, aligns := projectRows(projects, time.Now())
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "Only list projects whose name or script matches")
	return cmd
}

func projectRows(projects []*domain.Project, now time.Time) ([]string, [][]string, []columnAlignment) {
	headers := []string{"ID", "Name", "Created", "Speech"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID,
			format.Truncate(p.Name, nameColumnWidth),
			humanize.RelTime(time.Unix(p.Timestamp, 0), now, "ago", "from now"),
			speechSummary(p, now),
		})
	}
	return headers, rows, aligns
}

func speechSummary(p *domain.Project, now time.Time) string {
	switch {
	case !p.HasSpeech():
		return "-"
	case p.Speech.Expired(now):
		return "expired"
	case p.Speech.Expires > 0:
		return fmt.Sprintf("%s, expires in %s", p.Speech.ID, format.ExpiresIn(p.Speech.Expires, now))
	default:
		return p.Speech.ID
	}
}
