package main

import (
	"fmt"

	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the supported environment variable overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(config.SupportedEnvVars()))
			for _, v := range config.SupportedEnvVars() {
				rows = append(rows, []string{v.Name, v.Desc})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Variable", "Description"}, rows, nil))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return configCmd
}
