package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the stored snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cfg, _, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		titles, err := application.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		switch format {
		case "yaml":
			out, err := yaml.Marshal(map[string]any{
				"key":    cfg.ObjectKey,
				"titles": titles.Sorted(),
			})
			if err != nil {
				return fmt.Errorf("failed to marshal snapshot: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		case "text", "":
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(titles.Sorted(), "\n"))
			return err
		default:
			return fmt.Errorf("unknown output format %q", format)
		}
	},
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "text", "output format: text or yaml")
	rootCmd.AddCommand(snapshotCmd)
}
