package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show what a run would report without texting or storing",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, _, _, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Check(cmd.Context())
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
