package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the listing once and text any new series",
	Long: `Run performs one complete poll:
1. Loads the previous snapshot (empty if none is stored)
2. Walks the series listing for every configured year
3. Keeps series from the configured publishers
4. Texts the new series to every configured number
5. Stores the full current list as the new snapshot

Nothing is texted or stored when no new series are found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, _, log, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Run(cmd.Context())
		if err != nil {
			return err
		}

		log.Info().
			Int("previous", result.Previous).
			Int("current", result.Current).
			Int("added", len(result.Added)).
			Bool("snapshot_written", result.SnapshotWritten).
			Msg("Run complete")

		if n := result.FailedDeliveries(); n > 0 {
			return fmt.Errorf("%d of %d notifications failed", n, len(result.Deliveries))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
