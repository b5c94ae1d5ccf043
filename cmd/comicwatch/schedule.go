package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/comicwatch/internal/domain"
)

type poller interface {
	Run(ctx context.Context) (*domain.RunResult, error)
}

// pollJob wraps one scheduled poll. Run failures are already logged and
// alerted by the app, so only the outcome of a finished run is logged here.
func pollJob(ctx context.Context, p poller, log zerolog.Logger) func() {
	return func() {
		result, err := p.Run(ctx)
		if err != nil {
			return
		}

		event := log.Info()
		if result.FailedDeliveries() > 0 {
			event = log.Warn()
		}
		event.
			Int("added", len(result.Added)).
			Int("deliveries", len(result.Deliveries)).
			Int("failed_deliveries", result.FailedDeliveries()).
			Bool("snapshot_written", result.SnapshotWritten).
			Msg("Scheduled poll complete")
	}
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the poll on a cron schedule until interrupted",
	Long: `Schedule keeps the process alive and runs a poll on every tick of the
cron expression (default once a day). A tick is skipped while the previous
poll is still running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, cfg, log, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer application.Close()

		c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		job := pollJob(ctx, application, log)

		if _, err := c.AddFunc(cfg.CronSpec, job); err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", cfg.CronSpec, err)
		}

		if now, _ := cmd.Flags().GetBool("now"); now {
			job()
		}

		log.Info().Str("cron", cfg.CronSpec).Msg("Scheduler started")
		c.Start()

		<-ctx.Done()
		log.Info().Msg("Shutting down scheduler")
		<-c.Stop().Done()

		return nil
	},
}

func init() {
	scheduleCmd.Flags().String("cron", "", "cron expression for polls (default \"0 9 * * *\")")
	scheduleCmd.Flags().Bool("now", false, "run one poll immediately before waiting for the schedule")
	viper.BindPFlag("cron", scheduleCmd.Flags().Lookup("cron"))
	rootCmd.AddCommand(scheduleCmd)
}
