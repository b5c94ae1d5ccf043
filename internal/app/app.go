package app

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/collector"
	"github.com/varoOP/comicwatch/internal/domain"
	"github.com/varoOP/comicwatch/internal/notification"
	"github.com/varoOP/comicwatch/internal/storage"
	"github.com/varoOP/comicwatch/internal/watch"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	store               domain.SnapshotStore
	notificationService domain.NotificationService
	watchService        watch.Service
	closers             []io.Closer
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp(ctx context.Context, log zerolog.Logger, cfg *domain.Config) (*App, error) {
	a := &App{
		log:    log,
		config: cfg,
	}

	store, closer, err := storage.Open(ctx, log, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, closer)

	var fetcher domain.PageFetcher
	if cfg.Render {
		rf := collector.NewRenderFetcher(log)
		a.closers = append(a.closers, rf)
		fetcher = rf
	} else {
		fetcher = collector.NewCollyFetcher(log)
	}
	collectorService := collector.NewService(log, fetcher, collector.Parser{}, collector.OptionsFromConfig(cfg))

	var sms domain.Notifier
	if len(cfg.Numbers) > 0 {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			a.Close()
			return nil, errors.Wrap(err, "failed to load aws config")
		}
		sms = notification.NewSMSService(log, sns.NewFromConfig(awsCfg))
	} else {
		log.Warn().Msg("No recipients configured, changes will not be texted")
	}

	var discord *notification.DiscordService
	if cfg.DiscordWebhookURL != "" {
		discord = notification.NewDiscordService(log, cfg.DiscordWebhookURL, cfg.JobName)
	}
	a.notificationService = notification.NewService(log, sms, cfg.Numbers, discord)

	a.watchService = watch.NewService(log, cfg, store, collectorService, a.notificationService)

	return a, nil
}

// Run executes one full poll: collect, diff, notify, persist.
func (a *App) Run(ctx context.Context) (result *domain.RunResult, err error) {
	// Send error notification if run fails
	defer func() {
		if err != nil {
			a.ReportFailure(ctx, err)
		}
	}()

	a.log.Info().
		Strs("years", a.config.Years).
		Strs("publishers", a.config.Publishers).
		Str("stop_policy", string(a.config.StopPolicy)).
		Msg("Starting run")

	result, err = a.watchService.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("run failed: %w", err)
	}

	if n := result.FailedDeliveries(); n > 0 {
		a.log.Warn().Int("failed", n).Int("total", len(result.Deliveries)).Msg("Some notifications were not delivered")
	}

	return result, nil
}

// Check runs the poll without notifying or writing the snapshot.
func (a *App) Check(ctx context.Context) (*domain.RunResult, error) {
	result, err := a.watchService.Check(ctx)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}
	return result, nil
}

// Snapshot returns the stored titles, empty when no snapshot exists.
func (a *App) Snapshot(ctx context.Context) (domain.TitleSet, error) {
	ok, err := a.store.Exists(ctx, a.config.ObjectKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.TitleSet{}, nil
	}

	body, err := a.store.Get(ctx, a.config.ObjectKey)
	if err != nil {
		return nil, err
	}
	return domain.DecodeTitleSet(body), nil
}

// ReportFailure logs a structured failure record and sends a best-effort alert.
func (a *App) ReportFailure(ctx context.Context, err error) {
	a.log.Error().
		Stack().
		Err(err).
		Str("error_kind", fmt.Sprintf("%T", rootCause(err))).
		Msg("Run failed")

	if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
	}
}

// Close releases the store and browser resources.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
