package watch

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/collector"
	"github.com/varoOP/comicwatch/internal/domain"
	"github.com/varoOP/comicwatch/internal/notification"
)

type Service interface {
	// Run collects, diffs, notifies and persists.
	Run(ctx context.Context) (*domain.RunResult, error)
	// Check collects and diffs without notifying or persisting.
	Check(ctx context.Context) (*domain.RunResult, error)
}

type service struct {
	log       zerolog.Logger
	config    *domain.Config
	store     domain.SnapshotStore
	collector collector.Service
	notifier  domain.NotificationService
}

func NewService(log zerolog.Logger, config *domain.Config, store domain.SnapshotStore, collector collector.Service, notifier domain.NotificationService) Service {
	return &service{
		log:       log.With().Str("module", "watch").Logger(),
		config:    config,
		store:     store,
		collector: collector,
		notifier:  notifier,
	}
}

func (s *service) Run(ctx context.Context) (*domain.RunResult, error) {
	return s.run(ctx, false)
}

func (s *service) Check(ctx context.Context) (*domain.RunResult, error) {
	return s.run(ctx, true)
}

func (s *service) run(ctx context.Context, dryRun bool) (*domain.RunResult, error) {
	previous, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Strs("titles", previous.Sorted()).Msg("previous snapshot")

	current := domain.TitleSet{}
	for _, year := range s.config.Years {
		titles, err := s.collector.Collect(ctx, year, s.config.Publishers)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to collect %s", year)
		}
		s.log.Info().Str("year", year).Int("titles", len(titles)).Msg("collected year")
		current.Union(titles)
	}

	added := current.Difference(previous)
	result := &domain.RunResult{
		Previous: len(previous),
		Current:  len(current),
		Added:    added.Sorted(),
		DryRun:   dryRun,
	}

	if len(added) == 0 {
		s.log.Info().Int("titles", len(current)).Msg("No new titles")
		return result, nil
	}

	result.Message = notification.FormatChanges(s.config.JobName, strings.Join(result.Added, "\n"))
	s.log.Info().Strs("added", result.Added).Msg("Found changes")

	if dryRun {
		return result, nil
	}

	result.Deliveries = s.notifier.SendChanges(ctx, result.Message)

	if err := s.store.Put(ctx, s.config.ObjectKey, current.Encode()); err != nil {
		return result, errors.Wrap(err, "failed to store snapshot")
	}
	result.SnapshotWritten = true

	s.log.Info().
		Int("added", len(result.Added)).
		Int("deliveries", len(result.Deliveries)).
		Int("failed_deliveries", result.FailedDeliveries()).
		Msg("Stored new snapshot")

	return result, nil
}

// loadSnapshot returns the previous title set, empty when no snapshot exists.
func (s *service) loadSnapshot(ctx context.Context) (domain.TitleSet, error) {
	ok, err := s.store.Exists(ctx, s.config.ObjectKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check snapshot")
	}
	if !ok {
		s.log.Info().Str("key", s.config.ObjectKey).Msg("No previous snapshot")
		return domain.TitleSet{}, nil
	}

	body, err := s.store.Get(ctx, s.config.ObjectKey)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return domain.TitleSet{}, nil
		}
		return nil, errors.Wrap(err, "failed to read snapshot")
	}

	return domain.DecodeTitleSet(body), nil
}
