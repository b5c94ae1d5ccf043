package collector

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

type Service interface {
	Collect(ctx context.Context, year string, publishers []string) (domain.TitleSet, error)
}

// Options controls how a listing is walked.
type Options struct {
	BaseURL    string
	PageParam  string
	StartPage  int
	MaxPages   int
	StopPolicy domain.StopPolicy
}

// OptionsFromConfig picks the collector settings out of cfg.
func OptionsFromConfig(cfg *domain.Config) Options {
	return Options{
		BaseURL:    cfg.BaseURL,
		PageParam:  cfg.PageParam,
		StartPage:  cfg.StartPage,
		MaxPages:   cfg.MaxPages,
		StopPolicy: cfg.StopPolicy,
	}
}

type service struct {
	log     zerolog.Logger
	fetcher domain.PageFetcher
	parser  domain.PageParser
	opts    Options
}

func NewService(log zerolog.Logger, fetcher domain.PageFetcher, parser domain.PageParser, opts Options) Service {
	if opts.PageParam == "" {
		opts.PageParam = domain.DefaultPageParam
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = domain.DefaultMaxPages
	}
	if opts.StopPolicy == "" {
		opts.StopPolicy = domain.StopPolicyAnchor
	}

	return &service{
		log:     log.With().Str("module", "collector").Logger(),
		fetcher: fetcher,
		parser:  parser,
		opts:    opts,
	}
}

// Collect walks the listing for year and returns every title whose
// publisher is in publishers.
func (s *service) Collect(ctx context.Context, year string, publishers []string) (domain.TitleSet, error) {
	stop, err := newStopper(s.opts.StopPolicy)
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]struct{}, len(publishers))
	for _, p := range publishers {
		accepted[p] = struct{}{}
	}

	titles := domain.TitleSet{}
	for page := s.opts.StartPage; page < s.opts.StartPage+s.opts.MaxPages; page++ {
		params := url.Values{}
		params.Set("search", year+"-")
		params.Set(s.opts.PageParam, strconv.Itoa(page))

		markup, err := s.fetcher.Fetch(ctx, s.opts.BaseURL, params)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch listing page %d for %s", page, year)
		}

		entries, err := s.parser.ParseListing(s.opts.BaseURL, markup)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse listing page %d for %s", page, year)
		}

		if stop.beforeFilter(entries) {
			s.log.Debug().Str("year", year).Int("page", page).Msg("breaking loop on repeated anchor title")
			return titles, nil
		}

		current, err := s.filter(ctx, entries, accepted)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to filter listing page %d for %s", page, year)
		}

		s.log.Debug().Str("year", year).Int("page", page).Strs("titles", current.Sorted()).Msg("current comics")

		if stop.afterFilter(current) {
			s.log.Debug().Str("year", year).Int("page", page).Msg("breaking loop on repeated page content")
			return titles, nil
		}

		titles.Union(current)
	}

	return nil, errors.Wrapf(domain.ErrPageLimit, "no repeated page for %s after %d pages", year, s.opts.MaxPages)
}

// filter keeps the entries whose detail page names an accepted publisher.
// Every entry costs one detail fetch; nothing is cached.
func (s *service) filter(ctx context.Context, entries []domain.Entry, accepted map[string]struct{}) (domain.TitleSet, error) {
	titles := domain.TitleSet{}
	for _, e := range entries {
		markup, err := s.fetcher.Fetch(ctx, e.DetailURL, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch series page for %q", e.Title)
		}

		publisher, err := s.parser.ParsePublisher(markup)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse series page for %q", e.Title)
		}

		if _, ok := accepted[publisher]; ok {
			titles.Add(e.Title)
		} else {
			s.log.Trace().Str("title", string(e.Title)).Str("publisher", publisher).Msg("skipping publisher")
		}
	}
	return titles, nil
}
