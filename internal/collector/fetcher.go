package collector

import (
	"context"
	"net/url"
	"time"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

const requestTimeout = 60 * time.Second

// CollyFetcher fetches pages through a single shared colly collector.
type CollyFetcher struct {
	log zerolog.Logger
	c   *colly.Collector
}

var _ domain.PageFetcher = (*CollyFetcher)(nil)

func NewCollyFetcher(log zerolog.Logger) *CollyFetcher {
	c := colly.NewCollector(
		// publisher lookups must hit the network every time
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(requestTimeout)

	return &CollyFetcher{
		log: log.With().Str("module", "fetcher").Logger(),
		c:   c,
	}
}

// Fetch performs a blocking GET of rawURL with params merged into its query.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := withParams(rawURL, params)
	if err != nil {
		return nil, err
	}

	f.log.Debug().Str("url", target).Msg("visiting")

	// Clone drops callbacks, so the user agent hook goes on the copy
	cc := f.c.Clone()
	extensions.RandomUserAgent(cc)
	var body []byte
	cc.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := cc.Visit(target); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", target)
	}

	return body, nil
}

func withParams(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid url %q", rawURL)
	}
	if len(params) == 0 {
		return u.String(), nil
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
