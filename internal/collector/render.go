package collector

import (
	"context"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

const renderTimeout = 90 * time.Second

// RenderFetcher loads pages in a headless browser so listings built by
// client-side scripts come back fully rendered. One browser is reused for
// every fetch; each fetch opens its own tab.
type RenderFetcher struct {
	log        zerolog.Logger
	browserCtx context.Context
	cancel     context.CancelFunc
}

var _ domain.PageFetcher = (*RenderFetcher)(nil)

func NewRenderFetcher(log zerolog.Logger) *RenderFetcher {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &RenderFetcher{
		log:        log.With().Str("module", "render").Logger(),
		browserCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}
}

func (f *RenderFetcher) Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := withParams(rawURL, params)
	if err != nil {
		return nil, err
	}

	f.log.Debug().Str("url", target).Msg("rendering")

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, renderTimeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var markup string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", target)
	}

	return []byte(markup), nil
}

// Close shuts the browser down.
func (f *RenderFetcher) Close() error {
	f.cancel()
	return nil
}
