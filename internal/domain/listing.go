package domain

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

var (
	// ErrNoEntries means a listing page carried no title entries.
	ErrNoEntries = errors.New("no title entries found")
	// ErrNoPublisher means a detail page carried no publisher.
	ErrNoPublisher = errors.New("no publisher found")
	// ErrPageLimit means pagination hit max_pages without a stop signal.
	ErrPageLimit = errors.New("page limit reached")
)

// Entry is one series on a listing page.
type Entry struct {
	Title     Title
	DetailURL string
}

// PageFetcher returns the markup behind a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}

// PageParser extracts structure from fetched markup.
type PageParser interface {
	ParseListing(pageURL string, markup []byte) ([]Entry, error)
	ParsePublisher(markup []byte) (string, error)
}
