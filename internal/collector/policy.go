package collector

import (
	"fmt"

	"github.com/varoOP/comicwatch/internal/domain"
)

// stopper tracks one year's pagination and reports when the listing has
// started repeating itself.
type stopper interface {
	// beforeFilter is consulted with the raw entries before any publisher
	// lookup for the page.
	beforeFilter(entries []domain.Entry) bool
	// afterFilter is consulted with the page's filtered titles.
	afterFilter(titles domain.TitleSet) bool
}

func newStopper(policy domain.StopPolicy) (stopper, error) {
	switch policy {
	case domain.StopPolicyAnchor:
		return &anchorStopper{}, nil
	case domain.StopPolicyContent:
		return &contentStopper{}, nil
	default:
		return nil, fmt.Errorf("unknown stop policy %q", policy)
	}
}

type anchorStopper struct {
	last domain.Title
	seen bool
}

func (s *anchorStopper) beforeFilter(entries []domain.Entry) bool {
	anchor := entries[0].Title
	if s.seen && anchor == s.last {
		return true
	}
	s.last, s.seen = anchor, true
	return false
}

func (s *anchorStopper) afterFilter(domain.TitleSet) bool { return false }

// contentStopper starts from an empty previous set, so a first page with no
// matching publisher ends the year immediately.
type contentStopper struct {
	last domain.TitleSet
}

func (s *contentStopper) beforeFilter([]domain.Entry) bool { return false }

func (s *contentStopper) afterFilter(titles domain.TitleSet) bool {
	if titles.Equal(s.last) {
		return true
	}
	s.last = titles
	return false
}
