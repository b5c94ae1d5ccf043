package domain

import (
	"sort"
	"strings"
)

// Title is a series title exactly as rendered on the listing page,
// e.g. "Batman (2016-)". It is compared as an opaque string.
type Title string

// TitleSet is an unordered, deduplicated set of titles.
type TitleSet map[Title]struct{}

func NewTitleSet(titles ...Title) TitleSet {
	s := make(TitleSet, len(titles))
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

func (s TitleSet) Add(t Title) {
	s[t] = struct{}{}
}

func (s TitleSet) Has(t Title) bool {
	_, ok := s[t]
	return ok
}

// Union adds every title of other to s.
func (s TitleSet) Union(other TitleSet) {
	for t := range other {
		s.Add(t)
	}
}

// Difference returns the titles in s that are absent from other.
func (s TitleSet) Difference(other TitleSet) TitleSet {
	d := TitleSet{}
	for t := range s {
		if !other.Has(t) {
			d.Add(t)
		}
	}
	return d
}

func (s TitleSet) Equal(other TitleSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Sorted returns the titles in lexical order.
func (s TitleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// Encode renders the set as newline-joined text in lexical order.
func (s TitleSet) Encode() []byte {
	return []byte(strings.Join(s.Sorted(), "\n"))
}

// DecodeTitleSet parses a newline-delimited snapshot body. Blank lines are
// ignored so an empty object decodes to an empty set.
func DecodeTitleSet(body []byte) TitleSet {
	s := TitleSet{}
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.Add(Title(line))
	}
	return s
}
