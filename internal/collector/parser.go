package collector

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/varoOP/comicwatch/internal/domain"
	"golang.org/x/net/html"
)

const (
	titleSelector     = ".content-title"
	itemSelector      = ".content-item"
	publisherSelector = ".publisher"
)

// Parser reads the storefront's listing and series pages.
type Parser struct{}

var _ domain.PageParser = Parser{}

// ParseListing returns the entries of a listing page in document order.
// Relative detail links are resolved against pageURL.
func (Parser) ParseListing(pageURL string, markup []byte) ([]domain.Entry, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid page url %q", pageURL)
	}

	var (
		entries []domain.Entry
		perr    error
	)
	doc.Find(titleSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := firstText(sel)
		if title == "" {
			perr = errors.Errorf("entry %d has an empty title", i)
			return false
		}

		href, ok := detailLink(sel)
		if !ok {
			perr = errors.Errorf("entry %q has no detail link", title)
			return false
		}

		link, err := base.Parse(href)
		if err != nil {
			perr = errors.Wrapf(err, "entry %q has an invalid detail link", title)
			return false
		}

		entries = append(entries, domain.Entry{Title: domain.Title(title), DetailURL: link.String()})
		return true
	})
	if perr != nil {
		return nil, perr
	}

	if len(entries) == 0 {
		return nil, domain.ErrNoEntries
	}

	return entries, nil
}

// ParsePublisher returns the publisher named on a series page.
func (Parser) ParsePublisher(markup []byte) (string, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(doc.Find(publisherSelector).First().Find("h3").First().Text())
	if name == "" {
		return "", domain.ErrNoPublisher
	}

	return name, nil
}

func parseDocument(markup []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html")
	}
	return goquery.NewDocumentFromNode(root), nil
}

// firstText returns the first non-blank text node directly under sel with
// runs of whitespace collapsed to one space. Titles never carry a newline,
// which would split them in the snapshot.
func firstText(sel *goquery.Selection) string {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				if t := collapseSpace(c.Data); t != "" {
					return t
				}
			}
		}
	}
	return collapseSpace(sel.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// detailLink looks for the series link inside the title, then around it,
// then anywhere in the enclosing item.
func detailLink(sel *goquery.Selection) (string, bool) {
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		return href, true
	}
	if href, ok := sel.Closest("a[href]").Attr("href"); ok {
		return href, true
	}
	return sel.Closest(itemSelector).Find("a[href]").First().Attr("href")
}
