package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// listingPage renders a listing page whose entries link to /series/<slug>.
func listingPage(titles ...string) []byte {
	var b strings.Builder
	b.WriteString(`<html><body><ul class="list-content">`)
	for _, t := range titles {
		fmt.Fprintf(&b, `<li class="content-item"><a class="content-details" href="/series/%s"><h5 class="content-title">%s</h5></a></li>`, slug(t), t)
	}
	b.WriteString(`</ul></body></html>`)
	return []byte(b.String())
}

func seriesPage(publisher string) []byte {
	return []byte(`<html><body><div class="credits"><div class="publisher"><h3 class="name"> ` + publisher + ` </h3></div></div></body></html>`)
}

func slug(title string) string {
	r := strings.NewReplacer(" ", "-", "(", "", ")", "", ":", "")
	return strings.ToLower(r.Replace(title))
}

// fakeFetcher serves listing pages by page index and series pages by path.
type fakeFetcher struct {
	listings   map[string][]byte
	series     map[string][]byte
	pageParam  string
	requests   []string
	detailHits int
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if params != nil {
		f.requests = append(f.requests, params.Get("search")+"#"+params.Get(f.pageParam))
		if body, ok := f.listings[params.Get(f.pageParam)]; ok {
			return body, nil
		}
		return nil, fmt.Errorf("no listing page %s", params.Get(f.pageParam))
	}

	f.detailHits++
	if body, ok := f.series[u.Path]; ok {
		return body, nil
	}
	return nil, fmt.Errorf("no series page %s", u.Path)
}
