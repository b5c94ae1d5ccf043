package collector

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/comicwatch/internal/domain"
)

func newFixture() *fakeFetcher {
	page := listingPage("Batman (2016-)", "Superman (2018-)", "Immortal Hulk (2018-)")
	return &fakeFetcher{
		pageParam: domain.DefaultPageParam,
		listings: map[string][]byte{
			"0": page,
			"1": page,
		},
		series: map[string][]byte{
			"/series/batman-2016-":        seriesPage("DC"),
			"/series/superman-2018-":      seriesPage("DC"),
			"/series/immortal-hulk-2018-": seriesPage("Marvel"),
		},
	}
}

func newTestService(f *fakeFetcher, policy domain.StopPolicy) Service {
	return NewService(zerolog.Nop(), f, Parser{}, Options{
		BaseURL:    "https://www.comixology.com/search/series",
		StopPolicy: policy,
		MaxPages:   10,
	})
}

func TestCollectAnchorPolicy(t *testing.T) {
	f := newFixture()

	titles, err := newTestService(f, domain.StopPolicyAnchor).Collect(context.Background(), "2020", []string{"DC", "IDW"})
	require.NoError(t, err)
	require.Equal(t, domain.NewTitleSet("Batman (2016-)", "Superman (2018-)"), titles)

	require.Equal(t, []string{"2020-#0", "2020-#1"}, f.requests)
	// the repeated page is recognised before any publisher lookup
	require.Equal(t, 3, f.detailHits)
}

func TestCollectContentPolicy(t *testing.T) {
	f := newFixture()

	titles, err := newTestService(f, domain.StopPolicyContent).Collect(context.Background(), "2020", []string{"DC", "IDW"})
	require.NoError(t, err)
	require.Equal(t, domain.NewTitleSet("Batman (2016-)", "Superman (2018-)"), titles)
	require.Equal(t, 6, f.detailHits)
}

func TestCollectMultiplePages(t *testing.T) {
	f := newFixture()
	f.listings["1"] = listingPage("Wonder Woman (2016-)", "Batman (2016-)")
	f.listings["2"] = f.listings["1"]
	f.series["/series/wonder-woman-2016-"] = seriesPage("DC")

	for _, policy := range []domain.StopPolicy{domain.StopPolicyAnchor, domain.StopPolicyContent} {
		f.requests = nil
		titles, err := newTestService(f, policy).Collect(context.Background(), "2016", []string{"DC"})
		require.NoError(t, err, policy)
		require.Equal(t, domain.NewTitleSet("Batman (2016-)", "Superman (2018-)", "Wonder Woman (2016-)"), titles, policy)
		require.Equal(t, []string{"2016-#0", "2016-#1", "2016-#2"}, f.requests, policy)
	}
}

// A page whose filtered titles repeat while its raw content differs only
// ends the walk under the content policy.
func TestCollectPoliciesDisagreeOnFilteredRepeat(t *testing.T) {
	f := newFixture()
	f.listings["1"] = listingPage("Hellboy (2019-)", "Batman (2016-)", "Superman (2018-)")
	f.listings["2"] = f.listings["1"]
	f.series["/series/hellboy-2019-"] = seriesPage("Dark Horse")

	f.requests = nil
	_, err := newTestService(f, domain.StopPolicyContent).Collect(context.Background(), "2020", []string{"DC"})
	require.NoError(t, err)
	require.Equal(t, []string{"2020-#0", "2020-#1"}, f.requests)

	f.requests = nil
	_, err = newTestService(f, domain.StopPolicyAnchor).Collect(context.Background(), "2020", []string{"DC"})
	require.NoError(t, err)
	require.Equal(t, []string{"2020-#0", "2020-#1", "2020-#2"}, f.requests)
}

func TestCollectExcludesOtherPublishers(t *testing.T) {
	f := newFixture()

	titles, err := newTestService(f, domain.StopPolicyAnchor).Collect(context.Background(), "2020", []string{"Marvel"})
	require.NoError(t, err)
	require.Equal(t, domain.NewTitleSet("Immortal Hulk (2018-)"), titles)
}

func TestCollectPageLimit(t *testing.T) {
	f := newFixture()
	f.listings = map[string][]byte{}
	for i, title := range []string{"A (2020-)", "B (2020-)", "C (2020-)"} {
		f.listings[string(rune('0'+i))] = listingPage(title)
		f.series["/series/"+slug(title)] = seriesPage("DC")
	}

	svc := NewService(zerolog.Nop(), f, Parser{}, Options{BaseURL: "https://example.com/search", MaxPages: 3})
	_, err := svc.Collect(context.Background(), "2020", []string{"DC"})
	require.ErrorIs(t, err, domain.ErrPageLimit)
}

func TestCollectPropagatesFetchErrors(t *testing.T) {
	f := newFixture()
	delete(f.series, "/series/superman-2018-")

	_, err := newTestService(f, domain.StopPolicyAnchor).Collect(context.Background(), "2020", []string{"DC"})
	require.Error(t, err)
}

func TestCollectEmptyPageIsAnError(t *testing.T) {
	f := newFixture()
	f.listings["0"] = []byte(`<html><body></body></html>`)

	_, err := newTestService(f, domain.StopPolicyAnchor).Collect(context.Background(), "2020", []string{"DC"})
	require.True(t, errors.Is(err, domain.ErrNoEntries))
}
