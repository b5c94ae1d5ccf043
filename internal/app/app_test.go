package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/comicwatch/internal/domain"
)

func TestAppRunAndSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/series":
			fmt.Fprint(w, `<div class="content-item"><a href="/series/batman"><h5 class="content-title">Batman (2016-)</h5></a></div>`)
		case "/series/batman":
			fmt.Fprint(w, `<div class="publisher"><h3>DC</h3></div>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := &domain.Config{
		Years:      []string{"2020"},
		Publishers: []string{"DC"},
		JobName:    domain.DefaultJobName,
		StopPolicy: domain.StopPolicyContent,
		BaseURL:    server.URL + "/search/series",
		PageParam:  domain.DefaultPageParam,
		MaxPages:   5,
		Storage:    domain.StorageSQLite,
		StorageDir: t.TempDir(),
		ObjectKey:  domain.DefaultObjectKey,
	}

	ctx := context.Background()
	a, err := NewApp(ctx, zerolog.Nop(), cfg)
	require.NoError(t, err)
	defer a.Close()

	titles, err := a.Snapshot(ctx)
	require.NoError(t, err)
	require.Empty(t, titles)

	check, err := a.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Batman (2016-)"}, check.Added)

	result, err := a.Run(ctx)
	require.NoError(t, err)
	require.True(t, result.SnapshotWritten)
	// no recipients are configured
	require.Empty(t, result.Deliveries)

	titles, err = a.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NewTitleSet("Batman (2016-)"), titles)
}

func TestRootCause(t *testing.T) {
	base := errors.New("boom")
	wrapped := fmt.Errorf("run failed: %w", errors.Wrap(base, "failed to collect 2020"))
	require.Equal(t, base, rootCause(wrapped))
}
