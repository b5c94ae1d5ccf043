package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/comicwatch/internal/domain"
)

type fakePoller struct {
	result *domain.RunResult
	err    error
	calls  int
}

func (f *fakePoller) Run(context.Context) (*domain.RunResult, error) {
	f.calls++
	return f.result, f.err
}

func TestPollJobLogsFailedDeliveries(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePoller{result: &domain.RunResult{
		Added: []string{"Batman (2016-)"},
		Deliveries: []domain.Delivery{
			{Recipient: "+15550000001", MessageID: "1"},
			{Recipient: "+15550000002", Error: "invalid parameter"},
		},
		SnapshotWritten: true,
	}}

	pollJob(context.Background(), p, zerolog.New(&buf))()

	require.Equal(t, 1, p.calls)
	out := buf.String()
	require.Contains(t, out, `"level":"warn"`)
	require.Contains(t, out, `"failed_deliveries":1`)
	require.Contains(t, out, `"deliveries":2`)
}

func TestPollJobQuietOnRunError(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePoller{err: errors.New("listing unavailable")}

	pollJob(context.Background(), p, zerolog.New(&buf))()

	require.Equal(t, 1, p.calls)
	require.Empty(t, buf.String())
}

func TestPollJobLogsCleanRunAtInfo(t *testing.T) {
	var buf bytes.Buffer
	p := &fakePoller{result: &domain.RunResult{}}

	pollJob(context.Background(), p, zerolog.New(&buf))()

	require.Contains(t, buf.String(), `"level":"info"`)
	require.Contains(t, buf.String(), `"failed_deliveries":0`)
}
