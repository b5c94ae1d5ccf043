package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	published map[string]string
	fail      map[string]bool
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	number := aws.ToString(in.PhoneNumber)
	if f.fail[number] {
		return nil, fmt.Errorf("invalid parameter: %s", number)
	}
	f.published[number] = aws.ToString(in.Message)
	return &sns.PublishOutput{MessageId: aws.String("msg-" + number)}, nil
}

func TestFormatChanges(t *testing.T) {
	require.Equal(t,
		"AWS Comics Lambda: changes found: \n\nBatman (2016-)\nSuperman (2018-)",
		FormatChanges("AWS Comics Lambda", "Batman (2016-)\nSuperman (2018-)"))
}

func TestSendChangesToEveryRecipient(t *testing.T) {
	client := &fakeSNS{
		published: map[string]string{},
		fail:      map[string]bool{"+15550000002": true},
	}
	svc := NewService(zerolog.Nop(), NewSMSService(zerolog.Nop(), client), []string{"+15550000001", "+15550000002", "+15550000003"}, nil)

	deliveries := svc.SendChanges(context.Background(), "hello")
	require.Len(t, deliveries, 3)

	require.Equal(t, "msg-+15550000001", deliveries[0].MessageID)
	require.True(t, deliveries[1].Failed())
	require.False(t, deliveries[2].Failed())

	require.Equal(t, map[string]string{"+15550000001": "hello", "+15550000003": "hello"}, client.published)
}

func TestSendChangesWithoutChannels(t *testing.T) {
	svc := NewService(zerolog.Nop(), nil, nil, nil)
	require.Empty(t, svc.SendChanges(context.Background(), "hello"))
	require.NoError(t, svc.SendError(context.Background(), errors.New("boom")))
}

func TestDiscordWebhook(t *testing.T) {
	var got []discordWebhook
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload discordWebhook
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		got = append(got, payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	discord := NewDiscordService(zerolog.Nop(), server.URL, "comicwatch")
	svc := NewService(zerolog.Nop(), nil, nil, discord)

	deliveries := svc.SendChanges(context.Background(), "Batman (2016-)")
	require.Len(t, deliveries, 1)
	require.False(t, deliveries[0].Failed())

	require.NoError(t, svc.SendError(context.Background(), errors.New("listing fetch failed")))

	require.Len(t, got, 2)
	require.Equal(t, "Batman (2016-)", got[0].Embeds[0].Description)
	require.Equal(t, "comicwatch run failed", got[1].Embeds[0].Title)
	require.Contains(t, got[1].Embeds[0].Description, "listing fetch failed")
}

func TestDiscordWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewService(zerolog.Nop(), nil, nil, NewDiscordService(zerolog.Nop(), server.URL, "comicwatch"))
	deliveries := svc.SendChanges(context.Background(), "x")
	require.Len(t, deliveries, 1)
	require.True(t, deliveries[0].Failed())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab…", truncate("abcdef", 3))
}
