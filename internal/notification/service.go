package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

// Service fans a message out to every configured channel: one text per
// recipient through the SMS notifier, and the Discord webhook when set.
type Service struct {
	log        zerolog.Logger
	sms        domain.Notifier
	recipients []string
	discord    *DiscordService
}

var _ domain.NotificationService = (*Service)(nil)

// NewService creates a new notification service. sms may be nil when no
// recipients are configured.
func NewService(log zerolog.Logger, sms domain.Notifier, recipients []string, discord *DiscordService) *Service {
	return &Service{
		log:        log.With().Str("module", "notification").Logger(),
		sms:        sms,
		recipients: recipients,
		discord:    discord,
	}
}

// FormatChanges builds the text sent when new titles were found.
func FormatChanges(jobName, titles string) string {
	return fmt.Sprintf("%s: changes found: \n\n%s", jobName, titles)
}

// SendChanges delivers text to every recipient. A failed recipient is
// recorded and the rest are still attempted; nothing is retried.
func (s *Service) SendChanges(ctx context.Context, text string) []domain.Delivery {
	var deliveries []domain.Delivery

	if s.sms != nil {
		for _, recipient := range s.recipients {
			d, err := s.sms.Send(ctx, recipient, text)
			if err != nil {
				s.log.Warn().Err(err).Str("recipient", recipient).Msg("Failed to send notification")
			}
			deliveries = append(deliveries, d)
		}
	}

	if s.discord != nil {
		d := domain.Delivery{Recipient: "discord"}
		if err := s.discord.SendChanges(ctx, text); err != nil {
			s.log.Warn().Err(err).Msg("Failed to send Discord notification")
			d.Error = err.Error()
		}
		deliveries = append(deliveries, d)
	}

	return deliveries
}

// SendError sends error notifications through all configured channels
func (s *Service) SendError(ctx context.Context, err error) error {
	if s.discord != nil {
		if err := s.discord.SendError(ctx, err); err != nil {
			return err
		}
	}
	return nil
}
