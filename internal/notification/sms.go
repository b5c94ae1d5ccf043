package notification

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

// SNSAPI is the subset of the SNS client used for text messages.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSService sends text messages to phone numbers through SNS.
type SMSService struct {
	log    zerolog.Logger
	client SNSAPI
}

var _ domain.Notifier = (*SMSService)(nil)

func NewSMSService(log zerolog.Logger, client SNSAPI) *SMSService {
	return &SMSService{
		log:    log.With().Str("module", "notification").Str("type", "sms").Logger(),
		client: client,
	}
}

// Send publishes text to a single phone number.
func (s *SMSService) Send(ctx context.Context, recipient, text string) (domain.Delivery, error) {
	d := domain.Delivery{Recipient: recipient}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(recipient),
		Message:     aws.String(text),
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to publish sms to %s", recipient)
		d.Error = err.Error()
		return d, err
	}

	d.MessageID = aws.ToString(out.MessageId)
	s.log.Debug().Str("recipient", recipient).Str("message_id", d.MessageID).Msg("sms sent")
	return d, nil
}
