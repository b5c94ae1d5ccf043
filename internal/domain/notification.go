package domain

import "context"

// Notifier delivers a text message to a single recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, text string) (Delivery, error)
}

// Delivery is the outcome of one send.
type Delivery struct {
	Recipient string `yaml:"recipient"`
	MessageID string `yaml:"message_id,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

func (d Delivery) Failed() bool {
	return d.Error != ""
}

// NotificationService defines the interface for run alerts
type NotificationService interface {
	// SendChanges announces new titles through every configured channel
	SendChanges(ctx context.Context, text string) []Delivery

	// SendError sends an error notification with error details
	SendError(ctx context.Context, err error) error
}
