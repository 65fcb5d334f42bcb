package ports

import "context"

// MailMessage is a single HTML email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailQueue accepts a message for background delivery.
type MailQueue interface {
	Enqueue(ctx context.Context, msg MailMessage) error
}
