// Package mail provides the SMTP transport used by the notification
// dispatcher. The transport is constructed once at startup and shared
// across requests.
package mail

import "context"

// Message is one outbound email. Text and HTML are alternative bodies;
// when both are set the message goes out as multipart/alternative.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single message through the configured transport.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
