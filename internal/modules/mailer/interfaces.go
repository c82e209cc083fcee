package mailer

import "context"

// AdminRegistry gates the callable actions: only identities present in
// the registry may send organizer emails.
type AdminRegistry interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Message is a fully formed transactional email.
type Message struct {
	To      string
	From    string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers a composed message. The default implementation
// dials SMTP via gomail; tests substitute a recording double.
type Transport interface {
	Send(m *Message) error
}
