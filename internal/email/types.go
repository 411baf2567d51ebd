package email

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Provider sends transactional email. Implementations must be safe
// for concurrent use.
type Provider interface {
	Send(msg *EmailMessage) error
}

// NoopProvider discards all mail. Used in tests and when SMTP is not
// configured.
type NoopProvider struct{}

func (NoopProvider) Send(*EmailMessage) error { return nil }
