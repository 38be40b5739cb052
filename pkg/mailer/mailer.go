package mailer

import (
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/gomail.v2"
)

// Mailer sends email messages
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through an SMTP server
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

// Send sends an HTML message to a single recipient
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

// Message is a message captured by MockMailer
type Message struct {
	To      string
	Subject string
	Body    string
}

// MockMailer logs messages instead of sending them
type MockMailer struct {
	mu   sync.Mutex
	sent []Message
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the message
func (m *MockMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Message{To: to, Subject: subject, Body: htmlBody})
	slog.Info("Mock mail sent", "to", to, "subject", subject)
	return nil
}

// Sent returns a copy of the recorded messages
func (m *MockMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
