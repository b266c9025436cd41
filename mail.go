package main

import (
	"io"
	"time"

	mail "gopkg.in/mail.v2"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer is any service that can deliver a notification message.
type Mailer interface {
	Send(m Message) error
}

// smtpMailer delivers over SMTP, one dial per message. No retry; a transport
// error is the caller's problem.
type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	useTLS   bool
}

func newSMTPMailer(cfg Config) *smtpMailer {
	return &smtpMailer{
		host:     cfg.MailHost,
		port:     cfg.MailPort,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		from:     cfg.MailUsername,
		useTLS:   cfg.MailUseTLS,
	}
}

func (s *smtpMailer) Send(m Message) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	for _, at := range m.Attachments {
		at := at
		settings := []mail.FileSetting{
			mail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(at.Data)
				return err
			}),
		}
		if at.ContentType != "" {
			settings = append(settings, mail.SetHeader(map[string][]string{
				"Content-Type": {at.ContentType},
			}))
		}
		msg.Attach(at.Filename, settings...)
	}

	d := mail.NewDialer(s.host, s.port, s.username, s.password)
	d.Timeout = 15 * time.Second
	if s.useTLS {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	return d.DialAndSend(msg)
}
