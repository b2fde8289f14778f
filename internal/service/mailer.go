// Package service contains the collaborators the HTTP handlers call
// out to
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"revas/exchange-api/pkg/apperr"
)

// Mailer delivers the transactional mails the exchange sends. Delivery
// happens after the triggering state change is committed, so a failed
// send never rolls anything back
type Mailer interface {
	SendVerificationEmail(to, name, code string) error
	SendWaitlistEmail(to, name string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		username: viper.GetString("mail.username"),
		password: viper.GetString("mail.password"),
		from:     viper.GetString("mail.from"),
	}
}

func (m *SMTPMailer) SendVerificationEmail(to, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Revas Exchange verification code")
	msg.SetBody("text/html", fmt.Sprintf(
		"Hello %s,<br><br>Your verification code is <b>%s</b>.<br><br>Enter it in the app to verify your email address.",
		name, code))

	return m.send(msg)
}

func (m *SMTPMailer) SendWaitlistEmail(to, name string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "You're on the Revas Exchange waitlist")
	msg.SetBody("text/html", fmt.Sprintf(
		"Hello %s,<br><br>Thanks for joining the waitlist. We'll reach out as soon as a spot opens up.",
		name))

	return m.send(msg)
}

func (m *SMTPMailer) send(msg *gomail.Message) error {
	d := gomail.NewDialer(m.host, m.port, m.username, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrDeliveryFailure, err)
	}

	return nil
}
