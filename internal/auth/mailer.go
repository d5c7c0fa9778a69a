package auth

import "log"

// Mailer delivers password-reset messages. The platform only needs the one
// template, so the contract stays narrow.
type Mailer interface {
	SendPasswordReset(email, resetToken string) error
}

// LogMailer prints reset tokens to the process log; the offline/dev delivery
// channel.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(email, resetToken string) error {
	log.Printf("password reset for %s: token=%s", email, resetToken)
	return nil
}
