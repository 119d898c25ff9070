package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"wallfleur-be/internal/logger"

	"go.uber.org/zap"
)

const (
	subjectConfirmed = "Wallfleur Order Confirmation"
	subjectStatus    = "Wallfleur Order Status Updated"
	implicitTLSPort  = 465
	dialTimeout      = 10 * time.Second
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(ctx context.Context, from string, to []string, msg []byte) error

type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	n := &SMTPNotifier{cfg: cfg}
	n.send = n.deliver
	return n
}

func (n *SMTPNotifier) OrderConfirmed(ctx context.Context, m Mail) error {
	body, err := renderConfirmation(m)
	if err != nil {
		return err
	}
	return n.dispatch(ctx, m.To, subjectConfirmed, body)
}

func (n *SMTPNotifier) OrderStatusChanged(ctx context.Context, m Mail) error {
	body, err := renderStatus(m)
	if err != nil {
		return err
	}
	return n.dispatch(ctx, m.To, subjectStatus, body)
}

func (n *SMTPNotifier) dispatch(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return ErrMissingRecipient
	}

	msg := buildMessage(n.cfg.From, to, subject, body)
	if err := n.send(ctx, n.cfg.From, []string{to}, msg); err != nil {
		logger.FromCtx(ctx).Error("failed to send email",
			zap.String("layer", "notification"),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrSendMail, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// deliver uses implicit TLS on port 465 and STARTTLS (via smtp.SendMail) otherwise.
func (n *SMTPNotifier) deliver(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	if n.cfg.Port != implicitTLSPort {
		return smtp.SendMail(addr, auth, from, to, msg)
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: dialTimeout},
		Config:    &tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
