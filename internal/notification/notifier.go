package notification

import (
	"context"
	"errors"

	"wallfleur-be/internal/config"
	"wallfleur-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrMissingRecipient = errors.New("notification has no recipient")
	ErrRenderTemplate   = errors.New("failed to render email template")
	ErrSendMail         = errors.New("failed to send email")
)

// Notifier delivers order mail. Callers treat failures as non-fatal.
type Notifier interface {
	OrderConfirmed(ctx context.Context, m Mail) error
	OrderStatusChanged(ctx context.Context, m Mail) error
}

// Mail is the rendered view of an order. Amounts are preformatted major units.
type Mail struct {
	To          string
	Name        string
	OrderRef    string
	PaymentID   string
	InvoiceID   string
	Status      string
	TrackingID  string
	Currency    string
	Address     string
	Items       []MailItem
	Subtotal    string
	DeliveryFee string
	Total       string
}

type MailItem struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// NewNotifier returns an SMTP notifier, or a LogNotifier when SMTP
// credentials are not configured.
func NewNotifier(cfg *config.Config) Notifier {
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		logger.L().Warn("smtp credentials not set, order mail will only be logged")
		return LogNotifier{}
	}
	return NewSMTPNotifier(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}

// LogNotifier writes notifications to the request logger.
type LogNotifier struct{}

func (LogNotifier) OrderConfirmed(ctx context.Context, m Mail) error {
	return logMail(ctx, "order confirmed", m)
}

func (LogNotifier) OrderStatusChanged(ctx context.Context, m Mail) error {
	return logMail(ctx, "order status changed", m)
}

func logMail(ctx context.Context, kind string, m Mail) error {
	if m.To == "" {
		return ErrMissingRecipient
	}
	logger.FromCtx(ctx).Info("notification",
		zap.String("kind", kind),
		zap.String("to", m.To),
		zap.String("order_ref", m.OrderRef),
		zap.String("status", m.Status),
	)
	return nil
}
