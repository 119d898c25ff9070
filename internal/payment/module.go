package payment

import (
	"wallfleur-be/internal/config"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	NewGatewaysFromConfig,
	NewRepository,
)

// NewGatewaysFromConfig builds the Razorpay and PayPal gateways.
func NewGatewaysFromConfig(cfg *config.Config) Gateways {
	return NewGateways(
		NewRazorpayGateway(RazorpayConfig{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
			Timeout:   cfg.GatewayTimeout,
		}),
		NewPayPalGateway(PayPalConfig{
			ClientID:     cfg.PayPalClientID,
			ClientSecret: cfg.PayPalClientSecret,
			BaseURL:      cfg.PayPalBaseURL,
			ReturnURL:    cfg.PayPalReturnURL,
			CancelURL:    cfg.PayPalCancelURL,
			BrandName:    cfg.PayPalBrandName,
			Timeout:      cfg.GatewayTimeout,
		}),
	)
}
