package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/money"

	"go.uber.org/zap"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewRazorpayGateway(cfg RazorpayConfig) Gateway {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultRazorpayBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &razorpayGateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (g *razorpayGateway) Provider() Provider {
	return ProviderRazorpay
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// ----------------- CreateRemoteOrder -----------------

func (g *razorpayGateway) CreateRemoteOrder(ctx context.Context, in CreateRequest) (*RemoteOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderRazorpay)),
		zap.String("receipt", in.Receipt),
		zap.Int64("amount", in.AmountMinor),
		zap.String("currency", string(in.Currency)),
	)

	if in.AmountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	body := map[string]interface{}{
		"amount":   in.AmountMinor,
		"currency": string(in.Currency),
		"receipt":  in.Receipt,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal order request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	log.Info("Sending order request to Razorpay")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Razorpay request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to read razorpay response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: razorpay error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res razorpayOrderResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil || res.ID == "" {
		log.Error("Failed decoding Razorpay response", zap.Error(err), zap.ByteString("response", bodyBytes))
		return nil, fmt.Errorf("%w: invalid razorpay response", ErrGatewayUnavailable)
	}

	log.Info("Razorpay order created", zap.String("provider_order_id", res.ID))

	receipt := res.Receipt
	if receipt == "" {
		receipt = in.Receipt
	}
	return &RemoteOrder{
		ProviderOrderID: res.ID,
		Receipt:         receipt,
		AmountMinor:     res.Amount,
		Currency:        money.Currency(res.Currency),
		Status:          res.Status,
		Raw:             json.RawMessage(bodyBytes),
	}, nil
}

// ----------------- Settle -----------------

// Settle checks the checkout signature locally; no provider call is made.
func (g *razorpayGateway) Settle(ctx context.Context, in SettleRequest) (*Settlement, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderRazorpay)),
		zap.String("provider_order_id", in.ProviderOrderID),
		zap.String("payment_id", in.PaymentID),
	)

	if in.ProviderOrderID == "" || in.PaymentID == "" || in.Signature == "" {
		log.Warn("Incomplete Razorpay callback")
		return &Settlement{Outcome: OutcomeRejected, Reason: "missing payment fields"}, nil
	}

	if !VerifyRazorpaySignature(g.keySecret, in.ProviderOrderID, in.PaymentID, in.Signature) {
		log.Warn("Razorpay signature mismatch")
		return &Settlement{Outcome: OutcomeRejected, PaymentID: in.PaymentID, Reason: "signature mismatch"}, nil
	}

	log.Info("Razorpay signature verified")
	return &Settlement{Outcome: OutcomeVerified, PaymentID: in.PaymentID}, nil
}

// RazorpaySignature is hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func RazorpaySignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyRazorpaySignature(secret, orderID, paymentID, signature string) bool {
	expected := RazorpaySignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
