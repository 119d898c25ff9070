package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/money"

	"go.uber.org/zap"
)

const (
	defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"
	paypalStatusDone     = "COMPLETED"
	issueAlreadyCaptured = "ORDER_ALREADY_CAPTURED"
	// tokens are refreshed this long before PayPal says they expire
	tokenExpiryLeeway = 60 * time.Second
)

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	ReturnURL    string
	CancelURL    string
	BrandName    string
	Timeout      time.Duration
}

type paypalGateway struct {
	cfg        PayPalConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// ----------------- Constructor -----------------

func NewPayPalGateway(cfg PayPalConfig) Gateway {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		logger.L().Warn("PayPal credentials are empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPayPalBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &paypalGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		now: time.Now,
	}
}

func (g *paypalGateway) Provider() Provider {
	return ProviderPayPal
}

// ----------------- Wire types -----------------

type paypalAmount struct {
	CurrencyCode string           `json:"currency_code"`
	Value        string           `json:"value"`
	Breakdown    *paypalBreakdown `json:"breakdown,omitempty"`
}

type paypalMoney struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalBreakdown struct {
	ItemTotal paypalMoney `json:"item_total"`
	Shipping  paypalMoney `json:"shipping"`
}

type paypalItem struct {
	Name       string      `json:"name"`
	Quantity   string      `json:"quantity"`
	UnitAmount paypalMoney `json:"unit_amount"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id,omitempty"`
	Amount      paypalAmount `json:"amount"`
	Items       []paypalItem `json:"items,omitempty"`
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type paypalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type paypalOrderResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []paypalLink `json:"links"`
}

type paypalCaptureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type paypalErrorResponse struct {
	Name    string `json:"name"`
	Details []struct {
		Issue string `json:"issue"`
	} `json:"details"`
}

// ----------------- Token -----------------

// accessToken returns a cached client-credentials token, fetching a new one
// when the cached token is missing or about to expire.
func (g *paypalGateway) accessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" && g.now().Before(g.tokenExpiry) {
		return g.token, nil
	}

	log := logger.FromCtx(ctx).With(zap.String("provider", string(ProviderPayPal)))

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.cfg.ClientID, g.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("PayPal token request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read paypal token response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("PayPal token request returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", fmt.Errorf("%w: paypal token error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var tok paypalTokenResponse
	if err := json.Unmarshal(bodyBytes, &tok); err != nil || tok.AccessToken == "" {
		log.Error("Failed decoding PayPal token response", zap.Error(err))
		return "", fmt.Errorf("%w: invalid paypal token response", ErrGatewayUnavailable)
	}

	g.token = tok.AccessToken
	g.tokenExpiry = g.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryLeeway)
	return g.token, nil
}

func (g *paypalGateway) invalidateToken() {
	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()
}

// ----------------- CreateRemoteOrder -----------------

func (g *paypalGateway) CreateRemoteOrder(ctx context.Context, in CreateRequest) (*RemoteOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderPayPal)),
		zap.String("receipt", in.Receipt),
		zap.Int64("amount", in.AmountMinor),
		zap.String("currency", string(in.Currency)),
	)

	if in.AmountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	currency := string(in.Currency)
	unit := paypalPurchaseUnit{
		ReferenceID: in.Receipt,
		Amount: paypalAmount{
			CurrencyCode: currency,
			Value:        money.Format(in.AmountMinor),
		},
	}
	if len(in.Items) > 0 {
		var itemTotal int64
		for _, it := range in.Items {
			itemTotal += it.UnitPrice * int64(it.Quantity)
			unit.Items = append(unit.Items, paypalItem{
				Name:       it.Name,
				Quantity:   fmt.Sprintf("%d", it.Quantity),
				UnitAmount: paypalMoney{CurrencyCode: currency, Value: money.Format(it.UnitPrice)},
			})
		}
		unit.Amount.Breakdown = &paypalBreakdown{
			ItemTotal: paypalMoney{CurrencyCode: currency, Value: money.Format(itemTotal)},
			Shipping:  paypalMoney{CurrencyCode: currency, Value: money.Format(in.ShippingMinor)},
		}
	}

	body := map[string]interface{}{
		"intent":         "CAPTURE",
		"purchase_units": []paypalPurchaseUnit{unit},
		"application_context": map[string]interface{}{
			"return_url":          g.cfg.ReturnURL,
			"cancel_url":          g.cfg.CancelURL,
			"shipping_preference": "NO_SHIPPING",
			"user_action":         "PAY_NOW",
			"brand_name":          g.cfg.BrandName,
		},
	}

	log.Info("Sending order request to PayPal")

	status, bodyBytes, err := g.postJSON(ctx, token, "/v2/checkout/orders", body)
	if err != nil {
		log.Error("PayPal create order failed", zap.Error(err))
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		log.Error("PayPal returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", bodyBytes),
		)
		if status == http.StatusUnauthorized {
			g.invalidateToken()
		}
		return nil, fmt.Errorf("%w: paypal error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res paypalOrderResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil || res.ID == "" {
		log.Error("Failed decoding PayPal response", zap.Error(err))
		return nil, fmt.Errorf("%w: invalid paypal response", ErrGatewayUnavailable)
	}

	var approval string
	for _, l := range res.Links {
		if l.Rel == "approve" {
			approval = l.Href
			break
		}
	}
	if approval == "" {
		log.Error("PayPal response has no approve link", zap.String("provider_order_id", res.ID))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, ErrMissingApproveLink)
	}

	log.Info("PayPal order created", zap.String("provider_order_id", res.ID))

	return &RemoteOrder{
		ProviderOrderID: res.ID,
		Receipt:         in.Receipt,
		ApprovalURL:     approval,
		AmountMinor:     in.AmountMinor,
		Currency:        in.Currency,
		Status:          res.Status,
		Raw:             json.RawMessage(bodyBytes),
	}, nil
}

// ----------------- Settle -----------------

// Settle captures an approved order server side, using the provider order id
// as PayPal-Request-Id.
func (g *paypalGateway) Settle(ctx context.Context, in SettleRequest) (*Settlement, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", string(ProviderPayPal)),
		zap.String("provider_order_id", in.ProviderOrderID),
	)

	if in.ProviderOrderID == "" {
		return &Settlement{Outcome: OutcomeRejected, Reason: "missing order id"}, nil
	}

	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	orderPath := "/v2/checkout/orders/" + url.PathEscape(in.ProviderOrderID)
	status, bodyBytes, err := g.send(ctx, http.MethodPost, token, orderPath+"/capture", nil, in.ProviderOrderID)
	if err != nil {
		log.Error("PayPal capture failed", zap.Error(err))
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
	case status == http.StatusUnprocessableEntity && hasPayPalIssue(bodyBytes, issueAlreadyCaptured):
		log.Info("PayPal order already captured, fetching order")
		return g.capturedOrder(ctx, log, token, orderPath)
	case status == http.StatusUnprocessableEntity || status == http.StatusNotFound:
		// declined instrument, unapproved order or unknown order
		log.Warn("PayPal declined capture", zap.Int("status", status), zap.ByteString("response", bodyBytes))
		return &Settlement{Outcome: OutcomeRejected, Reason: fmt.Sprintf("capture declined (%d)", status), Raw: json.RawMessage(bodyBytes)}, nil
	default:
		log.Error("PayPal capture returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", bodyBytes),
		)
		if status == http.StatusUnauthorized {
			g.invalidateToken()
		}
		return nil, fmt.Errorf("%w: paypal capture error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res paypalCaptureResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding PayPal capture response", zap.Error(err))
		return nil, fmt.Errorf("%w: invalid paypal capture response", ErrGatewayUnavailable)
	}

	if res.Status != paypalStatusDone {
		log.Warn("PayPal capture not completed", zap.String("status", res.Status))
		return &Settlement{Outcome: OutcomeRejected, Reason: "capture status " + res.Status, Raw: json.RawMessage(bodyBytes)}, nil
	}

	captureID := res.captureID()
	log.Info("PayPal payment captured", zap.String("capture_id", captureID))
	return &Settlement{Outcome: OutcomeVerified, PaymentID: captureID, Raw: json.RawMessage(bodyBytes)}, nil
}

// capturedOrder reads back an order PayPal reports as already captured. Only
// a COMPLETED order verifies; anything else leaves the local order untouched.
func (g *paypalGateway) capturedOrder(ctx context.Context, log *zap.Logger, token, orderPath string) (*Settlement, error) {
	status, bodyBytes, err := g.send(ctx, http.MethodGet, token, orderPath, nil, "")
	if err != nil {
		log.Error("PayPal order lookup failed", zap.Error(err))
		return nil, err
	}
	if status != http.StatusOK {
		log.Error("PayPal order lookup returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", bodyBytes),
		)
		if status == http.StatusUnauthorized {
			g.invalidateToken()
		}
		return nil, fmt.Errorf("%w: paypal order lookup error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res paypalCaptureResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding PayPal order", zap.Error(err))
		return nil, fmt.Errorf("%w: invalid paypal order response", ErrGatewayUnavailable)
	}
	if res.Status != paypalStatusDone {
		log.Warn("captured PayPal order is not completed", zap.String("status", res.Status))
		return nil, fmt.Errorf("%w: paypal order status %s", ErrGatewayUnavailable, res.Status)
	}

	captureID := res.captureID()
	log.Info("PayPal payment previously captured", zap.String("capture_id", captureID))
	return &Settlement{Outcome: OutcomeVerified, PaymentID: captureID, Raw: json.RawMessage(bodyBytes)}, nil
}

func (r *paypalCaptureResponse) captureID() string {
	if len(r.PurchaseUnits) > 0 && len(r.PurchaseUnits[0].Payments.Captures) > 0 {
		return r.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return ""
}

func hasPayPalIssue(body []byte, issue string) bool {
	var res paypalErrorResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return false
	}
	for _, d := range res.Details {
		if d.Issue == issue {
			return true
		}
	}
	return false
}

func (g *paypalGateway) postJSON(ctx context.Context, token, path string, body interface{}) (int, []byte, error) {
	return g.send(ctx, http.MethodPost, token, path, body, "")
}

func (g *paypalGateway) send(ctx context.Context, method, token, path string, body interface{}, requestID string) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("PayPal-Request-Id", requestID)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read paypal response: %v", ErrGatewayUnavailable, err)
	}
	return resp.StatusCode, bodyBytes, nil
}
