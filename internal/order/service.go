package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/metrics"
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/notification"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"
	"wallfleur-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)
	SettlePayment(ctx context.Context, in SettleInput) (*SettleResult, error)
	AdminUpdateOrder(ctx context.Context, patch AdminPatch) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]Order, error)
}

type service struct {
	repo      Repository
	products  product.Service
	carts     cart.Service
	customers customer.Service
	gateways  payment.Gateways
	events    payment.Repository
	engine    *pricing.Engine
	notifier  notification.Notifier
	metrics   *metrics.Registry
	now       func() time.Time
}

func NewService(
	repo Repository,
	products product.Service,
	carts cart.Service,
	customers customer.Service,
	gateways payment.Gateways,
	events payment.Repository,
	engine *pricing.Engine,
	notifier notification.Notifier,
	reg *metrics.Registry,
) Service {
	return &service{
		repo:      repo,
		products:  products,
		carts:     carts,
		customers: customers,
		gateways:  gateways,
		events:    events,
		engine:    engine,
		notifier:  notifier,
		metrics:   reg,
		now:       time.Now,
	}
}

func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int64("customer_id", in.CustomerID),
		zap.String("provider", string(in.Provider)),
		zap.Int("line_count", len(in.Lines)),
	)

	if err := validateCreate(in); err != nil {
		log.Warn("invalid create order input", zap.Error(err))
		return nil, err
	}

	gw, err := s.gateways.Get(in.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ids := make([]int64, 0, len(in.Lines))
	seen := make(map[int64]bool, len(in.Lines))
	for _, l := range in.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load products", zap.Error(err))
		return nil, err
	}

	// 1. Price and validate before any external call or write
	quote, err := s.engine.Compute(in.Region, in.Lines, product.ToCatalog(products))
	if err != nil {
		log.Info("pricing rejected order", zap.Error(err))
		return nil, err
	}
	if err := pricing.VerifyAmount(quote, in.Amount); err != nil {
		log.Warn("client amount does not match server total",
			zap.Int64("client_amount", in.Amount),
			zap.Int64("server_amount", quote.Total),
		)
		return nil, err
	}

	// 2. Register with the provider
	now := s.now().UTC()
	names := productNames(products)
	req := payment.CreateRequest{
		AmountMinor:   quote.Total,
		Currency:      quote.Currency,
		Receipt:       utils.Receipt(now),
		ShippingMinor: quote.DeliveryFee,
	}
	for _, pl := range quote.Lines {
		req.Items = append(req.Items, payment.Item{
			Name:      names[pl.ProductID],
			Quantity:  pl.Quantity,
			UnitPrice: pl.UnitPrice,
		})
	}

	timer := metrics.StartTimer()
	remote, err := gw.CreateRemoteOrder(ctx, req)
	if err != nil {
		s.metrics.GatewayFailures.Inc()
		log.Error("gateway create failed", zap.Duration("elapsed", timer.Duration()), zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("provider_order_id", remote.ProviderOrderID))
	log.Info("remote order created", zap.Duration("elapsed", timer.Duration()))

	// 3. Persist the provisional order with a frozen line snapshot
	count, err := s.repo.CountByCustomer(ctx, in.CustomerID)
	if err != nil {
		log.Error("failed to count customer orders", zap.Error(err))
		return nil, err
	}

	o := &Order{
		CustomerID:      in.CustomerID,
		CustomerName:    in.Customer.Name,
		Email:           in.Customer.Email,
		Mobile:          in.Customer.Mobile,
		DialCode:        in.Customer.DialCode,
		Address:         in.Customer.Address,
		City:            in.Customer.City,
		State:           in.Customer.State,
		Country:         in.Customer.Country,
		PostalCode:      in.Customer.PostalCode,
		Amount:          quote.Total,
		DeliveryFee:     quote.DeliveryFee,
		Currency:        quote.Currency,
		Provider:        gw.Provider(),
		Receipt:         utils.Coalesce(remote.Receipt, req.Receipt),
		ProviderOrderID: remote.ProviderOrderID,
		Status:          StatusCreated,
		InvoiceID:       utils.CustomerInvoiceID(in.CustomerID, count, now),
		OrderedDate:     now,
		UpdatedDate:     now,
	}
	for _, pl := range quote.Lines {
		o.LineItems = append(o.LineItems, LineItem{
			ProductID: pl.ProductID,
			Quantity:  pl.Quantity,
			UnitPrice: pl.UnitPrice,
		})
	}

	if err := s.repo.CreateProvisional(ctx, o); err != nil {
		log.Error("failed to persist provisional order", zap.Error(err))
		return nil, err
	}

	if remote.ApprovalURL != "" {
		remote.ApprovalURL = withOrderID(remote.ApprovalURL, remote.ProviderOrderID)
	}

	s.metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("invoice_id", o.InvoiceID),
		zap.Int64("amount", o.Amount),
	)

	return &CreateOrderResult{Order: o, Remote: remote}, nil
}

func validateCreate(in CreateOrderInput) error {
	if in.CustomerID <= 0 || len(in.Lines) == 0 || in.Amount <= 0 {
		return ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID <= 0 || l.Quantity <= 0 {
			return ErrInvalidInput
		}
	}
	c := in.Customer
	for _, v := range []string{c.Name, c.Mobile, c.Address, c.City, c.Country, c.PostalCode} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingCustomer
		}
	}
	return nil
}

// SettlePayment is idempotent: once an order is paid (or further along) the
// call returns success without repeating side effects.
func (s *service) SettlePayment(ctx context.Context, in SettleInput) (*SettleResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SettlePayment"),
		zap.Int64("customer_id", in.CustomerID),
		zap.String("provider", string(in.Provider)),
		zap.String("provider_order_id", in.ProviderOrderID),
	)

	if in.CustomerID <= 0 || strings.TrimSpace(in.ProviderOrderID) == "" {
		return nil, ErrInvalidInput
	}
	gw, err := s.gateways.Get(in.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	o, err := s.repo.FindByProviderOrderIDAndCustomer(ctx, in.ProviderOrderID, in.CustomerID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Info("order not found for settlement")
		}
		return nil, err
	}
	if o.Provider != "" && o.Provider != in.Provider {
		log.Warn("settlement provider does not match order", zap.String("order_provider", string(o.Provider)))
		return nil, ErrInvalidProvider
	}

	if !o.Settleable() {
		s.metrics.SettlementsDuplicate.Inc()
		log.Info("order already settled", zap.String("status", string(o.Status)))
		return &SettleResult{Order: o, AlreadySettled: true}, nil
	}

	timer := metrics.StartTimer()
	settlement, err := gw.Settle(ctx, payment.SettleRequest{
		ProviderOrderID: in.ProviderOrderID,
		PaymentID:       in.PaymentID,
		Signature:       in.Signature,
	})
	if err != nil {
		s.metrics.GatewayFailures.Inc()
		log.Error("gateway settle failed, status unchanged", zap.Duration("elapsed", timer.Duration()), zap.Error(err))
		return nil, err
	}

	s.recordEvent(ctx, log, in, settlement)

	now := s.now().UTC()
	if !settlement.Verified() {
		applied, err := s.repo.UpdateStatus(ctx, o.ID, StatusUpdate{
			Status:    StatusFailed,
			PaymentID: in.PaymentID,
			Signature: in.Signature,
			UpdatedAt: now,
		})
		if err != nil {
			log.Error("failed to mark order failed", zap.Error(err))
			return nil, err
		}
		if !applied {
			return s.concurrentlySettled(ctx, log, o)
		}

		o.Status, o.PaymentID, o.Signature, o.UpdatedDate = StatusFailed, in.PaymentID, in.Signature, now
		s.metrics.SettlementsRejected.Inc()
		log.Warn("payment rejected", zap.String("reason", settlement.Reason))
		return &SettleResult{Order: o}, ErrPaymentRejected
	}

	applied, err := s.repo.UpdateStatus(ctx, o.ID, StatusUpdate{
		Status:    StatusPaid,
		PaymentID: settlement.PaymentID,
		Signature: in.Signature,
		UpdatedAt: now,
	})
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return nil, err
	}
	if !applied {
		return s.concurrentlySettled(ctx, log, o)
	}

	o.Status, o.PaymentID, o.Signature, o.UpdatedDate = StatusPaid, settlement.PaymentID, in.Signature, now
	s.metrics.SettlementsVerified.Inc()
	log.Info("payment verified", zap.String("payment_id", o.PaymentID))

	// Side effects below never undo the payment.
	if err := s.carts.Clear(ctx, o.CustomerID); err != nil {
		log.Error("failed to clear cart after payment", zap.Error(err))
	}
	s.sendConfirmation(ctx, log, o)

	return &SettleResult{Order: o}, nil
}

// concurrentlySettled handles losing the conditional update to a parallel settlement.
func (s *service) concurrentlySettled(ctx context.Context, log *zap.Logger, o *Order) (*SettleResult, error) {
	s.metrics.SettlementsDuplicate.Inc()
	log.Info("order settled by a concurrent request")

	latest, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if latest.Status == StatusFailed {
		return &SettleResult{Order: latest}, ErrPaymentRejected
	}
	return &SettleResult{Order: latest, AlreadySettled: true}, nil
}

func (s *service) recordEvent(ctx context.Context, log *zap.Logger, in SettleInput, st *payment.Settlement) {
	paymentID := st.PaymentID
	if paymentID == "" {
		paymentID = in.PaymentID
	}
	_, dup, err := s.events.RecordEvent(ctx, &payment.Event{
		Provider:        in.Provider,
		ProviderOrderID: in.ProviderOrderID,
		PaymentID:       paymentID,
		Outcome:         st.Outcome,
		Reason:          st.Reason,
		Payload:         st.Raw,
	})
	if err != nil {
		log.Error("failed to record payment event", zap.Error(err))
		return
	}
	if dup {
		log.Info("payment event replayed")
	}
}

func (s *service) sendConfirmation(ctx context.Context, log *zap.Logger, o *Order) {
	c, err := s.customers.FindVerified(ctx, o.CustomerID)
	if err != nil {
		log.Info("skipping confirmation email", zap.Error(err))
		return
	}

	mail := s.buildMail(ctx, o, c.Email, c.Name)
	if err := s.notifier.OrderConfirmed(ctx, mail); err != nil {
		s.metrics.NotificationFailures.Inc()
		log.Error("failed to send order confirmation", zap.Error(err))
	}
}

// AdminUpdateOrder applies an operator patch without transition checks. A
// zero ID creates a new operator-entered order.
func (s *service) AdminUpdateOrder(ctx context.Context, patch AdminPatch) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdminUpdateOrder"),
		zap.Int64("order_id", patch.ID),
	)

	now := s.now().UTC()
	if patch.ID == 0 {
		o := s.newAdminOrder(ctx, patch, now)
		if err := s.repo.Save(ctx, o); err != nil {
			log.Error("failed to create order", zap.Error(err))
			return nil, err
		}
		log.Info("operator order created", zap.Int64("order_id", o.ID))
		return o, nil
	}

	o, err := s.repo.GetByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	oldStatus := o.Status

	c := patch.Customer
	o.CustomerName = utils.Coalesce(c.Name, o.CustomerName)
	o.Email = utils.Coalesce(c.Email, o.Email)
	o.Mobile = utils.Coalesce(c.Mobile, o.Mobile)
	o.DialCode = utils.Coalesce(c.DialCode, o.DialCode)
	o.Address = utils.Coalesce(c.Address, o.Address)
	o.City = utils.Coalesce(c.City, o.City)
	o.State = utils.Coalesce(c.State, o.State)
	o.Country = utils.Coalesce(c.Country, o.Country)
	o.PostalCode = utils.Coalesce(c.PostalCode, o.PostalCode)
	if patch.Status != "" {
		o.Status = patch.Status
	}
	if patch.Currency.Valid() {
		o.Currency = patch.Currency
	}
	if patch.TrackingID != nil {
		o.TrackingID = *patch.TrackingID
	}
	if patch.Lines != nil {
		o.LineItems = s.priceAdminLines(ctx, patch.Lines, o.Currency)
	}
	if patch.Amount != nil {
		o.Amount = *patch.Amount
	}
	o.UpdatedDate = now

	if err := s.repo.Save(ctx, o); err != nil {
		log.Error("failed to save order", zap.Error(err))
		return nil, err
	}

	if o.Status != oldStatus {
		log.Info("order status changed", zap.String("from", string(oldStatus)), zap.String("to", string(o.Status)))
		s.sendStatusChange(ctx, log, o)
	}
	return o, nil
}

func (s *service) newAdminOrder(ctx context.Context, patch AdminPatch, now time.Time) *Order {
	c := patch.Customer
	o := &Order{
		CustomerID:      0,
		CustomerName:    c.Name,
		Email:           c.Email,
		Mobile:          c.Mobile,
		DialCode:        c.DialCode,
		Address:         c.Address,
		City:            c.City,
		State:           c.State,
		Country:         c.Country,
		PostalCode:      c.PostalCode,
		Currency:        money.INR,
		Receipt:         utils.Receipt(now),
		ProviderOrderID: utils.AdminProviderOrderID(now),
		InvoiceID:       utils.AdminInvoiceID(now),
		Status:          StatusCreated,
		TrackingID:      utils.PtrString(patch.TrackingID),
		OrderedDate:     now,
		UpdatedDate:     now,
	}
	if patch.Currency.Valid() {
		o.Currency = patch.Currency
	}
	if patch.Status != "" {
		o.Status = patch.Status
	}
	o.LineItems = s.priceAdminLines(ctx, patch.Lines, o.Currency)
	if patch.Amount != nil {
		o.Amount = *patch.Amount
	} else {
		o.Amount = o.Subtotal()
	}
	return o
}

// priceAdminLines fills missing unit prices from the current catalog. Lookup
// failures leave the price at zero; admin edits are not re-validated.
func (s *service) priceAdminLines(ctx context.Context, lines []LineItem, currency money.Currency) []LineItem {
	out := make([]LineItem, 0, len(lines))
	var missing []int64
	for _, l := range lines {
		out = append(out, LineItem{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
		if l.UnitPrice == 0 {
			missing = append(missing, l.ProductID)
		}
	}
	if len(missing) == 0 {
		return out
	}

	products, err := s.products.GetByIDs(ctx, missing)
	if err != nil {
		logger.FromCtx(ctx).Warn("could not price admin line items", zap.Error(err))
		return out
	}
	region := pricing.Domestic
	if currency == money.USD {
		region = pricing.International
	}
	prices := make(map[int64]int64, len(products))
	for _, p := range products {
		prices[p.ID] = product.PriceFor(p, region)
	}
	for i := range out {
		if out[i].UnitPrice == 0 {
			out[i].UnitPrice = prices[out[i].ProductID]
		}
	}
	return out
}

func (s *service) sendStatusChange(ctx context.Context, log *zap.Logger, o *Order) {
	to, name := o.Email, o.CustomerName
	if to == "" && o.CustomerID > 0 {
		if c, err := s.customers.FindVerified(ctx, o.CustomerID); err == nil {
			to = c.Email
			name = utils.Coalesce(name, c.Name)
		}
	}
	if to == "" {
		log.Info("no recipient for status change email")
		return
	}

	if err := s.notifier.OrderStatusChanged(ctx, s.buildMail(ctx, o, to, name)); err != nil {
		s.metrics.NotificationFailures.Inc()
		log.Error("failed to send status change email", zap.Error(err))
	}
}

// buildMail renders line items from the frozen snapshot; only names come
// from the current catalog.
func (s *service) buildMail(ctx context.Context, o *Order, to, name string) notification.Mail {
	ids := make([]int64, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		ids = append(ids, li.ProductID)
	}

	names := map[int64]string{}
	if len(ids) > 0 {
		products, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			logger.FromCtx(ctx).Warn("could not resolve product names for email", zap.Error(err))
		} else {
			names = productNames(products)
		}
	}

	m := notification.Mail{
		To:          to,
		Name:        name,
		OrderRef:    o.ProviderOrderID,
		PaymentID:   o.PaymentID,
		InvoiceID:   o.InvoiceID,
		Status:      string(o.Status),
		TrackingID:  o.TrackingID,
		Currency:    string(o.Currency),
		Address:     joinNonEmpty(", ", o.Address, o.City, o.State, o.Country, o.PostalCode),
		Subtotal:    money.Format(o.Subtotal()),
		DeliveryFee: money.Format(o.DeliveryFee),
		Total:       money.Format(o.Amount),
	}
	for _, li := range o.LineItems {
		n, ok := names[li.ProductID]
		if !ok {
			n = fmt.Sprintf("Product #%d", li.ProductID)
		}
		m.Items = append(m.Items, notification.MailItem{
			Name:      n,
			Quantity:  li.Quantity,
			UnitPrice: money.Format(li.UnitPrice),
			LineTotal: money.Format(li.UnitPrice * int64(li.Quantity)),
		})
	}
	return m
}

func (s *service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) CustomerOrders(ctx context.Context, customerID int64) ([]Order, error) {
	if customerID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

func productNames(products []product.Product) map[int64]string {
	out := make(map[int64]string, len(products))
	for _, p := range products {
		out[p.ID] = p.Name
	}
	return out
}

// withOrderID appends order_id to a provider approval URL.
func withOrderID(raw, orderID string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw + "&order_id=" + url.QueryEscape(orderID)
	}
	q := u.Query()
	q.Set("order_id", orderID)
	u.RawQuery = q.Encode()
	return u.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
