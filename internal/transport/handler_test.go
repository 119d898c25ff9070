package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wallfleur-be/internal/auth"
	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/config"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/metrics"
	"wallfleur-be/internal/middleware"
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"
	"wallfleur-be/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	orders    *MockOrderService
	products  *MockProductService
	carts     *MockCartService
	customers *MockCustomerService
	tokens    *customer.Tokens
	sessions  *session.Manager
	metrics   *metrics.Registry
}

type requestOption func(*http.Request)

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()
	cfg := &config.Config{
		AppEnv:            "test",
		CustomerJWTSecret: "customer-secret",
		AdminJWTSecret:    "admin-secret",
		InternalSecretKey: "svc-key",
		SessionSecret:     "session-secret",
		CORSOrigins:       []string{"http://localhost:3000"},
	}
	s := &testServer{
		orders:    new(MockOrderService),
		products:  new(MockProductService),
		carts:     new(MockCartService),
		customers: new(MockCustomerService),
		tokens:    customer.NewTokens(cfg),
		sessions:  session.NewManager(cfg),
		metrics:   metrics.NewRegistry(),
	}
	h := NewHandler(HandlerParams{
		Config:    cfg,
		DB:        stubPinger{err: pingErr},
		Orders:    s.orders,
		Products:  s.products,
		Carts:     s.carts,
		Customers: s.customers,
		Sessions:  s.sessions,
		Metrics:   s.metrics,
	})
	s.router = NewRouter(RouterParams{
		Config:  cfg,
		Handler: h,
		Tokens:  s.tokens,
		Limiter: middleware.NewLimiter(cfg.InternalSecretKey),
	})
	return s
}

func (s *testServer) do(method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) asCustomer(t *testing.T, id int64) requestOption {
	token, err := s.tokens.Customer.Generate(id, "ada@example.com")
	require.NoError(t, err)
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.CustomerCookie, Value: token})
	}
}

func (s *testServer) asAdmin(t *testing.T) requestOption {
	token, err := s.tokens.Admin.Generate(1, "ops@wallfleur.com")
	require.NoError(t, err)
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func (s *testServer) international(t *testing.T) requestOption {
	token, err := s.sessions.Issue(true)
	require.NoError(t, err)
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
}

func asService(r *http.Request) {
	r.Header.Set(auth.ServiceAuthHeader, "svc-key")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const checkoutBody = `{
	"amount": %s,
	"userData": {"name":"Ada","email":"ada@example.com","mobile":"9876543210","dialcode":"+91",
		"address":"12 MG Road","city":"Bengaluru","state":"Karnataka","country":"India","postalCode":"560001"},
	"products": [{"id":1,"quantity":2}]
}`

var checkoutCustomer = order.CustomerDetails{
	Name: "Ada", Email: "ada@example.com", Mobile: "9876543210", DialCode: "+91",
	Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Country: "India", PostalCode: "560001",
}

func TestHandler_Health(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	s = newTestServer(t, errors.New("connection refused"))
	w = s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.customers.On("Login", mock.Anything, "ada@example.com", "secret").
			Return("jwt-token", &customer.Customer{ID: 7}, nil)

		w := s.do(http.MethodPost, "/login", `{"email":"ada@example.com","password":"secret"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"jwt-token"}`, w.Body.String())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CustomerCookie, cookies[0].Name)
		assert.Equal(t, "jwt-token", cookies[0].Value)
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.customers.On("Login", mock.Anything, "nobody@example.com", "secret").
			Return("", nil, customer.ErrCustomerNotFound)

		w := s.do(http.MethodPost, "/login", `{"email":"nobody@example.com","password":"secret"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"User does not exist. Please register first."}`, w.Body.String())
	})

	t.Run("MissingFields", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/login", `{"email":"ada@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.customers.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_InternationalSession(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/get-international-session", "")
	assert.JSONEq(t, `{"is_international":false}`, w.Body.String())

	w = s.do(http.MethodPost, "/set-international-session", "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	w = s.do(http.MethodPost, "/get-international-session", "", func(r *http.Request) { r.AddCookie(cookies[0]) })
	assert.JSONEq(t, `{"is_international":true}`, w.Body.String())
}

func TestHandler_GetProduct(t *testing.T) {
	frame := &product.Product{ID: 1, Name: "Pressed Flower Frame", Slug: "pressed-flower-frame", INRPrice: 50000, USDPrice: 799, Quantity: 5}

	t.Run("InternationalPrice", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.products.On("GetByID", mock.Anything, int64(1)).Return(frame, nil)

		w := s.do(http.MethodGet, "/products/1", "", s.international(t))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "USD", body["currency"])
		assert.Equal(t, "7.99", fmt.Sprint(body["price"]))
	})

	t.Run("DomesticByDefault", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.products.On("GetByID", mock.Anything, int64(1)).Return(frame, nil)

		w := s.do(http.MethodGet, "/products/1", "")
		body := decode(t, w)
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "500", fmt.Sprint(body["price"]))
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.products.On("GetByID", mock.Anything, int64(9)).Return(nil, product.ErrProductNotFound)

		w := s.do(http.MethodGet, "/products/9", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Product not found"}`, w.Body.String())
	})

	t.Run("BadID", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodGet, "/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Run("Razorpay", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("CreateOrder", mock.Anything, order.CreateOrderInput{
			CustomerID: 7,
			Amount:     115000,
			Customer:   checkoutCustomer,
			Lines:      []pricing.Line{{ProductID: 1, Quantity: 2}},
			Region:     pricing.Domestic,
			Provider:   payment.ProviderRazorpay,
		}).Return(&order.CreateOrderResult{
			Order:  &order.Order{ID: 10},
			Remote: &payment.RemoteOrder{ProviderOrderID: "order_Nf2k1", Receipt: "receipt_1", AmountMinor: 115000, Currency: money.INR},
		}, nil)

		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1150"), s.asCustomer(t, 7))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"order_Nf2k1","receipt":"receipt_1","amount":115000,"currency":"INR"}`, w.Body.String())
	})

	t.Run("PayPal", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.Provider == payment.ProviderPayPal && in.Region == pricing.International && in.Amount == 3598
		})).Return(&order.CreateOrderResult{
			Order: &order.Order{ID: 11},
			Remote: &payment.RemoteOrder{
				ProviderOrderID: "5O190127TN364715T",
				ApprovalURL:     "https://www.sandbox.paypal.com/checkoutnow?order_id=5O190127TN364715T&token=5O190127TN364715T",
			},
		}, nil)

		w := s.do(http.MethodPost, "/createPayPalOrder", fmt.Sprintf(checkoutBody, "35.98"), s.asCustomer(t, 7), s.international(t))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{
			"approvalUrl":"https://www.sandbox.paypal.com/checkoutnow?order_id=5O190127TN364715T&token=5O190127TN364715T",
			"id":"5O190127TN364715T"
		}`, w.Body.String())
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1150"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		s.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("SubMinorAmountIsMismatch", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1150.001"), s.asCustomer(t, 7))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Amount mismatch"}`, w.Body.String())
		s.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("MissingAmount", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "0"), s.asCustomer(t, 7))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Amount is missing in request body."}`, w.Body.String())
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, pricing.ErrAmountMismatch)

		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1149.99"), s.asCustomer(t, 7))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Amount mismatch"}`, w.Body.String())
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, &pricing.InsufficientStockError{ProductID: 1, Available: 1, Requested: 2})

		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1150"), s.asCustomer(t, 7))
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["productId"])
		assert.Equal(t, float64(1), body["available"])
		assert.Equal(t, float64(2), body["requested"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("GatewayUnavailable", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: status 503", payment.ErrGatewayUnavailable))

		w := s.do(http.MethodPost, "/createOrder", fmt.Sprintf(checkoutBody, "1150"), s.asCustomer(t, 7))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Payment gateway unavailable"}`, w.Body.String())
	})
}

func TestHandler_VerifyPayment(t *testing.T) {
	body := `{"order_id":"order_Nf2k1","payment_id":"pay_1","signature":"sig"}`
	in := order.SettleInput{
		CustomerID:      7,
		Provider:        payment.ProviderRazorpay,
		ProviderOrderID: "order_Nf2k1",
		PaymentID:       "pay_1",
		Signature:       "sig",
	}

	cases := []struct {
		name       string
		result     *order.SettleResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Verified", &order.SettleResult{}, nil, http.StatusOK, `{"status":"success"}`},
		{"AlreadySettled", &order.SettleResult{AlreadySettled: true}, nil, http.StatusOK, `{"status":"success"}`},
		{"Rejected", &order.SettleResult{}, order.ErrPaymentRejected, http.StatusBadRequest, `{"status":"failure"}`},
		{"NotFound", nil, order.ErrOrderNotFound, http.StatusNotFound, `{"message":"Order not found."}`},
		{"Unavailable", nil, payment.ErrGatewayUnavailable, http.StatusInternalServerError, `{"message":"Payment gateway unavailable"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			s.orders.On("SettlePayment", mock.Anything, in).Return(tc.result, tc.err)

			w := s.do(http.MethodPost, "/verifyPayment", body, s.asCustomer(t, 7))
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}

	t.Run("MissingFields", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/verifyPayment", `{"order_id":"order_Nf2k1"}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.orders.AssertNotCalled(t, "SettlePayment", mock.Anything, mock.Anything)
	})
}

func TestHandler_CapturePayPalPayment(t *testing.T) {
	s := newTestServer(t, nil)
	s.orders.On("SettlePayment", mock.Anything, order.SettleInput{
		CustomerID:      7,
		Provider:        payment.ProviderPayPal,
		ProviderOrderID: "5O190127TN364715T",
	}).Return(&order.SettleResult{}, nil)

	w := s.do(http.MethodPost, "/capturePayPalPayment", `{"order_id":"5O190127TN364715T"}`, s.asCustomer(t, 7))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
}

func TestHandler_Bag(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.carts.On("GetBag", mock.Anything, int64(7), pricing.Domestic).Return([]cart.BagItem{
			{ProductID: 1, Name: "Pressed Flower Frame", Price: decimal.NewFromInt(500), Currency: "INR", Quantity: 2, Available: 5},
		}, nil)

		w := s.do(http.MethodPost, "/bag", "", s.asCustomer(t, 7))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["products"], 1)
	})

	t.Run("Sync", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.carts.On("Sync", mock.Anything, int64(7), []cart.SyncItem{{ProductID: 1, Quantity: 2}}).Return(nil)

		w := s.do(http.MethodPost, "/addtobag", `{"products":[{"id":1,"quantity":2}]}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Products added to bag successfully."}`, w.Body.String())
	})

	t.Run("SyncEmpty", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/addtobag", `{"products":[]}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.carts.On("Remove", mock.Anything, int64(7), int64(3)).Return(cart.ErrCartItemNotFound)

		w := s.do(http.MethodPost, "/removefrombag", `{"productId":3}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Product not found in bag."}`, w.Body.String())
	})

	t.Run("Count", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.carts.On("Count", mock.Anything, int64(7)).Return(3, nil)

		w := s.do(http.MethodPost, "/cartCount", "", s.asCustomer(t, 7))
		assert.JSONEq(t, `{"count":3}`, w.Body.String())
	})
}

func TestHandler_CustomerOrders(t *testing.T) {
	s := newTestServer(t, nil)
	s.orders.On("CustomerOrders", mock.Anything, int64(7)).Return(nil, nil)

	w := s.do(http.MethodGet, "/orders", "", s.asCustomer(t, 7))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_StockAdjustments(t *testing.T) {
	t.Run("RequiresServiceKey", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/reduce-quantity", `{"products":[{"productId":1,"quantityToReduce":2}]}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Reduce", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.products.On("ReduceBatch", mock.Anything, []product.StockAdjustment{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 9},
		}).Return([]product.AdjustmentResult{
			{ProductID: 1, Message: product.MsgReduced},
			{ProductID: 2, Message: product.MsgInsufficientStock},
		}, nil)

		w := s.do(http.MethodPost, "/reduce-quantity",
			`{"products":[{"productId":1,"quantityToReduce":2},{"productId":2,"quantityToReduce":9}]}`, asService)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"results":[
			{"productId":1,"message":"Product quantity reduced successfully"},
			{"productId":2,"message":"Insufficient stock"}
		]}`, w.Body.String())
		assert.Equal(t, uint64(1), s.metrics.StockReductionsFailed.Load())
	})

	t.Run("Restore", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.products.On("RestoreBatch", mock.Anything, []product.StockAdjustment{{ProductID: 1, Quantity: 2}}).
			Return([]product.AdjustmentResult{{ProductID: 1, Message: product.MsgRestored}}, nil)

		w := s.do(http.MethodPost, "/restore-quantity", `{"products":[{"productId":1,"quantityToRestore":2}]}`, asService)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandler_AdminOrders(t *testing.T) {
	t.Run("UpdateMapsAdminFields", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("AdminUpdateOrder", mock.Anything, mock.MatchedBy(func(p order.AdminPatch) bool {
			return p.ID == 10 &&
				p.Customer.Mobile == "9999999999" &&
				p.Customer.PostalCode == "411001" &&
				p.Customer.City == "Pune" &&
				p.Status == order.StatusShipped &&
				p.TrackingID != nil && *p.TrackingID == "TRK123" &&
				p.Currency == money.INR &&
				len(p.Lines) == 1 && p.Lines[0].UnitPrice == 50000 &&
				p.Amount != nil && *p.Amount == 115000
		})).Return(&order.Order{ID: 10, Status: order.StatusShipped}, nil)

		w := s.do(http.MethodPost, "/order-update", `{
			"_id": 10,
			"customerDetails": {"city":"Pune","phoneNo":"9999999999","pincode":"411001","status":"Shipped","trackingId":"TRK123"},
			"products": [{"id":1,"quantity":2,"price":500}],
			"totals": {"grandTotal":1150},
			"currency": "INR"
		}`, s.asAdmin(t))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Shipped", decode(t, w)["status"])
	})

	t.Run("CustomerTokenRejected", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/order-update", `{"_id":10}`, s.asCustomer(t, 7))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UnsupportedCurrency", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/order-update", `{"_id":10,"currency":"EUR"}`, s.asAdmin(t))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("ListOrders", mock.Anything, order.ListFilter{Page: 2, Limit: 5, Currency: money.USD}).
			Return([]order.Order{}, int64(0), nil)

		w := s.do(http.MethodGet, "/manage-orders?page=2&limit=5&currency=usd", "", s.asAdmin(t))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"orders":[],"totalOrders":0}`, w.Body.String())
	})

	t.Run("DetailNotFound", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.orders.On("GetOrder", mock.Anything, int64(404)).Return(nil, order.ErrOrderNotFound)

		w := s.do(http.MethodGet, "/order-detail/404", "", s.asAdmin(t))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Order not found."}`, w.Body.String())
	})

	t.Run("Metrics", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.metrics.OrdersCreated.Inc()

		w := s.do(http.MethodGet, "/metrics", "", s.asAdmin(t))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decode(t, w)["orders_created_total"])
	})
}

func TestStatusFor(t *testing.T) {
	status, msg := statusFor(fmt.Errorf("wrapped: %w", order.ErrDuplicateProviderOrderID))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, order.ErrDuplicateProviderOrderID.Error(), msg)

	status, msg = statusFor(errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, msgInternal, msg)
}
