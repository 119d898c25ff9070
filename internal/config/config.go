package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort         = "8080"
	defaultDBDriver        = "postgres"
	defaultDBPort          = "5432"
	defaultRazorpayBaseURL = "https://api.razorpay.com"
	defaultPayPalBaseURL   = "https://api-m.sandbox.paypal.com"
	defaultPayPalBrand     = "Wallfleur"
	defaultSMTPHost        = "smtp.gmail.com"
	defaultSMTPPort        = 465
	defaultFeePolicy       = "tiered"
	defaultCartTTL         = 3 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultSweepBatch      = 100
	defaultShutdownTimeout = 10 * time.Second
	defaultGatewayTimeout  = 15 * time.Second
)

var ErrMissingDBHost = errors.New("environment variables not loaded properly: DB_HOST is empty")

type Config struct {
	AppEnv  string
	AppPort string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	CustomerJWTSecret string
	AdminJWTSecret    string
	InternalSecretKey string
	SessionSecret     string
	CookieSecure      bool
	CORSOrigins       []string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalBaseURL      string
	PayPalReturnURL    string
	PayPalCancelURL    string
	PayPalBrandName    string

	GatewayTimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Fee amounts and thresholds are major units (e.g. "4000", "129.99").
	FeePolicy            string
	DomesticFeeThreshold string
	DomesticFeeLow       string
	DomesticFeeHigh      string
	IntlFeeThreshold     string
	IntlFeeLow           string
	IntlFeeHigh          string
	FlatDeliveryFee      string

	CartTTL            time.Duration
	CartSweepInterval  time.Duration
	CartSweepBatchSize int

	ShutdownTimeout time.Duration
}

type envLookup func(string) (string, bool)

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(os.LookupEnv)
}

func load(lookup envLookup) (*Config, error) {
	cfg := &Config{
		AppEnv:  getString(lookup, "APP_ENV", "development"),
		AppPort: getString(lookup, "APP_PORT", defaultAppPort),

		DBDriver:   getString(lookup, "DB_DRIVER", defaultDBDriver),
		DBHost:     getString(lookup, "DB_HOST", ""),
		DBUser:     getString(lookup, "DB_USER", ""),
		DBPassword: getString(lookup, "DB_PASSWORD", ""),
		DBName:     getString(lookup, "DB_NAME", ""),
		DBPort:     getString(lookup, "DB_PORT", defaultDBPort),
		DBSSLMode:  getString(lookup, "DB_SSLMODE", "disable"),

		CustomerJWTSecret: getString(lookup, "SECRET_KEY", ""),
		AdminJWTSecret:    getString(lookup, "MANAGE_SECRET_KEY", ""),
		InternalSecretKey: getString(lookup, "INTERNAL_SECRET_KEY", ""),
		SessionSecret:     getString(lookup, "SESSION_SECRET", ""),
		CookieSecure:      getBool(lookup, "COOKIE_SECURE", false),
		CORSOrigins:       getList(lookup, "CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),

		RazorpayKeyID:     getString(lookup, "RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getString(lookup, "RAZORPAY_SECRET", ""),
		RazorpayBaseURL:   getString(lookup, "RAZORPAY_BASE_URL", defaultRazorpayBaseURL),

		PayPalClientID:     getString(lookup, "PAYPAL_CLIENT_ID", ""),
		PayPalClientSecret: getString(lookup, "PAYPAL_CLIENT_SECRET", ""),
		PayPalBaseURL:      getString(lookup, "PAYPAL_API", defaultPayPalBaseURL),
		PayPalReturnURL:    getString(lookup, "PAYPAL_RETURN_URL", ""),
		PayPalCancelURL:    getString(lookup, "PAYPAL_CANCEL_URL", ""),
		PayPalBrandName:    getString(lookup, "PAYPAL_BRAND_NAME", defaultPayPalBrand),

		GatewayTimeout: getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),

		SMTPHost:     getString(lookup, "SMTP_HOST", defaultSMTPHost),
		SMTPPort:     getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUser:     getString(lookup, "EMAIL_USER", ""),
		SMTPPassword: getString(lookup, "EMAIL_PASS", ""),
		SMTPFrom:     getString(lookup, "EMAIL_FROM", ""),

		FeePolicy:            getString(lookup, "DELIVERY_FEE_POLICY", defaultFeePolicy),
		DomesticFeeThreshold: getString(lookup, "DOMESTIC_FEE_THRESHOLD", "4000"),
		DomesticFeeLow:       getString(lookup, "DOMESTIC_FEE_LOW", "150"),
		DomesticFeeHigh:      getString(lookup, "DOMESTIC_FEE_HIGH", "350"),
		IntlFeeThreshold:     getString(lookup, "INTL_FEE_THRESHOLD", "130"),
		IntlFeeLow:           getString(lookup, "INTL_FEE_LOW", "20"),
		IntlFeeHigh:          getString(lookup, "INTL_FEE_HIGH", "35"),
		FlatDeliveryFee:      getString(lookup, "FLAT_DELIVERY_FEE", "500"),

		CartTTL:            getDuration(lookup, "CART_TTL", defaultCartTTL),
		CartSweepInterval:  getDuration(lookup, "CART_SWEEP_INTERVAL", defaultSweepInterval),
		CartSweepBatchSize: getInt(lookup, "CART_SWEEP_BATCH", defaultSweepBatch),

		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	if cfg.DBHost == "" && cfg.DBDriver != "sqlite" {
		return nil, ErrMissingDBHost
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func getBool(lookup envLookup, key string, def bool) bool {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// getDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func getList(lookup envLookup, key string, def []string) []string {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
