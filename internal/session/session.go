package session

import (
	"errors"
	"net/http"
	"time"

	"wallfleur-be/internal/config"
	"wallfleur-be/internal/pricing"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "region"
	cookieTTL  = 24 * time.Hour
)

var ErrMissingSecret = errors.New("session secret is not configured")

type regionClaims struct {
	IsInternational bool `json:"is_international"`
	jwt.RegisteredClaims
}

// Manager signs the region cookie that selects domestic or international pricing.
type Manager struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewManager falls back to the customer JWT secret when SESSION_SECRET is unset.
func NewManager(cfg *config.Config) *Manager {
	secret := cfg.SessionSecret
	if secret == "" {
		secret = cfg.CustomerJWTSecret
	}
	return &Manager{secret: []byte(secret), secure: cfg.CookieSecure, now: time.Now}
}

func (m *Manager) Issue(international bool) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}
	claims := regionClaims{
		IsInternational: international,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(m.now().Add(cookieTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// IsInternational reports the flag carried by token. Any parse failure is
// treated as domestic.
func (m *Manager) IsInternational(token string) bool {
	if token == "" || len(m.secret) == 0 {
		return false
	}
	parsed, err := jwt.ParseWithClaims(token, &regionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(*regionClaims)
	return ok && claims.IsInternational
}

func (m *Manager) Region(r *http.Request) pricing.Region {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return pricing.Domestic
	}
	return pricing.RegionFromFlag(m.IsInternational(cookie.Value))
}

// SetRegion issues a fresh region cookie on w.
func (m *Manager) SetRegion(w http.ResponseWriter, international bool) error {
	token, err := m.Issue(international)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
