package customer

import (
	"errors"
	"fmt"
	"time"

	"wallfleur-be/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	customerTokenTTL = 2 * time.Hour
	adminTokenTTL    = 12 * time.Hour
)

type CustomClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// TokenIssuer signs and parses HS256 tokens for a single role.
type TokenIssuer struct {
	secret []byte
	role   Role
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, role Role, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), role: role, ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Generate(userID int64, email string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrMissingSecret
	}

	claims := CustomClaims{
		UserID: userID,
		Email:  email,
		Role:   t.role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(t.now()),
			ExpiresAt: jwt.NewNumericDate(t.now().Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates the signature, expiry and role of tokenStr.
func (t *TokenIssuer) Parse(tokenStr string) (*CustomClaims, error) {
	if len(t.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// Tokens issued before roles were embedded carry no role claim.
	if claims.Role != "" && claims.Role != t.role {
		return nil, ErrInvalidRole
	}

	return claims, nil
}

// Tokens groups the customer and admin issuers. They use separate secrets.
type Tokens struct {
	Customer *TokenIssuer
	Admin    *TokenIssuer
}

func NewTokens(cfg *config.Config) *Tokens {
	return &Tokens{
		Customer: NewTokenIssuer(cfg.CustomerJWTSecret, RoleCustomer, customerTokenTTL),
		Admin:    NewTokenIssuer(cfg.AdminJWTSecret, RoleAdmin, adminTokenTTL),
	}
}
