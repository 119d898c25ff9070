package customer

import (
	"context"
	"errors"
	"strings"

	"wallfleur-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, email, password string) (string, *Customer, error)
	// FindVerified returns the customer only when active and verified.
	FindVerified(ctx context.Context, id int64) (*Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
}

type service struct {
	repo   Repository
	tokens *Tokens
}

func NewService(repo Repository, tokens *Tokens) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	c, err := s.repo.FindActiveByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			log.Info("login for unknown or inactive customer")
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, c.PasswordHash) {
		log.Info("password not match", zap.Int64("customer_id", c.ID))
		return "", nil, ErrIncorrectPassword
	}

	token, err := s.tokens.Customer.Generate(c.ID, c.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("customer_id", c.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("login completed", zap.Int64("customer_id", c.ID))
	return token, c, nil
}

func (s *service) FindVerified(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.FindActiveByID(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}
