package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
	"papertrade/internal/models"
	"papertrade/internal/storage"
)

// userService handles signup and credential checks.
type userService struct {
	store          storage.LedgerStore
	initialBalance decimal.Decimal
	cost           int
}

// NewUserService creates a new UserServicer. New accounts open with initialBalance.
func NewUserService(store storage.LedgerStore, initialBalance decimal.Decimal) UserServicer {
	return &userService{store: store, initialBalance: initialBalance, cost: bcrypt.DefaultCost}
}

// Signup registers a new account with an empty portfolio.
func (s *userService) Signup(ctx context.Context, username, password, confirmPassword string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}
	if password != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	acct := models.NewAccount(username, string(hashedPassword), models.NewPortfolio(s.initialBalance), time.Now().UTC())
	if err := s.store.Create(ctx, acct); err != nil {
		return nil, storeError(err)
	}

	logger.Get().Infow("account created", "username", username, "backend", s.store.Name())
	return acct, nil
}

// Authenticate verifies credentials. Unknown users and wrong passwords
// produce the same error.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	acct, err := s.store.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, storeError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return acct, nil
}

// GetAccount loads an account by username.
func (s *userService) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	acct, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, storeError(err)
	}
	return acct, nil
}

// storeError passes application errors through and turns anything else
// coming out of a store into a persistence failure.
func storeError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrPersistence, err)
}
