package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/cache"
	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/repository"
)

const accountCacheTTL = 5 * time.Minute

// AccountService handles payment-account operations.
type AccountService interface {
	CreateAccount(ctx context.Context, account *model.Account, bank *model.DirectBankTransfer) error
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetBankDetail(ctx context.Context, id uuid.UUID) (*model.DirectBankTransfer, error)
	GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	SeedAccounts(ctx context.Context, accounts []model.Account) (int, error)
}

type accountService struct {
	repo  repository.AccountRepository
	cache *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.AccountRepository, cache *cache.Client) AccountService {
	return &accountService{
		repo:  repo,
		cache: cache,
	}
}

func (s *accountService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s", id.String())
}

// CreateAccount creates a payment account with a zero balance, together
// with its variant detail row when one is given.
func (s *accountService) CreateAccount(ctx context.Context, account *model.Account, bank *model.DirectBankTransfer) error {
	account.Balance = decimal.Zero
	if bank != nil {
		account.Kind = model.AccountKindDirectBankTransfer
	}

	return s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		if err := repo.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		if bank != nil {
			bank.AccountID = account.ID
			if err := repo.CreateBankDetail(ctx, bank); err != nil {
				return fmt.Errorf("create bank detail: %w", err)
			}
		}
		return nil
	})
}

// GetAccount retrieves an account by ID with caching.
func (s *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}

	// Cache the result
	if payload, err := json.Marshal(account); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, accountCacheTTL)
	}

	return account, nil
}

// GetBankDetail retrieves the direct-bank-transfer detail of an account.
func (s *accountService) GetBankDetail(ctx context.Context, id uuid.UUID) (*model.DirectBankTransfer, error) {
	detail, err := s.repo.FindBankDetail(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	return detail, nil
}

// GetBalance retrieves the current balance of an account.
func (s *accountService) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		if err == errors.ErrAccountNotFound {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("get account: %w", err)
	}
	return account.Balance, nil
}

// ListAccounts lists all payment accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.repo.List(ctx)
}

// DeleteAccount removes an account. Deletion is rejected while any
// mutation still references it; the account is left unchanged.
func (s *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}

		count, err := repo.CountMutations(ctx, id)
		if err != nil {
			return fmt.Errorf("count mutations: %w", err)
		}
		if count > 0 {
			return errors.ErrAccountHasMutations
		}

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// SeedAccounts creates or updates accounts from external data.
func (s *accountService) SeedAccounts(ctx context.Context, accounts []model.Account) (int, error) {
	count := 0
	for _, account := range accounts {
		existing, err := s.repo.FindByID(ctx, account.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return count, fmt.Errorf("seed account %s: %w", account.ID, err)
		}

		if existing != nil {
			existing.Name = account.Name
			existing.AccountName = account.AccountName
			existing.AccountNumber = account.AccountNumber
			existing.AcceptsCheckin = account.AcceptsCheckin
			existing.AcceptsCheckout = account.AcceptsCheckout
			if err := s.repo.Update(ctx, existing); err != nil {
				return count, fmt.Errorf("update account %s: %w", account.ID, err)
			}
		} else {
			account.Balance = decimal.Zero
			if err := s.repo.Create(ctx, &account); err != nil {
				return count, fmt.Errorf("create account %s: %w", account.ID, err)
			}
		}

		// Invalidate cache
		_ = s.cache.Delete(ctx, s.cacheKey(account.ID))
		count++
	}
	return count, nil
}
