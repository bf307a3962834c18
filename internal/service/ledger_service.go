package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/cache"
	"cashflow/internal/errors"
	"cashflow/internal/model"
	"cashflow/internal/numerator"
	"cashflow/internal/repository"
)

// EditPolicy governs edits to a mutation that is no longer the latest of
// its account. Rewriting a past mutation changes every balance derived
// after it, so the engine either refuses the edit or recomputes the whole
// tail of the stream.
type EditPolicy string

const (
	// EditPolicyReject refuses edits to non-latest mutations.
	EditPolicyReject EditPolicy = "reject"
	// EditPolicyCascade recomputes all later mutations of the account.
	EditPolicyCascade EditPolicy = "cascade"
)

// ParseEditPolicy maps a config string to an EditPolicy, defaulting to reject.
func ParseEditPolicy(s string) EditPolicy {
	if EditPolicy(s) == EditPolicyCascade {
		return EditPolicyCascade
	}
	return EditPolicyReject
}

// LedgerService owns the mutation save protocol: every create, edit and
// verification of a checkin or checkout routes through it. It recomputes
// old_balance/balance from the account's mutation stream and keeps the
// account's denormalized balance in sync, all inside one transaction.
type LedgerService interface {
	CreateCheckin(ctx context.Context, c *model.Checkin) error
	CreateCheckout(ctx context.Context, c *model.Checkout) error
	UpdateEntry(ctx context.Context, entry model.Entry) error
	VerifyMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error)
	GetMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error)
	GetEntry(ctx context.Context, id uuid.UUID) (model.Entry, error)
	ListMutations(ctx context.Context, accountID *uuid.UUID) ([]model.Mutation, error)
	GetReference(ctx context.Context, id uuid.UUID) (interface{}, error)
}

type ledgerService struct {
	repo       repository.LedgerRepository
	sequence   numerator.Generator
	resolver   ReferenceResolver
	cache      *cache.Client
	editPolicy EditPolicy
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	repo repository.LedgerRepository,
	sequence numerator.Generator,
	resolver ReferenceResolver,
	cache *cache.Client,
	editPolicy EditPolicy,
) LedgerService {
	return &ledgerService{
		repo:       repo,
		sequence:   sequence,
		resolver:   resolver,
		cache:      cache,
		editPolicy: editPolicy,
	}
}

// CreateCheckin records money entering an account.
func (s *ledgerService) CreateCheckin(ctx context.Context, c *model.Checkin) error {
	return s.saveEntry(ctx, c, true)
}

// CreateCheckout records money leaving an account.
func (s *ledgerService) CreateCheckout(ctx context.Context, c *model.Checkout) error {
	return s.saveEntry(ctx, c, true)
}

// UpdateEntry re-runs the save protocol for an edited mutation.
func (s *ledgerService) UpdateEntry(ctx context.Context, entry model.Entry) error {
	return s.saveEntry(ctx, entry, false)
}

// VerifyMutation marks a mutation verified and re-runs the save protocol,
// which also refreshes the owning account's balance. Re-verifying an
// already verified mutation recomputes balances but keeps the original
// verification time.
func (s *ledgerService) VerifyMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	m := entry.Base()
	if !m.IsVerified {
		now := time.Now()
		m.IsVerified = true
		m.VerifiedAt = &now
	}

	if err := s.saveEntry(ctx, entry, false); err != nil {
		return nil, err
	}
	return m, nil
}

// saveEntry is the shared save protocol. Steps, atomic under one
// transaction with the account row locked:
//  1. snapshot old_balance from the predecessor mutation's balance
//  2. recompute amount via the variant's GetAmount
//  3. balance = old_balance +/- amount per flow
//  4. persist the mutation and its variant detail
//  5. on first creation only, assign the sequential reference code
//  6. refresh the account: copy the resulting balance, stamp modified_at
func (s *ledgerService) saveEntry(ctx context.Context, entry model.Entry, isNew bool) error {
	m := entry.Base()
	// Flow is a variant constant, never taken from input.
	m.Flow = entry.FlowDirection()

	amount, err := entry.GetAmount()
	if err != nil {
		return err
	}
	if amount.LessThan(model.MinimumAmount) {
		return errors.ErrAmountBelowMinimum
	}

	// The stream position (created_at, id) must be fixed before the
	// predecessor lookup so the id tie-break works for same-second rows.
	if isNew {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
	}

	txErr := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.LedgerRepository) error {
		account, err := repo.FindAccountForUpdate(ctx, m.AccountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return fmt.Errorf("lock account: %w", err)
		}

		if isNew {
			if m.Flow == model.FlowIn && !account.AcceptsCheckin {
				return errors.ErrCheckinNotAccepted
			}
			if m.Flow == model.FlowOut && !account.AcceptsCheckout {
				return errors.ErrCheckoutNotAccepted
			}
		}

		if !isNew && s.editPolicy == EditPolicyReject {
			latest, err := repo.LatestMutation(ctx, m.AccountID)
			if err != nil {
				return fmt.Errorf("find latest mutation: %w", err)
			}
			if latest.ID != m.ID {
				return errors.ErrStaleMutation
			}
		}

		prior := decimal.Zero
		prev, err := repo.PreviousMutation(ctx, m.AccountID, m.CreatedAt, m.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find previous mutation: %w", err)
		}
		if prev != nil {
			prior = prev.Balance
		}

		m.OldBalance = prior
		m.Amount = amount
		m.Balance = applyFlow(prior, amount, m.Flow)

		if isNew {
			if m.InnerID == "" {
				code, err := s.sequence.Next(ctx, sequenceScope(m.Flow))
				if err != nil {
					return fmt.Errorf("next reference code: %w", err)
				}
				m.InnerID = code
			}
			if err := repo.CreateMutation(ctx, m); err != nil {
				return fmt.Errorf("create mutation: %w", err)
			}
		} else {
			if err := repo.UpdateMutation(ctx, m); err != nil {
				return fmt.Errorf("update mutation: %w", err)
			}
		}

		if err := s.saveVariant(ctx, repo, entry, isNew); err != nil {
			return err
		}

		final := m.Balance
		if !isNew && s.editPolicy == EditPolicyCascade {
			final, err = s.recomputeTail(ctx, repo, m)
			if err != nil {
				return err
			}
		}

		return repo.RefreshAccount(ctx, account.ID, final)
	})
	if txErr != nil {
		return txErr
	}

	_ = s.cache.Delete(ctx, fmt.Sprintf("account:%s", m.AccountID.String()))
	return nil
}

// saveVariant persists the flow-specific detail row.
func (s *ledgerService) saveVariant(ctx context.Context, repo repository.LedgerRepository, entry model.Entry, isNew bool) error {
	switch v := entry.(type) {
	case *model.Checkin:
		v.MutationID = v.Mutation.ID
		if isNew {
			if err := repo.CreateCheckin(ctx, v); err != nil {
				return fmt.Errorf("create checkin detail: %w", err)
			}
			return nil
		}
		if err := repo.UpdateCheckin(ctx, v); err != nil {
			return fmt.Errorf("update checkin detail: %w", err)
		}
		return nil
	case *model.Checkout:
		v.MutationID = v.Mutation.ID
		if isNew {
			if err := repo.CreateCheckout(ctx, v); err != nil {
				return fmt.Errorf("create checkout detail: %w", err)
			}
			return nil
		}
		if err := repo.UpdateCheckout(ctx, v); err != nil {
			return fmt.Errorf("update checkout detail: %w", err)
		}
		return nil
	default:
		return errors.ErrNotImplemented
	}
}

// recomputeTail replays every mutation after the edited one, rolling the
// running balance forward, and returns the final balance of the stream.
func (s *ledgerService) recomputeTail(ctx context.Context, repo repository.LedgerRepository, m *model.Mutation) (decimal.Decimal, error) {
	later, err := repo.MutationsAfter(ctx, m.AccountID, m.CreatedAt, m.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list later mutations: %w", err)
	}

	running := m.Balance
	for i := range later {
		mu := &later[i]
		mu.OldBalance = running
		mu.Balance = applyFlow(running, mu.Amount, mu.Flow)
		if err := repo.UpdateMutation(ctx, mu); err != nil {
			return decimal.Zero, fmt.Errorf("recompute mutation %s: %w", mu.InnerID, err)
		}
		running = mu.Balance
	}
	return running, nil
}

// GetMutation finds a mutation by ID.
func (s *ledgerService) GetMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error) {
	m, err := s.repo.FindMutation(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMutationNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetEntry loads a mutation together with its variant detail.
func (s *ledgerService) GetEntry(ctx context.Context, id uuid.UUID) (model.Entry, error) {
	m, err := s.GetMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	switch m.Flow {
	case model.FlowIn:
		c, err := s.repo.FindCheckin(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("find checkin detail: %w", err)
		}
		return c, nil
	case model.FlowOut:
		c, err := s.repo.FindCheckout(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("find checkout detail: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown flow %q", m.Flow)
	}
}

// ListMutations lists mutations, newest first, optionally for one account.
func (s *ledgerService) ListMutations(ctx context.Context, accountID *uuid.UUID) ([]model.Mutation, error) {
	return s.repo.ListMutations(ctx, accountID)
}

// GetReference resolves the external object a mutation represents through
// the reference resolver. Returns (nil, nil) when the mutation carries no
// reference or the lookup misses.
func (s *ledgerService) GetReference(ctx context.Context, id uuid.UUID) (interface{}, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	var typeTag, objectID *string
	switch v := entry.(type) {
	case *model.Checkin:
		typeTag, objectID = v.ReferenceType, v.ReferenceID
	case *model.Checkout:
		typeTag, objectID = v.ReferenceType, v.ReferenceID
	}
	if typeTag == nil || objectID == nil {
		return nil, nil
	}
	return s.resolver.Resolve(ctx, *typeTag, *objectID)
}

// applyFlow signs an amount onto a balance.
func applyFlow(balance, amount decimal.Decimal, flow model.Flow) decimal.Decimal {
	if flow == model.FlowOut {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// sequenceScope maps a flow to its numerator scope.
func sequenceScope(flow model.Flow) string {
	if flow == model.FlowOut {
		return numerator.ScopeCheckout
	}
	return numerator.ScopeCheckin
}
