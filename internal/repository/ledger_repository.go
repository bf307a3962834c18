package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashflow/internal/model"
)

// LedgerRepository aggregates the rows touched by a mutation save: the
// account row, the mutation stream, and the variant detail tables. The
// save protocol runs every write through WithTransaction so a failed
// persist leaves no partial balance state.
type LedgerRepository interface {
	FindAccountForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error)
	RefreshAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	CreateMutation(ctx context.Context, m *model.Mutation) error
	UpdateMutation(ctx context.Context, m *model.Mutation) error
	FindMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error)
	LatestMutation(ctx context.Context, accountID uuid.UUID) (*model.Mutation, error)
	PreviousMutation(ctx context.Context, accountID uuid.UUID, before time.Time, beforeID uuid.UUID) (*model.Mutation, error)
	MutationsAfter(ctx context.Context, accountID uuid.UUID, after time.Time, afterID uuid.UUID) ([]model.Mutation, error)
	ListMutations(ctx context.Context, accountID *uuid.UUID) ([]model.Mutation, error)

	CreateCheckin(ctx context.Context, c *model.Checkin) error
	CreateCheckout(ctx context.Context, c *model.Checkout) error
	UpdateCheckin(ctx context.Context, c *model.Checkin) error
	UpdateCheckout(ctx context.Context, c *model.Checkout) error
	FindCheckin(ctx context.Context, mutationID uuid.UUID) (*model.Checkin, error)
	FindCheckout(ctx context.Context, mutationID uuid.UUID) (*model.Checkout, error)

	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LedgerRepository) error) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// FindAccountForUpdate finds an account by ID with a row-level lock,
// serializing concurrent saves against the same account.
func (r *ledgerRepository) FindAccountForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// RefreshAccount copies the latest mutation balance into the account row
// and stamps its modification time.
func (r *ledgerRepository) RefreshAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":     balance,
			"modified_at": time.Now(),
		}).Error
}

// CreateMutation creates a new mutation row.
func (r *ledgerRepository) CreateMutation(ctx context.Context, m *model.Mutation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

// UpdateMutation updates an existing mutation row.
func (r *ledgerRepository) UpdateMutation(ctx context.Context, m *model.Mutation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

// FindMutation finds a mutation by ID.
func (r *ledgerRepository) FindMutation(ctx context.Context, id uuid.UUID) (*model.Mutation, error) {
	var m model.Mutation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// LatestMutation returns the newest mutation for an account. Returns
// gorm.ErrRecordNotFound when the account has no mutations.
func (r *ledgerRepository) LatestMutation(ctx context.Context, accountID uuid.UUID) (*model.Mutation, error) {
	var m model.Mutation
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// PreviousMutation returns the mutation immediately preceding the given
// position in an account's creation order. Returns gorm.ErrRecordNotFound
// when there is none.
func (r *ledgerRepository) PreviousMutation(ctx context.Context, accountID uuid.UUID, before time.Time, beforeID uuid.UUID) (*model.Mutation, error) {
	var m model.Mutation
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND (created_at < ? OR (created_at = ? AND id < ?))",
			accountID, before, before, beforeID).
		Order("created_at DESC, id DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MutationsAfter returns an account's mutations following the given
// position in creation order, oldest first. Used by the cascade recompute
// path.
func (r *ledgerRepository) MutationsAfter(ctx context.Context, accountID uuid.UUID, after time.Time, afterID uuid.UUID) ([]model.Mutation, error) {
	var ms []model.Mutation
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND (created_at > ? OR (created_at = ? AND id > ?))",
			accountID, after, after, afterID).
		Order("created_at, id").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// ListMutations lists mutations, newest first, optionally filtered by account.
func (r *ledgerRepository) ListMutations(ctx context.Context, accountID *uuid.UUID) ([]model.Mutation, error) {
	var ms []model.Mutation
	q := r.db.WithContext(ctx)
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// CreateCheckin creates a checkin detail row.
func (r *ledgerRepository) CreateCheckin(ctx context.Context, c *model.Checkin) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// CreateCheckout creates a checkout detail row.
func (r *ledgerRepository) CreateCheckout(ctx context.Context, c *model.Checkout) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// UpdateCheckin updates a checkin detail row.
func (r *ledgerRepository) UpdateCheckin(ctx context.Context, c *model.Checkin) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// UpdateCheckout updates a checkout detail row.
func (r *ledgerRepository) UpdateCheckout(ctx context.Context, c *model.Checkout) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// FindCheckin finds a checkin with its base mutation by mutation ID.
func (r *ledgerRepository) FindCheckin(ctx context.Context, mutationID uuid.UUID) (*model.Checkin, error) {
	var c model.Checkin
	if err := r.db.WithContext(ctx).Preload("Mutation").
		Where("mutation_id = ?", mutationID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCheckout finds a checkout with its base mutation by mutation ID.
func (r *ledgerRepository) FindCheckout(ctx context.Context, mutationID uuid.UUID) (*model.Checkout, error) {
	var c model.Checkout
	if err := r.db.WithContext(ctx).Preload("Mutation").
		Where("mutation_id = ?", mutationID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// WithTransaction executes a function within a database transaction.
func (r *ledgerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ledgerRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
