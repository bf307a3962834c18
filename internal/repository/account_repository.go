package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashflow/internal/model"
)

// AccountRepository defines payment-account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountMutations(ctx context.Context, id uuid.UUID) (int64, error)
	CreateBankDetail(ctx context.Context, detail *model.DirectBankTransfer) error
	FindBankDetail(ctx context.Context, accountID uuid.UUID) (*model.DirectBankTransfer, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new payment account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an existing payment account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindByID finds a payment account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List lists all payment accounts.
func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("created_at").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Delete removes a payment account and its variant detail row.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", id).Delete(&model.DirectBankTransfer{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Account{}).Error
}

// CountMutations counts the mutations referencing an account.
func (r *accountRepository) CountMutations(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Mutation{}).
		Where("account_id = ?", id).Count(&count).Error
	return count, err
}

// CreateBankDetail creates the direct-bank-transfer detail row for an account.
func (r *accountRepository) CreateBankDetail(ctx context.Context, detail *model.DirectBankTransfer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(detail).Error
}

// FindBankDetail finds the direct-bank-transfer detail row for an account.
func (r *accountRepository) FindBankDetail(ctx context.Context, accountID uuid.UUID) (*model.DirectBankTransfer, error) {
	var detail model.DirectBankTransfer
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// WithTransaction executes a function within a database transaction.
func (r *accountRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &accountRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
