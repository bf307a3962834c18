package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cashflow/internal/model"
)

// ReferenceRepository persists the external objects mutations may weakly
// reference: withdraws (checkouts) and donations (checkins).
type ReferenceRepository interface {
	CreateWithdraw(ctx context.Context, w *model.Withdraw) error
	FindWithdraw(ctx context.Context, id uuid.UUID) (*model.Withdraw, error)
	MarkWithdrawPaid(ctx context.Context, id uuid.UUID) error
	CreateDonation(ctx context.Context, d *model.Donation) error
	FindDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	MarkDonationPaid(ctx context.Context, id uuid.UUID) error
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new reference repository.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// CreateWithdraw creates a withdraw record.
func (r *referenceRepository) CreateWithdraw(ctx context.Context, w *model.Withdraw) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// FindWithdraw finds a withdraw by ID.
func (r *referenceRepository) FindWithdraw(ctx context.Context, id uuid.UUID) (*model.Withdraw, error) {
	var w model.Withdraw
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// MarkWithdrawPaid settles a withdraw record.
func (r *referenceRepository) MarkWithdrawPaid(ctx context.Context, id uuid.UUID) error {
	var w model.Withdraw
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return err
	}
	w.MakePaid(time.Now())
	return r.db.WithContext(ctx).Save(&w).Error
}

// CreateDonation creates a donation record.
func (r *referenceRepository) CreateDonation(ctx context.Context, d *model.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// FindDonation finds a donation by ID.
func (r *referenceRepository) FindDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var d model.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkDonationPaid settles a donation record.
func (r *referenceRepository) MarkDonationPaid(ctx context.Context, id uuid.UUID) error {
	var d model.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return err
	}
	d.MakePaid(time.Now())
	return r.db.WithContext(ctx).Save(&d).Error
}
