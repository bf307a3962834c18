package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/errors"
)

// Flow is the direction of a mutation: IN credits the account, OUT debits it.
type Flow string

const (
	FlowIn  Flow = "IN"
	FlowOut Flow = "OUT"
)

// MinimumAmount is the smallest amount a mutation may carry.
var MinimumAmount = decimal.NewFromInt(10000)

// Mutation is a single signed balance-changing event against one account.
// OldBalance and Balance are computed by the ledger save protocol, never
// supplied by callers. InnerID is assigned exactly once at creation.
type Mutation struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	InnerID         string          `json:"inner_id" gorm:"size:30;uniqueIndex"`
	Flow            Flow            `json:"flow" gorm:"type:varchar(3);not null;index"`
	OwnerID         *uint           `json:"owner_id,omitempty" gorm:"index"`
	AccountID       uuid.UUID       `json:"account_id" gorm:"type:char(36);not null;index"`
	TransferReceipt *string         `json:"transfer_receipt,omitempty" gorm:"size:255"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(15,0);not null"`
	OldBalance      decimal.Decimal `json:"old_balance" gorm:"type:decimal(15,2);not null;default:0"`
	Balance         decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);not null;default:0"`
	Note            *string         `json:"note,omitempty" gorm:"size:500"`
	IsVerified      bool            `json:"is_verified" gorm:"default:false;index"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	// Relations
	Owner   *User   `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Mutation) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// GetAmount returns the amount to charge for a save. The base mutation has
// no charging rule; every concrete variant must override it.
func (m *Mutation) GetAmount() (decimal.Decimal, error) {
	return decimal.Zero, errors.ErrNotImplemented
}

// Entry is implemented by concrete mutation variants. The ledger engine
// works exclusively through it: the base row plus the variant's fixed flow
// and amount rule.
type Entry interface {
	// Base returns the shared mutation row.
	Base() *Mutation
	// FlowDirection returns the variant's fixed flow constant.
	FlowDirection() Flow
	// GetAmount returns the amount to charge for this save.
	GetAmount() (decimal.Decimal, error)
}
