package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountKind discriminates concrete payment-account variants.
type AccountKind string

const (
	// AccountKindDirectBankTransfer is a bank account reached by direct transfer.
	AccountKindDirectBankTransfer AccountKind = "direct_bank_transfer"
)

// Account represents a payment account holding a running balance.
// Balance is denormalized: it mirrors the balance of the latest mutation
// recorded against the account and is written only by the ledger refresh
// step, never directly.
type Account struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Kind            AccountKind     `json:"kind" gorm:"type:varchar(30);not null;index"`
	Name            string          `json:"name" gorm:"size:255;not null;index"`
	AccountName     string          `json:"account_name" gorm:"size:150;not null"`
	AccountNumber   string          `json:"account_number" gorm:"size:50;not null"`
	AcceptsCheckin  bool            `json:"accepts_checkin" gorm:"default:true"`
	AcceptsCheckout bool            `json:"accepts_checkout" gorm:"default:true"`
	Balance         decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	ModifiedAt      time.Time       `json:"modified_at"`
}

// TableName overrides the default table name.
func (Account) TableName() string {
	return "payment_accounts"
}

// BeforeCreate sets UUID and the initial modification time before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ModifiedAt.IsZero() {
		a.ModifiedAt = time.Now()
	}
	return nil
}

// DirectBankTransfer carries the bank-specific fields of a payment account.
// It shares its identity key with the base Account row.
type DirectBankTransfer struct {
	AccountID    uuid.UUID `json:"account_id" gorm:"type:char(36);primaryKey"`
	BankName     string    `json:"bank_name" gorm:"size:150;not null"`
	BranchOffice *string   `json:"branch_office,omitempty" gorm:"size:150"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (DirectBankTransfer) TableName() string {
	return "direct_bank_transfers"
}
