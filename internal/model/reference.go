package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reference type tags used by mutation reference lookups.
const (
	ReferenceTypeWithdraw = "withdraw"
	ReferenceTypeDonation = "donation"
)

// Withdraw is an external payout request that a checkout may reference.
// The checkout never owns it; the link is a weak (type tag, id) lookup.
type Withdraw struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	RequesterName string          `json:"requester_name" gorm:"size:255;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(15,0);not null"`
	Description   *string         `json:"description,omitempty" gorm:"size:500"`
	Payable       `gorm:"embedded"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (w *Withdraw) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Donation is an external incoming gift that a checkin may reference.
type Donation struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	DonorName string          `json:"donor_name" gorm:"size:255;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(15,0);not null"`
	Message   *string         `json:"message,omitempty" gorm:"size:500"`
	Payable   `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
