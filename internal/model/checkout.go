package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Checkout records money leaving a payment account. It shares its identity
// key with the base Mutation row and may weakly reference the withdraw it
// represents.
type Checkout struct {
	MutationID    uuid.UUID `json:"mutation_id" gorm:"type:char(36);primaryKey"`
	AccountName   string    `json:"account_name" gorm:"size:255;not null"`
	AccountNumber string    `json:"account_number" gorm:"size:255;not null"`
	ProviderName  string    `json:"provider_name" gorm:"size:255;not null"`
	ReferenceType *string   `json:"reference_type,omitempty" gorm:"size:50"`
	ReferenceID   *string   `json:"reference_id,omitempty" gorm:"size:100"`

	Mutation Mutation `json:"mutation" gorm:"foreignKey:MutationID;constraint:OnDelete:CASCADE"`
}

// Base returns the shared mutation row.
func (c *Checkout) Base() *Mutation {
	return &c.Mutation
}

// FlowDirection is fixed to OUT for checkouts.
func (c *Checkout) FlowDirection() Flow {
	return FlowOut
}

// GetAmount returns the requested amount unchanged.
func (c *Checkout) GetAmount() (decimal.Decimal, error) {
	return c.Mutation.Amount, nil
}
