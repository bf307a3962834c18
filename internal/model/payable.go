package model

import "time"

// Payable adds payment-settlement state to a record. Embedded by entities
// that can be settled, such as withdraws and donations.
type Payable struct {
	PaidAt *time.Time `json:"paid_at,omitempty"`
	IsPaid bool       `json:"is_paid" gorm:"default:false"`
}

// MakePaid marks the record as settled at the given time. Persisting the
// change is up to the caller.
func (p *Payable) MakePaid(now time.Time) {
	p.PaidAt = &now
	p.IsPaid = true
}
