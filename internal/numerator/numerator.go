// Package numerator issues the sequential reference codes assigned to
// mutations at creation. Codes are unique and monotonic within a scope,
// with a per-month counter: <SCOPE><yyyymm><counter>, e.g. CI20260800001.
package numerator

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scopes used by the ledger.
const (
	ScopeCheckin  = "CI"
	ScopeCheckout = "CO"
)

// Sequence is a per-scope, per-period counter row.
type Sequence struct {
	ID      uint   `gorm:"primaryKey"`
	Scope   string `gorm:"size:10;not null;uniqueIndex:idx_numerator_scope_period"`
	Period  string `gorm:"size:6;not null;uniqueIndex:idx_numerator_scope_period"`
	Counter int64  `gorm:"not null;default:0"`
}

// TableName overrides the default table name.
func (Sequence) TableName() string {
	return "numerator_sequences"
}

// Generator issues reference codes.
type Generator interface {
	Next(ctx context.Context, scope string) (string, error)
}

type gormGenerator struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a GORM-backed generator.
func New(db *gorm.DB) Generator {
	return &gormGenerator{db: db, now: time.Now}
}

// Next increments the counter for the scope's current period and returns
// the formatted code. The counter row is locked for the duration of the
// increment so concurrent issuers never share a number.
func (g *gormGenerator) Next(ctx context.Context, scope string) (string, error) {
	period := g.now().Format("200601")
	var code string

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Concurrent issuers may race to create a period's first row; the
		// insert ignores the loser and the locked read sees the winner's row.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Sequence{Scope: scope, Period: period}).Error; err != nil {
			return fmt.Errorf("ensure sequence %s/%s: %w", scope, period, err)
		}

		var seq Sequence
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("scope = ? AND period = ?", scope, period).First(&seq).Error; err != nil {
			return fmt.Errorf("lock sequence %s/%s: %w", scope, period, err)
		}

		seq.Counter++
		if err := tx.Model(&Sequence{}).Where("id = ?", seq.ID).
			Update("counter", seq.Counter).Error; err != nil {
			return fmt.Errorf("increment sequence %s/%s: %w", scope, period, err)
		}

		code = Format(scope, period, seq.Counter)
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// Format renders a reference code from its parts.
func Format(scope, period string, counter int64) string {
	return fmt.Sprintf("%s%s%05d", scope, period, counter)
}
