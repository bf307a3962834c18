package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"cashflow/internal/errors"
)

func TestBaseMutationHasNoAmountRule(t *testing.T) {
	m := &Mutation{Amount: decimal.NewFromInt(10000)}

	amount, err := m.GetAmount()

	assert.Equal(t, errors.ErrNotImplemented, err)
	assert.True(t, amount.IsZero())
}

func TestVariantFlowsAreFixed(t *testing.T) {
	checkin := &Checkin{Mutation: Mutation{Flow: FlowOut}}
	checkout := &Checkout{Mutation: Mutation{Flow: FlowIn}}

	assert.Equal(t, FlowIn, checkin.FlowDirection())
	assert.Equal(t, FlowOut, checkout.FlowDirection())
}

func TestVariantAmountPassThrough(t *testing.T) {
	amount := decimal.NewFromInt(25000)
	checkin := &Checkin{Mutation: Mutation{Amount: amount}}

	got, err := checkin.GetAmount()

	assert.NoError(t, err)
	assert.True(t, got.Equal(amount))
}

func TestPayableMakePaid(t *testing.T) {
	now := time.Now()
	w := &Withdraw{}

	w.MakePaid(now)

	assert.True(t, w.IsPaid)
	assert.Equal(t, now, *w.PaidAt)
}
