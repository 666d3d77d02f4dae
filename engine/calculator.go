package engine

import (
	"github.com/shopspring/decimal"
)

// FixedAdminFee is retained by the association on every payout unless waived.
var FixedAdminFee = decimal.NewFromInt(200)

// Toggles is the caller-owned draft of a payout's deduction switches. It is
// passed by value; the engine keeps no mutable session state of its own.
type Toggles struct {
	LastSlotWaived          bool
	AdminFeeWaived          bool
	SettledDeductionEnabled bool
	AdditionalCost          decimal.Decimal
}

// DefaultToggles are the toggles a fresh payout record starts with:
// nothing waived, settled deduction enabled, no additional cost.
func DefaultToggles() Toggles {
	return Toggles{SettledDeductionEnabled: true}
}

// BaseParams are the fixed inputs of a payout computation.
type BaseParams struct {
	MonthlyAmount decimal.Decimal
	Duration      int
	SettledSum    decimal.Decimal // sum of the member's settled payments for the payout month
}

// ComputeTotal returns the net payable amount for one slot:
//
//	base     = monthlyAmount × duration
//	subTotal = base − settledDeduction − lastSlotDeduction − adminFee
//	total    = subTotal − additionalCost
//
// Deduction order is fixed and no intermediate rounding is applied. The
// result is deliberately not floored at zero: an over-deducted slot shows a
// negative payable amount so staff notice the anomaly.
func ComputeTotal(base BaseParams, t Toggles) decimal.Decimal {
	baseAmount := base.MonthlyAmount.Mul(decimal.NewFromInt(int64(base.Duration)))

	settledDeduction := decimal.Zero
	if t.SettledDeductionEnabled {
		settledDeduction = base.SettledSum
	}

	lastSlotDeduction := base.MonthlyAmount
	if t.LastSlotWaived {
		lastSlotDeduction = decimal.Zero
	}

	adminFeeDeduction := FixedAdminFee
	if t.AdminFeeWaived {
		adminFeeDeduction = decimal.Zero
	}

	subTotal := baseAmount.Sub(settledDeduction).Sub(lastSlotDeduction).Sub(adminFeeDeduction)
	return subTotal.Sub(t.AdditionalCost)
}
