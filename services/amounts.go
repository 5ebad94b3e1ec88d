package services

import "github.com/shopspring/decimal"

// RoundingPolicy selects the statutory rounding for a document family.
// Summary and deviation documents keep paise; certificates and the note
// sheet round to whole rupees.
type RoundingPolicy int

const (
	RoundTwoPlaces RoundingPolicy = iota
	RoundWholeRupee
)

// RoundAmount applies the policy using half-away-from-zero rounding.
// Re-applying it to an already-rounded value is a no-op.
func RoundAmount(d decimal.Decimal, policy RoundingPolicy) decimal.Decimal {
	if policy == RoundWholeRupee {
		return d.Round(0)
	}
	return d.Round(2)
}

// ItemAmount computes quantity × rate rounded under the given policy.
func ItemAmount(qty, rate decimal.Decimal, policy RoundingPolicy) decimal.Decimal {
	return RoundAmount(qty.Mul(rate), policy)
}

// RoundUpToEven rounds an amount up to the next even whole rupee. The GST
// recovery on contractor bills uses this rule: 100 stays 100, 101 becomes
// 102, 103 becomes 104.
func RoundUpToEven(d decimal.Decimal) decimal.Decimal {
	n := d.Ceil().IntPart()
	if n%2 != 0 {
		n++
	}
	return decimal.NewFromInt(n)
}

// AmountWorkOrder returns the item's planned amount at two places.
func (it LineItem) AmountWorkOrder() decimal.Decimal {
	return ItemAmount(it.QtyWorkOrder, it.Rate, RoundTwoPlaces)
}

// AmountExecuted returns the item's executed amount at two places.
func (it LineItem) AmountExecuted() decimal.Decimal {
	return ItemAmount(it.QtyExecuted, it.Rate, RoundTwoPlaces)
}

// WorkOrderTotal sums the per-item planned amounts. Each amount is rounded
// to two places before summing; the audited legacy registers total the
// rounded figures, so sum-then-round would drift from them.
func WorkOrderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.AmountWorkOrder())
	}
	return total
}

// ExecutedTotal sums the per-item executed amounts, rounded per item.
func ExecutedTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.AmountExecuted())
	}
	return total
}

// ExtraItemsTotal sums the executed amounts of the extra items list.
// Extra items accumulate into their own total, never into the work order.
func ExtraItemsTotal(items []ExtraItem) decimal.Decimal {
	return ExecutedTotal(items)
}
