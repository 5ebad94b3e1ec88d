// Package services implements the bill computation core: normalization of
// spreadsheet rows into line items, the zero-rate/zero-quantity render policy,
// amount and deviation calculation, tender premium and statutory deductions,
// and the canonical result consumed by every document renderer.
package services

import "github.com/shopspring/decimal"

// LineItem is one row of work, as normalized from the Work Order sheet and
// (by position) the Bill Quantity sheet. Items are immutable once built.
type LineItem struct {
	SerialNo    string // preserved verbatim, may be blank or non-numeric
	Description string
	Unit        string
	QtyWorkOrder decimal.Decimal
	QtyExecuted  decimal.Decimal
	Rate         decimal.Decimal
	Remark       string
}

// ExtraItem is work executed outside the original Work Order. It is
// structurally a LineItem sourced from the Extra Items sheet; the executed
// quantity is the only quantity the sheet carries.
type ExtraItem = LineItem

// RenderState decides which fields of a rendered row are populated.
// This is the single rule every renderer must share; see RenderStateFor.
type RenderState int

const (
	// PopulateAll renders every field with its computed value.
	PopulateAll RenderState = iota
	// SuppressNumeric renders only serial no, description and remark.
	// Applies to zero-rate rows (sub-headers, unset rates).
	SuppressNumeric
	// ShowExplicitZero renders every field, with zero numerics as "0.00"
	// rather than blank. Applies when rate > 0 but nothing was executed.
	ShowExplicitZero
)

func (s RenderState) String() string {
	switch s {
	case PopulateAll:
		return "populate_all"
	case SuppressNumeric:
		return "suppress_numeric"
	case ShowExplicitZero:
		return "show_explicit_zero"
	default:
		return "unknown"
	}
}

// RenderStateFor classifies a row. Zero rate wins over zero execution:
// a sub-header row with a quantity but no rate still suppresses numerics.
func RenderStateFor(rate, qtyExecuted decimal.Decimal) RenderState {
	if rate.IsZero() {
		return SuppressNumeric
	}
	if qtyExecuted.IsZero() {
		return ShowExplicitZero
	}
	return PopulateAll
}

// State returns the render state for this item.
func (it LineItem) State() RenderState {
	return RenderStateFor(it.Rate, it.QtyExecuted)
}

// ItemRow is a LineItem rendered to pre-formatted strings. Every document
// (Excel, PDF, CSV, HTML) consumes these strings as-is so the figures are
// identical everywhere. Numeric fields are two-decimal strings, or empty
// when the render state suppresses them.
type ItemRow struct {
	SerialNo    string `json:"serial_no"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	QtyWorkOrder string `json:"qty_work_order"`
	QtyExecuted  string `json:"qty_executed"`
	Rate         string `json:"rate"`
	AmountWorkOrder string `json:"amount_work_order"`
	AmountExecuted  string `json:"amount_executed"`
	Remark      string      `json:"remark"`
	State       RenderState `json:"state"`
}

// DeviationRow pairs one item's work-order and executed figures with the
// computed excess or saving. At most one of excess/saving is populated.
type DeviationRow struct {
	SerialNo    string `json:"serial_no"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Rate        string `json:"rate"`
	QtyWorkOrder string `json:"qty_work_order"`
	QtyExecuted  string `json:"qty_executed"`
	AmountWorkOrder string `json:"amount_work_order"`
	AmountExecuted  string `json:"amount_executed"`
	ExcessQty  string `json:"excess_qty"`
	ExcessAmt  string `json:"excess_amt"`
	SavingQty  string `json:"saving_qty"`
	SavingAmt  string `json:"saving_amt"`
	Remark     string      `json:"remark"`
	State      RenderState `json:"state"`
}
