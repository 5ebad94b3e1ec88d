package services

import "github.com/shopspring/decimal"

// BuildDeviationRow compares one item's planned and executed figures.
// Excess and saving are mutually exclusive: the executed amount is either
// above the work order amount or below it, and the inactive side renders
// as zero. The render state of the underlying item wins over the delta
// sign: a zero-rate row never shows deviation numerics at all.
func BuildDeviationRow(it LineItem) DeviationRow {
	row := DeviationRow{
		SerialNo:    it.SerialNo,
		Description: it.Description,
		Remark:      it.Remark,
		State:       it.State(),
	}

	if row.State == SuppressNumeric {
		return row
	}

	amtWO := it.AmountWorkOrder()
	amtExec := it.AmountExecuted()

	row.Unit = it.Unit
	row.Rate = FormatAmount(it.Rate)
	row.QtyWorkOrder = FormatAmount(it.QtyWorkOrder)
	row.QtyExecuted = FormatAmount(it.QtyExecuted)
	row.AmountWorkOrder = FormatAmount(amtWO)
	row.AmountExecuted = FormatAmount(amtExec)

	excessQty, excessAmt, savingQty, savingAmt := deviationSplit(it, amtWO, amtExec)
	row.ExcessQty = FormatAmount(excessQty)
	row.ExcessAmt = FormatAmount(excessAmt)
	row.SavingQty = FormatAmount(savingQty)
	row.SavingAmt = FormatAmount(savingAmt)

	return row
}

// deviationSplit returns the excess and saving figures as positive
// magnitudes, with the inactive pair at zero.
func deviationSplit(it LineItem, amtWO, amtExec decimal.Decimal) (excessQty, excessAmt, savingQty, savingAmt decimal.Decimal) {
	delta := amtExec.Sub(amtWO)
	qtyDelta := it.QtyExecuted.Sub(it.QtyWorkOrder)

	switch delta.Sign() {
	case 1:
		return qtyDelta, delta, decimal.Zero, decimal.Zero
	case -1:
		return decimal.Zero, decimal.Zero, qtyDelta.Neg(), delta.Neg()
	default:
		return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	}
}

// BuildDeviationRows builds the deviation statement rows for all items.
func BuildDeviationRows(items []LineItem) []DeviationRow {
	rows := make([]DeviationRow, len(items))
	for i, it := range items {
		rows[i] = BuildDeviationRow(it)
	}
	return rows
}

// DeviationSummary aggregates the deviation statement. NetDeviation is
// executed minus planned (signed); DeviationPercent is the net deviation
// as a share of the work order total.
type DeviationSummary struct {
	WorkOrderTotal   string `json:"work_order_total"`
	ExecutedTotal    string `json:"executed_total"`
	TotalExcessAmt   string `json:"total_excess_amt"`
	TotalSavingAmt   string `json:"total_saving_amt"`
	NetDeviationAmt  string `json:"net_deviation_amt"`
	DeviationPercent string `json:"deviation_percent"`
}

// SummarizeDeviations totals the excess and saving across all items.
// Totals sum the per-item rounded amounts, like every other aggregate.
func SummarizeDeviations(items []LineItem) DeviationSummary {
	totalWO := WorkOrderTotal(items)
	totalExec := ExecutedTotal(items)

	totalExcess := decimal.Zero
	totalSaving := decimal.Zero
	for _, it := range items {
		if it.State() == SuppressNumeric {
			continue
		}
		_, excessAmt, _, savingAmt := deviationSplit(it, it.AmountWorkOrder(), it.AmountExecuted())
		totalExcess = totalExcess.Add(excessAmt)
		totalSaving = totalSaving.Add(savingAmt)
	}

	net := totalExec.Sub(totalWO)
	percent := decimal.Zero
	if !totalWO.IsZero() {
		percent = net.Mul(decimal.NewFromInt(100)).DivRound(totalWO, 2)
	}

	return DeviationSummary{
		WorkOrderTotal:   FormatAmount(totalWO),
		ExecutedTotal:    FormatAmount(totalExec),
		TotalExcessAmt:   FormatAmount(totalExcess),
		TotalSavingAmt:   FormatAmount(totalSaving),
		NetDeviationAmt:  FormatAmount(net),
		DeviationPercent: formatPercent(percent),
	}
}
