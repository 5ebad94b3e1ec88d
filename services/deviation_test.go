package services

import "testing"

func TestBuildDeviationRow_Excess(t *testing.T) {
	it := LineItem{
		SerialNo:     "1",
		Description:  "Cement Concrete",
		Unit:         "Cum",
		QtyWorkOrder: d("10"),
		QtyExecuted:  d("12"),
		Rate:         d("4500"),
	}

	row := BuildDeviationRow(it)
	if row.ExcessQty != "2.00" || row.ExcessAmt != "9000.00" {
		t.Errorf("excess = %q/%q, want 2.00/9000.00", row.ExcessQty, row.ExcessAmt)
	}
	if row.SavingQty != "0.00" || row.SavingAmt != "0.00" {
		t.Errorf("saving side must stay zero: %q/%q", row.SavingQty, row.SavingAmt)
	}
	if row.AmountWorkOrder != "45000.00" || row.AmountExecuted != "54000.00" {
		t.Errorf("amounts = %q/%q", row.AmountWorkOrder, row.AmountExecuted)
	}
}

func TestBuildDeviationRow_Saving(t *testing.T) {
	it := LineItem{
		Description:  "Earthwork",
		Unit:         "Cum",
		QtyWorkOrder: d("100"),
		QtyExecuted:  d("90"),
		Rate:         d("50"),
	}

	row := BuildDeviationRow(it)
	if row.SavingQty != "10.00" || row.SavingAmt != "500.00" {
		t.Errorf("saving = %q/%q, want 10.00/500.00", row.SavingQty, row.SavingAmt)
	}
	if row.ExcessQty != "0.00" || row.ExcessAmt != "0.00" {
		t.Errorf("excess side must stay zero: %q/%q", row.ExcessQty, row.ExcessAmt)
	}
}

func TestBuildDeviationRow_NoDeviation(t *testing.T) {
	it := LineItem{
		Description:  "As planned",
		QtyWorkOrder: d("5"),
		QtyExecuted:  d("5"),
		Rate:         d("100"),
	}

	row := BuildDeviationRow(it)
	for name, v := range map[string]string{
		"ExcessQty": row.ExcessQty, "ExcessAmt": row.ExcessAmt,
		"SavingQty": row.SavingQty, "SavingAmt": row.SavingAmt,
	} {
		if v != "0.00" {
			t.Errorf("%s = %q, want \"0.00\"", name, v)
		}
	}
}

func TestBuildDeviationRow_SuppressedItemStaysBlank(t *testing.T) {
	it := LineItem{SerialNo: "A", Description: "Sub head", QtyWorkOrder: d("3")}

	row := BuildDeviationRow(it)
	if row.State != SuppressNumeric {
		t.Fatalf("State = %v, want SuppressNumeric", row.State)
	}
	if row.ExcessAmt != "" || row.SavingAmt != "" || row.AmountWorkOrder != "" {
		t.Errorf("suppressed row must have no numerics: %+v", row)
	}
}

func TestSummarizeDeviations(t *testing.T) {
	items := []LineItem{
		{Description: "Earthwork", QtyWorkOrder: d("100"), QtyExecuted: d("90"), Rate: d("50")},
		{Description: "Cement Concrete", QtyWorkOrder: d("10"), QtyExecuted: d("12"), Rate: d("4500")},
		{Description: "Sub head", QtyWorkOrder: d("7")},
	}

	sum := SummarizeDeviations(items)
	if sum.WorkOrderTotal != "50000.00" || sum.ExecutedTotal != "58500.00" {
		t.Errorf("totals = %q/%q, want 50000.00/58500.00", sum.WorkOrderTotal, sum.ExecutedTotal)
	}
	if sum.TotalExcessAmt != "9000.00" || sum.TotalSavingAmt != "500.00" {
		t.Errorf("excess/saving = %q/%q, want 9000.00/500.00", sum.TotalExcessAmt, sum.TotalSavingAmt)
	}
	if sum.NetDeviationAmt != "8500.00" {
		t.Errorf("net = %q, want 8500.00", sum.NetDeviationAmt)
	}
	if sum.DeviationPercent != "17.00%" {
		t.Errorf("percent = %q, want 17.00%%", sum.DeviationPercent)
	}
}

func TestSummarizeDeviations_ZeroWorkOrderTotal(t *testing.T) {
	items := []LineItem{{Description: "Sub head"}}
	sum := SummarizeDeviations(items)
	if sum.DeviationPercent != "0.00%" {
		t.Errorf("percent = %q, want 0.00%% when nothing was planned", sum.DeviationPercent)
	}
}
