package services

import "testing"

func TestRenderItemRow_PopulateAll(t *testing.T) {
	it := LineItem{
		SerialNo:     "1",
		Description:  "Earthwork in excavation",
		Unit:         "Cum",
		QtyWorkOrder: d("100"),
		QtyExecuted:  d("90"),
		Rate:         d("50"),
		Remark:       "ok",
	}

	row := RenderItemRow(it)
	if row.State != PopulateAll {
		t.Fatalf("State = %v, want PopulateAll", row.State)
	}
	if row.QtyWorkOrder != "100.00" || row.QtyExecuted != "90.00" || row.Rate != "50.00" {
		t.Errorf("quantities/rate = %q/%q/%q", row.QtyWorkOrder, row.QtyExecuted, row.Rate)
	}
	if row.AmountWorkOrder != "5000.00" || row.AmountExecuted != "4500.00" {
		t.Errorf("amounts = %q/%q, want 5000.00/4500.00", row.AmountWorkOrder, row.AmountExecuted)
	}
	if row.Remark != "ok" {
		t.Errorf("Remark = %q, want \"ok\"", row.Remark)
	}
}

func TestRenderItemRow_SuppressNumeric(t *testing.T) {
	it := LineItem{
		SerialNo:     "2",
		Description:  "Providing and laying CC 1:2:4",
		Unit:         "Cum",
		QtyWorkOrder: d("10"),
		QtyExecuted:  d("5"),
	}

	row := RenderItemRow(it)
	if row.State != SuppressNumeric {
		t.Fatalf("State = %v, want SuppressNumeric", row.State)
	}
	if row.SerialNo != "2" || row.Description != "Providing and laying CC 1:2:4" {
		t.Errorf("identity fields must survive: %+v", row)
	}
	// No zeros, no blanks formatted as numbers. The cells stay empty.
	for name, v := range map[string]string{
		"Unit":            row.Unit,
		"QtyWorkOrder":    row.QtyWorkOrder,
		"QtyExecuted":     row.QtyExecuted,
		"Rate":            row.Rate,
		"AmountWorkOrder": row.AmountWorkOrder,
		"AmountExecuted":  row.AmountExecuted,
	} {
		if v != "" {
			t.Errorf("%s = %q, want empty", name, v)
		}
	}
}

func TestRenderItemRow_ShowExplicitZero(t *testing.T) {
	it := LineItem{
		SerialNo:     "3",
		Description:  "Unexecuted item",
		Unit:         "Sqm",
		QtyWorkOrder: d("40"),
		Rate:         d("120"),
	}

	row := RenderItemRow(it)
	if row.State != ShowExplicitZero {
		t.Fatalf("State = %v, want ShowExplicitZero", row.State)
	}
	if row.QtyExecuted != "0.00" || row.AmountExecuted != "0.00" {
		t.Errorf("executed columns = %q/%q, want explicit \"0.00\"", row.QtyExecuted, row.AmountExecuted)
	}
	if row.QtyWorkOrder != "40.00" || row.AmountWorkOrder != "4800.00" {
		t.Errorf("work order columns = %q/%q", row.QtyWorkOrder, row.AmountWorkOrder)
	}
}

func TestRenderItemRows_PreservesOrder(t *testing.T) {
	items := []LineItem{
		{SerialNo: "1", Description: "a", Rate: d("1"), QtyExecuted: d("1")},
		{SerialNo: "2", Description: "b"},
		{SerialNo: "3", Description: "c", Rate: d("2")},
	}
	rows := RenderItemRows(items)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, want := range []string{"1", "2", "3"} {
		if rows[i].SerialNo != want {
			t.Errorf("row %d serial = %q, want %q", i, rows[i].SerialNo, want)
		}
	}
}
