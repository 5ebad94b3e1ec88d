package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GenerateCSV renders the canonical item rows and totals as CSV, one
// record per line item followed by the extra items and a totals block.
// The cells are the same pre-formatted strings every other document uses.
func GenerateCSV(result *BillResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"section", "serial_no", "description", "unit",
		"qty_work_order", "qty_executed", "rate", "amount_work_order", "amount_executed", "remark"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	writeItems := func(section string, items []ItemRow) error {
		for _, it := range items {
			record := []string{section, it.SerialNo, it.Description, it.Unit,
				it.QtyWorkOrder, it.QtyExecuted, it.Rate, it.AmountWorkOrder, it.AmountExecuted, it.Remark}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		return nil
	}

	if err := writeItems("work_order", result.Items); err != nil {
		return nil, err
	}
	if err := writeItems("extra_items", result.ExtraItems); err != nil {
		return nil, err
	}

	t := result.Totals
	totals := [][2]string{
		{"work_order_total", t.WorkOrderTotal},
		{"executed_total", t.ExecutedTotal},
		{"extra_items_total", t.ExtraItemsTotal},
		{"premium_amount", t.PremiumAmount},
		{"grand_total", t.GrandTotal},
		{"security_deposit", t.SecurityDeposit},
		{"income_tax", t.IncomeTax},
		{"gst", t.GST},
		{"labour_cess", t.LabourCess},
		{"net_payable", t.NetPayable},
	}
	for _, line := range totals {
		record := []string{"totals", "", line[0], "", "", "", "", "", line[1], ""}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
