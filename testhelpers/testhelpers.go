// Package testhelpers provides utilities for testing the bill generator.
package testhelpers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"billgen/collections"
	"billgen/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary
// directory. It bootstraps the app and runs collections.Setup. The
// temporary directory is cleaned up when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBill saves a bills record holding the given canonical result.
func CreateTestBill(t *testing.T, app *pocketbase.PocketBase, title string, result *services.BillResult) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("bills")
	if err != nil {
		t.Fatalf("failed to find bills collection: %v", err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal bill payload: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("premium_percent", 10.0)
	record.Set("premium_sign", "above")
	record.Set("grand_total", result.Totals.GrandTotal)
	record.Set("net_payable", result.Totals.NetPayable)
	record.Set("anomaly_count", len(result.Anomalies))
	record.Set("payload", string(payload))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bill: %v", err)
	}

	return record
}

// SampleBillResult computes a small canonical result usable as a stored
// payload in handler tests.
func SampleBillResult(t *testing.T) *services.BillResult {
	t.Helper()

	input := services.BillInput{
		Title: map[string]string{"Name of Work": "Test Road Work", "Agreement No.": "12/2025-26"},
		WorkOrderHeaders: []string{"S.No.", "Description", "Unit", "Qty", "Rate", "Remark"},
		WorkOrderRows: []map[string]any{
			{"S.No.": "1", "Description": "Earthwork", "Unit": "Cum", "Qty": "100", "Rate": "50", "Remark": ""},
			{"S.No.": "2", "Description": "Cement Concrete", "Unit": "Cum", "Qty": "10", "Rate": "4500", "Remark": ""},
		},
		BillQuantityHeaders: []string{"S.No.", "Description", "Unit", "Qty Executed", "Rate"},
		BillQuantityRows: []map[string]any{
			{"S.No.": "1", "Description": "Earthwork", "Unit": "Cum", "Qty Executed": "90", "Rate": "50"},
			{"S.No.": "2", "Description": "Cement Concrete", "Unit": "Cum", "Qty Executed": "12", "Rate": "4500"},
		},
	}

	result, err := services.GenerateBill(input, services.PremiumConfig{Percent: 10, Sign: services.SignAbove})
	if err != nil {
		t.Fatalf("failed to build sample bill result: %v", err)
	}
	return result
}

// WorkbookSheet is one sheet of a test workbook: a name plus cell rows.
type WorkbookSheet struct {
	Name string
	Rows [][]any
}

// BuildWorkbook assembles an in-memory .xlsx from the given sheets.
func BuildWorkbook(t *testing.T, sheets []WorkbookSheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				t.Fatalf("failed to rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("failed to create sheet %q: %v", sheet.Name, err)
			}
		}
		for rowIdx, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				t.Fatalf("failed to write row: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

// SampleWorkbook builds a complete test workbook with Title, Work Order,
// Bill Quantity and Extra Items sheets.
func SampleWorkbook(t *testing.T) []byte {
	t.Helper()

	return BuildWorkbook(t, []WorkbookSheet{
		{
			Name: "Title",
			Rows: [][]any{
				{"Name of Work:", "Construction of CC Road"},
				{"Agreement No.:", "42/2025-26"},
				{"Contractor:", "M/s Sharma Constructions"},
			},
		},
		{
			Name: "Work Order",
			Rows: [][]any{
				{"S.No.", "Description", "Unit", "Qty", "Rate", "Remark"},
				{"1", "Earthwork in excavation", "Cum", 100, 50, ""},
				{"", "Providing and laying CC 1:2:4", "", 0, 0, ""},
				{"2", "Cement concrete work", "Cum", 10, 4500, ""},
			},
		},
		{
			Name: "Bill Quantity",
			Rows: [][]any{
				{"S.No.", "Description", "Unit", "Qty Executed", "Rate"},
				{"1", "Earthwork in excavation", "Cum", 90, 50},
				{"", "Providing and laying CC 1:2:4", "", 0, 0},
				{"2", "Cement concrete work", "Cum", 12, 4500},
			},
		},
		{
			Name: "Extra Items",
			Rows: [][]any{
				{"S.No.", "Description", "Unit", "Qty", "Rate", "Remark"},
				{"E1", "Dismantling old structure", "Cum", 5, 200, "approved"},
			},
		},
	})
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
