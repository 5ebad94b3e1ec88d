package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *BillResult {
	t.Helper()
	result, err := GenerateBill(sampleBillInput(), PremiumConfig{Percent: 10, Sign: SignAbove})
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}
	return result
}

func TestGenerateExcel_AllSheetsPresent(t *testing.T) {
	data, err := GenerateExcel(sampleResult(t))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{"First Page", "Deviation Statement", "Extra Items",
		"Certificate II", "Certificate III", "Note Sheet"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, got[i], name)
		}
	}
}

func TestGenerateExcel_FirstPageCells(t *testing.T) {
	data, err := GenerateExcel(sampleResult(t))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("First Page")
	if err != nil {
		t.Fatalf("read first page: %v", err)
	}

	var (
		foundHeader     bool
		foundSuppressed bool
		foundAmount     bool
		foundGrand      bool
	)
	for _, row := range rows {
		line := ""
		for _, c := range row {
			line += c + "|"
		}
		if bytes.Contains([]byte(line), []byte("Amount Executed")) {
			foundHeader = true
		}
		if bytes.Contains([]byte(line), []byte("Providing and laying CC 1:2:4")) {
			foundSuppressed = true
			// A suppressed row carries no numeric cells at all.
			for _, c := range row {
				if c == "0.00" || c == "0" {
					t.Errorf("suppressed row shows a numeric cell: %v", row)
				}
			}
		}
		if bytes.Contains([]byte(line), []byte("4500.00")) {
			foundAmount = true
		}
		if bytes.Contains([]byte(line), []byte("65450.00")) {
			foundGrand = true
		}
	}
	if !foundHeader || !foundSuppressed || !foundAmount || !foundGrand {
		t.Errorf("missing expected cells: header=%v suppressed=%v amount=%v grand=%v",
			foundHeader, foundSuppressed, foundAmount, foundGrand)
	}
}

func TestGenerateExcel_CertificateFiguresWholeRupee(t *testing.T) {
	data, err := GenerateExcel(sampleResult(t))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Certificate III")
	if err != nil {
		t.Fatalf("read certificate III: %v", err)
	}

	want := map[string]bool{"65450": false, "6545": false, "1310": false, "55631": false}
	for _, row := range rows {
		for _, c := range row {
			if _, ok := want[c]; ok {
				want[c] = true
			}
		}
	}
	for figure, found := range want {
		if !found {
			t.Errorf("certificate III missing whole-rupee figure %q", figure)
		}
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-cmd", "'-cmd"},
		{"@import", "'@import"},
		{"Earthwork", "Earthwork"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.expect)
		}
	}
}
