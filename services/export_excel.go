package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the full statutory document set into a single
// workbook: First Page, Deviation Statement, Extra Items, Certificate II,
// Certificate III and Note Sheet. Every figure comes pre-formatted from
// the canonical result.
func GenerateExcel(result *BillResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, "First Page"); err != nil {
		return nil, fmt.Errorf("rename first sheet: %w", err)
	}

	if err := writeFirstPage(f, "First Page", result, styles); err != nil {
		return nil, fmt.Errorf("first page: %w", err)
	}
	if err := writeDeviationSheet(f, result, styles); err != nil {
		return nil, fmt.Errorf("deviation statement: %w", err)
	}
	if err := writeExtraItemsSheet(f, result, styles); err != nil {
		return nil, fmt.Errorf("extra items: %w", err)
	}
	if err := writeCertificateII(f, result, styles); err != nil {
		return nil, fmt.Errorf("certificate II: %w", err)
	}
	if err := writeCertificateIII(f, result, styles); err != nil {
		return nil, fmt.Errorf("certificate III: %w", err)
	}
	if err := writeNoteSheet(f, result, styles); err != nil {
		return nil, fmt.Errorf("note sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type excelStyles struct {
	title  int
	header int
	cell   int
	label  int
	value  int
}

func newExcelStyles(f *excelize.File) (*excelStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cell, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	label, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	value, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create value style: %w", err)
	}

	return &excelStyles{title: title, header: header, cell: cell, label: label, value: value}, nil
}

// writeTitleBlock writes the work metadata at the top of a sheet and
// returns the next free row.
func writeTitleBlock(f *excelize.File, sheet, heading, lastCol string, result *BillResult, styles *excelStyles) int {
	f.MergeCell(sheet, "A1", lastCol+"1")
	f.SetCellValue(sheet, "A1", heading)
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	row := 2
	for _, key := range titleKeysInOrder(result.Title) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(result.Title[key]))
		row++
	}
	return row + 1
}

func writeFirstPage(f *excelize.File, sheet string, result *BillResult, styles *excelStyles) error {
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	widths := []float64{7, 42, 8, 11, 11, 11, 14, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	lastCol := columns[len(columns)-1]

	row := writeTitleBlock(f, sheet, "CONTRACTOR BILL - FIRST PAGE", lastCol, result, styles)

	headers := []string{"S.No.", "Description", "Unit", "Qty (W.O.)", "Qty Executed", "Rate", "Amount (W.O.)", "Amount Executed", "Remark"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.header)
	row++

	for _, it := range result.Items {
		writeItemCells(f, sheet, row, it)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.cell)
		row++
	}

	if len(result.ExtraItems) > 0 {
		row++
		f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row))
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "EXTRA ITEMS")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.header)
		row++
		for _, it := range result.ExtraItems {
			writeItemCells(f, sheet, row, it)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.cell)
			row++
		}
	}

	row++
	t := result.Totals
	summary := [][2]string{
		{"Total (Work Executed):", t.ExecutedTotal},
		{"Total (Extra Items):", t.ExtraItemsTotal},
		{premiumLabel(t), t.PremiumAmount},
		{"Grand Total:", t.GrandTotal},
	}
	for _, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), line[0])
		f.SetCellStyle(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), styles.label)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), line[1])
		f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), styles.value)
		row++
	}
	return nil
}

func writeItemCells(f *excelize.File, sheet string, row int, it ItemRow) {
	r := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(it.SerialNo))
	f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(it.Description))
	f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(it.Unit))
	f.SetCellValue(sheet, "D"+r, it.QtyWorkOrder)
	f.SetCellValue(sheet, "E"+r, it.QtyExecuted)
	f.SetCellValue(sheet, "F"+r, it.Rate)
	f.SetCellValue(sheet, "G"+r, it.AmountWorkOrder)
	f.SetCellValue(sheet, "H"+r, it.AmountExecuted)
	f.SetCellValue(sheet, "I"+r, sanitizeExcelCell(it.Remark))
}

func writeDeviationSheet(f *excelize.File, result *BillResult, styles *excelStyles) error {
	sheet := "Deviation Statement"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M"}
	widths := []float64{7, 36, 8, 10, 10, 13, 10, 13, 10, 13, 10, 13, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	lastCol := columns[len(columns)-1]

	row := writeTitleBlock(f, sheet, "DEVIATION STATEMENT", lastCol, result, styles)

	headers := []string{"S.No.", "Description", "Unit", "Rate",
		"Qty (W.O.)", "Amount (W.O.)", "Qty Executed", "Amount Executed",
		"Excess Qty", "Excess Amount", "Saving Qty", "Saving Amount", "Remark"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.header)
	row++

	for _, d := range result.Deviations {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(d.SerialNo))
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(d.Description))
		f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(d.Unit))
		f.SetCellValue(sheet, "D"+r, d.Rate)
		f.SetCellValue(sheet, "E"+r, d.QtyWorkOrder)
		f.SetCellValue(sheet, "F"+r, d.AmountWorkOrder)
		f.SetCellValue(sheet, "G"+r, d.QtyExecuted)
		f.SetCellValue(sheet, "H"+r, d.AmountExecuted)
		f.SetCellValue(sheet, "I"+r, d.ExcessQty)
		f.SetCellValue(sheet, "J"+r, d.ExcessAmt)
		f.SetCellValue(sheet, "K"+r, d.SavingQty)
		f.SetCellValue(sheet, "L"+r, d.SavingAmt)
		f.SetCellValue(sheet, "M"+r, sanitizeExcelCell(d.Remark))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, styles.cell)
		row++
	}

	row++
	s := result.DeviationSummary
	summary := [][2]string{
		{"Work Order Total:", s.WorkOrderTotal},
		{"Executed Total:", s.ExecutedTotal},
		{"Total Excess:", s.TotalExcessAmt},
		{"Total Saving:", s.TotalSavingAmt},
		{"Net Deviation:", s.NetDeviationAmt},
		{"Deviation %:", s.DeviationPercent},
	}
	for _, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), line[0])
		f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), styles.label)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), line[1])
		f.SetCellStyle(sheet, fmt.Sprintf("J%d", row), fmt.Sprintf("J%d", row), styles.value)
		row++
	}
	return nil
}

func writeExtraItemsSheet(f *excelize.File, result *BillResult, styles *excelStyles) error {
	sheet := "Extra Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	widths := []float64{7, 46, 8, 12, 12, 15, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	lastCol := columns[len(columns)-1]

	row := writeTitleBlock(f, sheet, "STATEMENT OF EXTRA ITEMS", lastCol, result, styles)

	headers := []string{"S.No.", "Description", "Unit", "Qty Executed", "Rate", "Amount", "Remark"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.header)
	row++

	for _, it := range result.ExtraItems {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(it.SerialNo))
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(it.Description))
		f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(it.Unit))
		f.SetCellValue(sheet, "D"+r, it.QtyExecuted)
		f.SetCellValue(sheet, "E"+r, it.Rate)
		f.SetCellValue(sheet, "F"+r, it.AmountExecuted)
		f.SetCellValue(sheet, "G"+r, sanitizeExcelCell(it.Remark))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, styles.cell)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Total (Extra Items):")
	f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.label)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), result.Totals.ExtraItemsTotal)
	f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), styles.value)
	return nil
}

func writeCertificateII(f *excelize.File, result *BillResult, styles *excelStyles) error {
	sheet := "Certificate II"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetColWidth(sheet, "A", "A", 100)

	row := writeTitleBlock(f, sheet, "CERTIFICATE II", "A", result, styles)

	t := result.Totals
	lines := []string{
		"Certified that the work recorded in this bill has been completed as per the",
		"sanctioned work order and measured in my presence.",
		"",
		fmt.Sprintf("Value of work done (up to date): Rs. %s", t.GrandTotalRounded),
		fmt.Sprintf("Tender premium: %s%% %s", t.TenderPremiumPercent, t.TenderPremiumSign),
		"",
		"Certified further that the quantities billed do not exceed the executed",
		"quantities recorded in the measurement book.",
	}
	for _, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line)
		row++
	}
	return nil
}

func writeCertificateIII(f *excelize.File, result *BillResult, styles *excelStyles) error {
	sheet := "Certificate III"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetColWidth(sheet, "A", "A", 60)
	f.SetColWidth(sheet, "B", "B", 20)

	row := writeTitleBlock(f, sheet, "CERTIFICATE III - MEMORANDUM OF PAYMENT", "B", result, styles)

	t := result.Totals
	lines := [][2]string{
		{"Total value of work done", t.GrandTotalRounded},
		{"Deduct: Security Deposit (10%)", t.SecurityDeposit},
		{"Deduct: Income Tax (2%)", t.IncomeTax},
		{"Deduct: GST (2%)", t.GST},
		{"Deduct: Labour Cess (1%)", t.LabourCess},
		{"Total deductions", t.TotalDeductions},
		{"Net amount payable to contractor", t.NetPayable},
	}
	for _, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line[1])
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), styles.value)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Payable: %s", t.NetPayableWords))
	return nil
}

func writeNoteSheet(f *excelize.File, result *BillResult, styles *excelStyles) error {
	sheet := "Note Sheet"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetColWidth(sheet, "A", "A", 50)
	f.SetColWidth(sheet, "B", "B", 24)

	row := writeTitleBlock(f, sheet, "NOTE SHEET (SCRUTINY)", "B", result, styles)

	t := result.Totals
	s := result.DeviationSummary
	lines := [][2]string{
		{"Work order amount", t.WorkOrderTotal},
		{"Work executed amount", t.ExecutedTotal},
		{"Extra items amount", t.ExtraItemsTotal},
		{"Tender premium", fmt.Sprintf("%s%% %s", t.TenderPremiumPercent, t.TenderPremiumSign)},
		{"Grand total", t.GrandTotalRounded},
		{"Net deviation", s.NetDeviationAmt},
		{"Deviation percentage", s.DeviationPercent},
		{"Net payable", t.NetPayable},
		{"Rows defaulted during import", fmt.Sprintf("%d", len(result.Anomalies))},
	}
	for _, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line[1])
		row++
	}
	return nil
}

// premiumLabel names the premium line, e.g. "Tender Premium (10.00% above):".
func premiumLabel(t BillTotals) string {
	return fmt.Sprintf("Tender Premium (%s%% %s):", t.TenderPremiumPercent, t.TenderPremiumSign)
}

// titleKeysInOrder returns metadata keys sorted for stable output.
func titleKeysInOrder(title map[string]string) []string {
	keys := make([]string, 0, len(title))
	for k := range title {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous
// leading characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
