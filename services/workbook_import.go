package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet name aliases, normalized like headers. Departmental workbooks
// name their sheets inconsistently; these cover what we have seen.
var (
	titleSheetNames     = []string{"title", "title page", "title sheet"}
	workOrderSheetNames = []string{"work order", "workorder", "wo"}
	billQtySheetNames   = []string{"bill quantity", "billquantity", "bill qty", "bq"}
	extraItemSheetNames = []string{"extra items", "extra item", "extraitems", "ei"}
)

// ParseBillWorkbook reads an uploaded .xlsx workbook into the raw table
// set for one bill. The Work Order sheet is required; Bill Quantity and
// Extra Items are optional, and the Title sheet contributes key-value
// metadata. Cell values stay as the strings excelize reads.
func ParseBillWorkbook(file io.Reader) (*BillInput, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	in := &BillInput{Title: map[string]string{}}

	if name := findSheet(f, titleSheetNames); name != "" {
		in.Title = parseTitleSheet(f, name)
	}

	woName := findSheet(f, workOrderSheetNames)
	if woName == "" {
		return nil, &SchemaError{Sheet: SheetWorkOrder.String(), Missing: requiredColumns}
	}
	in.WorkOrderHeaders, in.WorkOrderRows, err = sheetTable(f, woName)
	if err != nil {
		return nil, err
	}

	if name := findSheet(f, billQtySheetNames); name != "" {
		in.BillQuantityHeaders, in.BillQuantityRows, err = sheetTable(f, name)
		if err != nil {
			return nil, err
		}
	}

	if name := findSheet(f, extraItemSheetNames); name != "" {
		in.ExtraItemHeaders, in.ExtraItemRows, err = sheetTable(f, name)
		if err != nil {
			return nil, err
		}
	}

	return in, nil
}

// findSheet returns the workbook's sheet whose normalized name matches
// one of the aliases, or "" when absent.
func findSheet(f *excelize.File, aliases []string) string {
	for _, name := range f.GetSheetList() {
		norm := normalizeHeader(name)
		for _, alias := range aliases {
			if norm == alias {
				return name
			}
		}
	}
	return ""
}

// sheetTable reads one sheet as a header row plus data rows keyed by the
// header labels. Leading blank rows before the header are skipped.
func sheetTable(f *excelize.File, sheet string) ([]string, []map[string]any, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	start := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil, &SchemaError{Sheet: sheet, Missing: requiredColumns}
	}

	headers := rows[start]
	data := make([]map[string]any, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		record := make(map[string]any, len(headers))
		for colIdx, h := range headers {
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			record[h] = value
		}
		data = append(data, record)
	}
	return headers, data, nil
}

// parseTitleSheet reads metadata as label/value pairs: the first two
// non-empty cells of each row. A trailing ":" on a label is dropped.
func parseTitleSheet(f *excelize.File, sheet string) map[string]string {
	title := map[string]string{}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return title
	}

	for _, row := range rows {
		var cells []string
		for _, c := range row {
			if v := strings.TrimSpace(c); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) < 2 {
			continue
		}
		key := strings.TrimSuffix(cells[0], ":")
		title[key] = cells[1]
	}
	return title
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
