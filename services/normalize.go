package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// SheetKind identifies which logical table a set of rows came from. The
// generic quantity column of a Work Order sheet is the planned quantity;
// on the Bill Quantity and Extra Items sheets it is the executed quantity.
type SheetKind int

const (
	SheetWorkOrder SheetKind = iota
	SheetBillQuantity
	SheetExtraItems
)

func (k SheetKind) String() string {
	switch k {
	case SheetWorkOrder:
		return "Work Order"
	case SheetBillQuantity:
		return "Bill Quantity"
	case SheetExtraItems:
		return "Extra Items"
	default:
		return "Unknown"
	}
}

// SchemaError reports a sheet whose required columns are entirely absent.
// It aborts the run: without these columns the computation basis is gone.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// ValidationError reports a value outside its allowed domain: a negative
// quantity or rate on a specific row, or a bad premium configuration.
// Row is 0 when the error is not row-scoped.
type ValidationError struct {
	Sheet   string
	Row     int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s row %d: %s: %s", e.Sheet, e.Row, e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// RowAnomaly records a malformed cell that was recovered by defaulting.
// Anomalies never abort the run; callers surface them as a summary.
type RowAnomaly struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Canonical column keys produced by header mapping.
const (
	colSerial      = "serial_no"
	colDescription = "description"
	colUnit        = "unit"
	colQuantity    = "quantity"
	colRate        = "rate"
	colRemark      = "remark"
)

// columnAliases maps normalized header labels to canonical column keys.
// Departmental work orders are typed by hand and the labels drift; every
// alias here has been seen on a real sheet.
var columnAliases = map[string]string{
	"item":                colSerial,
	"item no":             colSerial,
	"item number":         colSerial,
	"s no":                colSerial,
	"sno":                 colSerial,
	"sr no":               colSerial,
	"sl no":               colSerial,
	"serial no":           colSerial,
	"serial number":       colSerial,
	"description":         colDescription,
	"description of item": colDescription,
	"description of work": colDescription,
	"item of work":        colDescription,
	"particulars":         colDescription,
	"unit":                colUnit,
	"units":               colUnit,
	"uom":                 colUnit,
	"quantity":            colQuantity,
	"qty":                 colQuantity,
	"quantity executed":   colQuantity,
	"qty executed":        colQuantity,
	"executed qty":        colQuantity,
	"quantity upto date":  colQuantity,
	"qty upto date":       colQuantity,
	"quantity since last": colQuantity,
	"rate":                colRate,
	"rate rs":             colRate,
	"rate per unit":       colRate,
	"remark":              colRemark,
	"remarks":             colRemark,
}

// requiredColumns must all resolve for a sheet to be usable.
var requiredColumns = []string{colDescription, colQuantity, colRate}

// normalizeHeader lowercases a header label, strips punctuation that
// varies between sheets, and collapses runs of whitespace.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(".", "", "(", " ", ")", " ", "/", " ").Replace(h)
	h = strings.TrimSuffix(h, "*")
	return strings.Join(strings.Fields(h), " ")
}

// MapColumns resolves raw header labels to canonical column keys, in
// column order. Unrecognized labels map to "" and are returned separately.
func MapColumns(headers []string) ([]string, []string) {
	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		if key, ok := columnAliases[normalizeHeader(h)]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			if strings.TrimSpace(h) != "" {
				unrecognized = append(unrecognized, h)
			}
		}
	}
	return mapped, unrecognized
}

// NormalizeResult is the outcome of normalizing one sheet: the canonical
// items plus any recovered anomalies.
type NormalizeResult struct {
	Items     []LineItem
	Anomalies []RowAnomaly
}

// NormalizeItems converts raw sheet rows into canonical line items.
//
// headers are the sheet's column labels; rows hold the raw cell values
// keyed by those labels (values may be strings from a workbook or typed
// values from another caller). Missing cells default to zero or empty,
// malformed cells default and log a RowAnomaly, and sub-header rows (a
// description with no rate) are kept. A sheet whose required columns are
// entirely absent fails with a SchemaError; a negative quantity or rate
// fails with a ValidationError naming the row.
func NormalizeItems(kind SheetKind, headers []string, rows []map[string]any) (*NormalizeResult, error) {
	mapped, _ := MapColumns(headers)

	present := make(map[string]bool)
	for _, key := range mapped {
		if key != "" {
			present[key] = true
		}
	}
	var missing []string
	for _, req := range requiredColumns {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Sheet: kind.String(), Missing: missing}
	}

	// Raw header label for each canonical key, for row lookups.
	labelFor := make(map[string]string, len(mapped))
	for i, key := range mapped {
		if key != "" && labelFor[key] == "" {
			labelFor[key] = headers[i]
		}
	}

	result := &NormalizeResult{}

	for rowIdx, row := range rows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for the header row

		get := func(key string) string {
			return strings.TrimSpace(cast.ToString(row[labelFor[key]]))
		}

		serial := get(colSerial)
		desc := get(colDescription)
		unit := get(colUnit)
		remark := get(colRemark)

		qty, qtyAnom := parseDecimalCell(kind, rowNum, colQuantity, get(colQuantity))
		rate, rateAnom := parseDecimalCell(kind, rowNum, colRate, get(colRate))

		// Skip rows that carry nothing at all.
		if serial == "" && desc == "" && unit == "" && remark == "" &&
			qty.IsZero() && rate.IsZero() && qtyAnom == nil && rateAnom == nil {
			continue
		}

		if qtyAnom != nil {
			result.Anomalies = append(result.Anomalies, *qtyAnom)
		}
		if rateAnom != nil {
			result.Anomalies = append(result.Anomalies, *rateAnom)
		}

		if qty.IsNegative() {
			return nil, &ValidationError{Sheet: kind.String(), Row: rowNum, Field: colQuantity, Message: "quantity must not be negative"}
		}
		if rate.IsNegative() {
			return nil, &ValidationError{Sheet: kind.String(), Row: rowNum, Field: colRate, Message: "rate must not be negative"}
		}

		item := LineItem{
			SerialNo:    serial,
			Description: desc,
			Unit:        unit,
			Rate:        rate,
			Remark:      remark,
		}
		if kind == SheetWorkOrder {
			item.QtyWorkOrder = qty
		} else {
			item.QtyExecuted = qty
		}

		result.Items = append(result.Items, item)
	}

	return result, nil
}

// parseDecimalCell parses one numeric cell. Blank cells default to zero
// silently (that is how zero-rate sub-header rows arrive); non-empty but
// unparseable cells default to zero and report an anomaly.
func parseDecimalCell(kind SheetKind, rowNum int, field, raw string) (decimal.Decimal, *RowAnomaly) {
	if raw == "" {
		return decimal.Zero, nil
	}

	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &RowAnomaly{
			Sheet:   kind.String(),
			Row:     rowNum,
			Field:   field,
			Message: fmt.Sprintf("unparseable value %q defaulted to 0", raw),
		}
	}
	return d, nil
}

// MergeExecuted pairs Bill Quantity rows with Work Order items by position
// and copies the executed quantities across. Serial numbers are often blank
// or non-numeric, so position is the only reliable join key. A short Bill
// Quantity sheet leaves the tail at zero executed; surplus Bill Quantity
// rows are reported as anomalies and dropped, never silently billed.
func MergeExecuted(workOrder, billQty []LineItem) ([]LineItem, []RowAnomaly) {
	merged := make([]LineItem, len(workOrder))
	copy(merged, workOrder)

	var anomalies []RowAnomaly

	for i := range merged {
		if i < len(billQty) {
			merged[i].QtyExecuted = billQty[i].QtyExecuted
		} else {
			anomalies = append(anomalies, RowAnomaly{
				Sheet:   SheetBillQuantity.String(),
				Row:     i + 2,
				Field:   colQuantity,
				Message: "no executed quantity row; defaulted to 0",
			})
		}
	}

	for i := len(workOrder); i < len(billQty); i++ {
		anomalies = append(anomalies, RowAnomaly{
			Sheet:   SheetBillQuantity.String(),
			Row:     i + 2,
			Field:   colDescription,
			Message: fmt.Sprintf("row %q has no matching work order item; dropped", billQty[i].Description),
		})
	}

	return merged, anomalies
}
