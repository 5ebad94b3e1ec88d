package services

import "github.com/shopspring/decimal"

// BillTotals carries every aggregate figure, pre-formatted. Summary and
// deviation documents use the two-decimal fields; certificates and the
// note sheet use the whole-rupee fields. Renderers never re-derive these.
type BillTotals struct {
	WorkOrderTotal  string `json:"work_order_total"`
	ExecutedTotal   string `json:"executed_total"`
	ExtraItemsTotal string `json:"extra_items_total"`

	TenderPremiumPercent string `json:"tender_premium_percent"`
	TenderPremiumSign    string `json:"tender_premium_sign"`
	PremiumAmount        string `json:"premium_amount"` // signed, two places

	GrandTotal        string `json:"grand_total"`         // two places
	GrandTotalRounded string `json:"grand_total_rounded"` // whole rupee

	SecurityDeposit string `json:"security_deposit"` // whole rupee
	IncomeTax       string `json:"income_tax"`       // whole rupee
	GST             string `json:"gst"`              // whole rupee, next even
	LabourCess      string `json:"labour_cess"`      // whole rupee
	TotalDeductions string `json:"total_deductions"` // whole rupee

	NetPayable      string `json:"net_payable"` // whole rupee
	NetPayableWords string `json:"net_payable_words"`
}

// BillResult is the canonical result of one bill computation. Every
// renderer (Excel, PDF, CSV, HTML) consumes this structure and nothing
// else, which is what keeps the six documents numerically identical.
type BillResult struct {
	Title            map[string]string `json:"title"`
	Items            []ItemRow         `json:"items"`
	ExtraItems       []ItemRow         `json:"extra_items"`
	Deviations       []DeviationRow    `json:"deviations"`
	DeviationSummary DeviationSummary  `json:"deviation_summary"`
	Totals           BillTotals        `json:"totals"`
	Anomalies        []RowAnomaly      `json:"anomalies"`
}

// BillInput is the raw table set for one bill: title metadata plus the
// header row and data rows of each sheet. Extra items are optional; a
// missing Bill Quantity sheet means nothing was executed yet.
type BillInput struct {
	Title map[string]string

	WorkOrderHeaders []string
	WorkOrderRows    []map[string]any

	BillQuantityHeaders []string
	BillQuantityRows    []map[string]any

	ExtraItemHeaders []string
	ExtraItemRows    []map[string]any
}

// GenerateBill runs the whole pipeline: normalize the three sheets, pair
// executed quantities by position, compute deviations, apply the tender
// premium and statutory deductions, and assemble the canonical result.
//
// SchemaError and ValidationError abort; row anomalies are collected on
// the result instead.
func GenerateBill(in BillInput, cfg PremiumConfig) (*BillResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	woResult, err := NormalizeItems(SheetWorkOrder, in.WorkOrderHeaders, in.WorkOrderRows)
	if err != nil {
		return nil, err
	}

	items := woResult.Items
	anomalies := woResult.Anomalies

	if len(in.BillQuantityRows) > 0 {
		bqResult, err := NormalizeItems(SheetBillQuantity, in.BillQuantityHeaders, in.BillQuantityRows)
		if err != nil {
			return nil, err
		}
		anomalies = append(anomalies, bqResult.Anomalies...)

		var mergeAnomalies []RowAnomaly
		items, mergeAnomalies = MergeExecuted(items, bqResult.Items)
		anomalies = append(anomalies, mergeAnomalies...)
	}

	var extras []ExtraItem
	if len(in.ExtraItemRows) > 0 {
		extraResult, err := NormalizeItems(SheetExtraItems, in.ExtraItemHeaders, in.ExtraItemRows)
		if err != nil {
			return nil, err
		}
		anomalies = append(anomalies, extraResult.Anomalies...)
		extras = extraResult.Items
	}

	title := in.Title
	if title == nil {
		title = map[string]string{}
	}

	return &BillResult{
		Title:            title,
		Items:            RenderItemRows(items),
		ExtraItems:       RenderItemRows(extras),
		Deviations:       BuildDeviationRows(items),
		DeviationSummary: SummarizeDeviations(items),
		Totals:           buildTotals(items, extras, cfg),
		Anomalies:        anomalies,
	}, nil
}

// buildTotals computes every aggregate figure once. The premium applies
// to the value of work actually done (executed plus extra items); the
// deductions come off the grand total.
func buildTotals(items []LineItem, extras []ExtraItem, cfg PremiumConfig) BillTotals {
	workOrderTotal := WorkOrderTotal(items)
	executedTotal := ExecutedTotal(items)
	extraTotal := ExtraItemsTotal(extras)

	base := executedTotal.Add(extraTotal)
	premium := PremiumAmount(base, cfg)
	grandTotal := base.Add(premium)

	deductions := ComputeDeductions(grandTotal)
	netPayable := grandTotal.Sub(deductions.Total()).Round(0)

	return BillTotals{
		WorkOrderTotal:  FormatAmount(workOrderTotal),
		ExecutedTotal:   FormatAmount(executedTotal),
		ExtraItemsTotal: FormatAmount(extraTotal),

		TenderPremiumPercent: decimal.NewFromFloat(cfg.Percent).StringFixed(2),
		TenderPremiumSign:    string(cfg.Sign),
		PremiumAmount:        FormatAmount(premium),

		GrandTotal:        FormatAmount(grandTotal),
		GrandTotalRounded: FormatWhole(grandTotal),

		SecurityDeposit: FormatWhole(deductions.SecurityDeposit),
		IncomeTax:       FormatWhole(deductions.IncomeTax),
		GST:             FormatWhole(deductions.GST),
		LabourCess:      FormatWhole(deductions.LabourCess),
		TotalDeductions: FormatWhole(deductions.Total()),

		NetPayable:      FormatWhole(netPayable),
		NetPayableWords: AmountInWords(netPayable),
	}
}
