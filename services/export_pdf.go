package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the bill summary, deviation statement and
// memorandum of payment as a single PDF using maroto/v2.
func GeneratePDF(result *BillResult) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBillHeader(m, result)
	addItemTable(m, "BILL OF WORK EXECUTED", result.Items)
	if len(result.ExtraItems) > 0 {
		addItemTable(m, "EXTRA ITEMS", result.ExtraItems)
	}
	addTotalsSection(m, result)
	addDeviationSection(m, result)
	addMemorandum(m, result)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBillHeader(m core.Maroto, result *BillResult) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("CONTRACTOR BILL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	for _, key := range titleKeysInOrder(result.Title) {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("%s: %s", key, result.Title[key]), meta),
				),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addSectionHeading(m core.Maroto, heading string) {
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(heading, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

func addItemTable(m core.Maroto, heading string, items []ItemRow) {
	addSectionHeading(m, heading)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("S.No.", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Remark", headerText)).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := props.Text{Size: 7, Align: align.Left}
	rightText := props.Text{Size: 7, Align: align.Right}

	for _, it := range items {
		m.AddRows(
			row.New(6).Add(
				col.New(1).Add(text.New(it.SerialNo, baseText)),
				col.New(4).Add(text.New(it.Description, leftText)),
				col.New(1).Add(text.New(it.Unit, baseText)),
				col.New(1).Add(text.New(it.QtyExecuted, rightText)),
				col.New(2).Add(text.New(it.Rate, rightText)),
				col.New(2).Add(text.New(it.AmountExecuted, rightText)),
				col.New(1).Add(text.New(it.Remark, leftText)),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addTotalsSection(m core.Maroto, result *BillResult) {
	t := result.Totals
	addSummaryLine(m, "Total (Work Executed)", t.ExecutedTotal)
	addSummaryLine(m, "Total (Extra Items)", t.ExtraItemsTotal)
	addSummaryLine(m, fmt.Sprintf("Tender Premium (%s%% %s)", t.TenderPremiumPercent, t.TenderPremiumSign), t.PremiumAmount)
	addSummaryLine(m, "Grand Total", t.GrandTotal)
	m.AddRows(row.New(4))
}

func addDeviationSection(m core.Maroto, result *BillResult) {
	addSectionHeading(m, "DEVIATION SUMMARY")
	s := result.DeviationSummary
	addSummaryLine(m, "Work Order Total", s.WorkOrderTotal)
	addSummaryLine(m, "Executed Total", s.ExecutedTotal)
	addSummaryLine(m, "Total Excess", s.TotalExcessAmt)
	addSummaryLine(m, "Total Saving", s.TotalSavingAmt)
	addSummaryLine(m, fmt.Sprintf("Net Deviation (%s)", s.DeviationPercent), s.NetDeviationAmt)
	m.AddRows(row.New(4))
}

func addMemorandum(m core.Maroto, result *BillResult) {
	addSectionHeading(m, "MEMORANDUM OF PAYMENT")
	t := result.Totals
	addSummaryLine(m, "Value of work done", t.GrandTotalRounded)
	addSummaryLine(m, "Security Deposit (10%)", t.SecurityDeposit)
	addSummaryLine(m, "Income Tax (2%)", t.IncomeTax)
	addSummaryLine(m, "GST (2%)", t.GST)
	addSummaryLine(m, "Labour Cess (1%)", t.LabourCess)
	addSummaryLine(m, "Total Deductions", t.TotalDeductions)
	addSummaryLine(m, "Net Payable", t.NetPayable)

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(t.NetPayableWords, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
	)
}

func addSummaryLine(m core.Maroto, label, value string) {
	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(text.New(label, labelStyle)).WithStyle(summaryCell),
			col.New(4).Add(text.New(value, valueStyle)).WithStyle(summaryCell),
		),
	)
}
