// Package handlers wires the bill generation workflow to PocketBase routes.
package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"billgen/services"
	"billgen/templates"
)

// HandleBillList returns a handler that renders the generated bills page.
func HandleBillList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billsCol, err := app.FindCollectionByNameOrId("bills")
		if err != nil {
			log.Printf("bill_list: could not find bills collection: %v", err)
			return e.String(500, "Internal error")
		}

		records, err := app.FindRecordsByFilter(billsCol, "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("bill_list: could not query bills: %v", err)
			return e.String(500, "Internal error")
		}

		var bills []templates.BillListItem
		for _, rec := range records {
			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			bills = append(bills, templates.BillListItem{
				ID:    rec.Id,
				Title: rec.GetString("title"),
				PremiumLabel: fmt.Sprintf("%.2f%% %s",
					rec.GetFloat("premium_percent"), rec.GetString("premium_sign")),
				NetPayable:   displayINR(rec.GetString("net_payable")),
				CreatedDate:  createdDate,
				AnomalyCount: rec.GetInt("anomaly_count"),
			})
		}

		component := templates.BillListPage(templates.BillListData{Bills: bills})
		return component.Render(e.Request.Context(), e.Response)
	}
}

// displayINR shows a stored whole-rupee figure with Indian grouping.
func displayINR(raw string) string {
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return services.FormatINR(n)
}
