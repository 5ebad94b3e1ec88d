// Package templates renders the HTML pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// BillListItem is one row on the bills list page.
type BillListItem struct {
	ID           string
	Title        string
	PremiumLabel string
	NetPayable   string
	CreatedDate  string
	AnomalyCount int
}

// BillListData feeds the bills list page.
type BillListData struct {
	Bills []BillListItem
}

// UploadData feeds the upload form, including a validation message from a
// failed attempt.
type UploadData struct {
	Error string
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 72rem; color: #1f2937; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #d1d5db; padding: 0.4rem 0.6rem; text-align: left; font-size: 0.9rem; }
th { background: #333; color: #fff; }
a.button, button { background: #1d4ed8; color: #fff; padding: 0.4rem 0.9rem; border: 0; border-radius: 0.25rem; text-decoration: none; cursor: pointer; }
.error { color: #dc2626; margin: 0.5rem 0; }
.muted { color: #6b7280; font-size: 0.85rem; }
form label { display: block; margin: 0.6rem 0 0.2rem; font-weight: 600; }
</style>
</head>
<body>
<h1>%s</h1>
`, templ.EscapeString(title), templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// BillListPage renders the bills list with a link to the upload form.
func BillListPage(data BillListData) templ.Component {
	return layout("Contractor Bills", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<p><a class="button" href="/bills/new">Generate New Bill</a></p>
`); err != nil {
			return err
		}

		if len(data.Bills) == 0 {
			_, err := io.WriteString(w, `<p class="muted">No bills generated yet.</p>
`)
			return err
		}

		if _, err := io.WriteString(w, `<table>
<tr><th>Title</th><th>Premium</th><th>Net Payable</th><th>Created</th><th>Anomalies</th><th>Documents</th></tr>
`); err != nil {
			return err
		}
		for _, b := range data.Bills {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td><a href="/bills/%s/export/excel">Excel</a> | <a href="/bills/%s/export/pdf">PDF</a> | <a href="/bills/%s/export/csv">CSV</a> | <a href="/bills/%s/download">All (zip)</a></td></tr>
`,
				templ.EscapeString(b.Title),
				templ.EscapeString(b.PremiumLabel),
				templ.EscapeString(b.NetPayable),
				templ.EscapeString(b.CreatedDate),
				b.AnomalyCount,
				templ.EscapeString(b.ID),
				templ.EscapeString(b.ID),
				templ.EscapeString(b.ID),
				templ.EscapeString(b.ID),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	}))
}

// BillUploadPage renders the workbook upload form.
func BillUploadPage(data UploadData) templ.Component {
	return layout("Generate Bill", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>
`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<form method="post" action="/bills" enctype="multipart/form-data">
<label for="workbook">Bill workbook (.xlsx with Title, Work Order, Bill Quantity and optional Extra Items sheets)</label>
<input type="file" id="workbook" name="workbook" accept=".xlsx" required>
<label for="premium_percent">Tender premium percent (0&ndash;100)</label>
<input type="number" id="premium_percent" name="premium_percent" step="0.01" min="0" max="100" value="0" required>
<label for="premium_sign">Premium sign</label>
<select id="premium_sign" name="premium_sign">
<option value="above">Above</option>
<option value="below">Below</option>
</select>
<p><button type="submit">Generate Documents</button> <a href="/bills">Cancel</a></p>
</form>
<p class="muted">Rows with malformed cells are defaulted and reported, never dropped silently.</p>
`)
		return err
	}))
}
