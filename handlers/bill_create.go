package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgen/services"
	"billgen/templates"
)

// HandleBillNew returns a handler that renders the upload form.
func HandleBillNew(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		component := templates.BillUploadPage(templates.UploadData{})
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleBillGenerate returns a handler that accepts an uploaded workbook
// plus the tender premium configuration, runs the computation pipeline,
// stores the canonical result on a bills record and redirects to the
// list. Schema and validation problems re-render the form with the
// message; row anomalies are stored, not fatal.
func HandleBillGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("workbook")
		if err != nil {
			return renderUploadError(e, http.StatusBadRequest, "A workbook file is required")
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			return renderUploadError(e, http.StatusBadRequest, "Unsupported file format: must be .xlsx")
		}

		percentRaw := strings.TrimSpace(e.Request.FormValue("premium_percent"))
		percent, err := strconv.ParseFloat(percentRaw, 64)
		if err != nil {
			return renderUploadError(e, http.StatusBadRequest, "Tender premium percent must be a number")
		}

		cfg := services.PremiumConfig{
			Percent: percent,
			Sign:    services.PremiumSign(e.Request.FormValue("premium_sign")),
		}

		input, err := services.ParseBillWorkbook(file)
		if err != nil {
			log.Printf("bill_create: parse workbook: %v", err)
			return renderUploadError(e, http.StatusBadRequest, err.Error())
		}

		result, err := services.GenerateBill(*input, cfg)
		if err != nil {
			var schemaErr *services.SchemaError
			var validationErr *services.ValidationError
			if errors.As(err, &schemaErr) || errors.As(err, &validationErr) {
				return renderUploadError(e, http.StatusUnprocessableEntity, err.Error())
			}
			log.Printf("bill_create: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate bill")
		}

		if err := saveBillRecord(app, header.Filename, cfg, result); err != nil {
			log.Printf("bill_create: save: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save bill")
		}

		return e.Redirect(http.StatusFound, "/bills")
	}
}

// billTitle picks a display title from the workbook metadata, falling
// back to the uploaded file name.
func billTitle(fileName string, result *services.BillResult) string {
	for _, key := range []string{"Name of Work", "Name of work", "Work"} {
		if v := result.Title[key]; v != "" {
			return v
		}
	}
	return strings.TrimSuffix(fileName, ".xlsx")
}

func saveBillRecord(app *pocketbase.PocketBase, fileName string, cfg services.PremiumConfig, result *services.BillResult) error {
	col, err := app.FindCollectionByNameOrId("bills")
	if err != nil {
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	record := core.NewRecord(col)
	record.Set("title", billTitle(fileName, result))
	record.Set("premium_percent", cfg.Percent)
	record.Set("premium_sign", string(cfg.Sign))
	record.Set("grand_total", result.Totals.GrandTotal)
	record.Set("net_payable", result.Totals.NetPayable)
	record.Set("anomaly_count", len(result.Anomalies))
	record.Set("payload", string(payload))

	return app.Save(record)
}

func renderUploadError(e *core.RequestEvent, status int, msg string) error {
	e.Response.WriteHeader(status)
	component := templates.BillUploadPage(templates.UploadData{Error: msg})
	return component.Render(e.Request.Context(), e.Response)
}
