package handlers

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgen/services"
)

// loadBillResult fetches a bill record and decodes its stored canonical
// result.
func loadBillResult(app *pocketbase.PocketBase, billID string) (*services.BillResult, string, error) {
	rec, err := app.FindRecordById("bills", billID)
	if err != nil {
		return nil, "", fmt.Errorf("bill not found: %w", err)
	}

	var result services.BillResult
	if err := json.Unmarshal([]byte(rec.GetString("payload")), &result); err != nil {
		return nil, "", fmt.Errorf("decode bill payload: %w", err)
	}
	return &result, rec.GetString("title"), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleBillExportExcel returns a handler that downloads the six-sheet
// statutory workbook for a bill.
func HandleBillExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billID := e.Request.PathValue("id")
		if billID == "" {
			return e.String(http.StatusBadRequest, "Missing bill ID")
		}

		result, title, err := loadBillResult(app, billID)
		if err != nil {
			log.Printf("bill_export: %v", err)
			return e.String(http.StatusNotFound, "Bill not found")
		}

		xlsxBytes, err := services.GenerateExcel(result)
		if err != nil {
			log.Printf("bill_export: failed to generate excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Bill_%s_%d.xlsx", sanitizeFilename(title), time.Now().Year())
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBillExportPDF returns a handler that downloads the bill PDF.
func HandleBillExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billID := e.Request.PathValue("id")
		if billID == "" {
			return e.String(http.StatusBadRequest, "Missing bill ID")
		}

		result, title, err := loadBillResult(app, billID)
		if err != nil {
			log.Printf("bill_export: %v", err)
			return e.String(http.StatusNotFound, "Bill not found")
		}

		pdfBytes, err := services.GeneratePDF(result)
		if err != nil {
			log.Printf("bill_export: failed to generate pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Bill_%s_%d.pdf", sanitizeFilename(title), time.Now().Year())
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleBillExportCSV returns a handler that downloads the canonical rows
// as CSV.
func HandleBillExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billID := e.Request.PathValue("id")
		if billID == "" {
			return e.String(http.StatusBadRequest, "Missing bill ID")
		}

		result, title, err := loadBillResult(app, billID)
		if err != nil {
			log.Printf("bill_export: %v", err)
			return e.String(http.StatusNotFound, "Bill not found")
		}

		csvBytes, err := services.GenerateCSV(result)
		if err != nil {
			log.Printf("bill_export: failed to generate csv: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
		}

		filename := fmt.Sprintf("Bill_%s_%d.csv", sanitizeFilename(title), time.Now().Year())
		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}

// HandleBillDownloadAll returns a handler that bundles the Excel, PDF and
// CSV documents for a bill into one zip download.
func HandleBillDownloadAll(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billID := e.Request.PathValue("id")
		if billID == "" {
			return e.String(http.StatusBadRequest, "Missing bill ID")
		}

		result, title, err := loadBillResult(app, billID)
		if err != nil {
			log.Printf("bill_export: %v", err)
			return e.String(http.StatusNotFound, "Bill not found")
		}

		type document struct {
			name     string
			generate func(*services.BillResult) ([]byte, error)
		}
		base := sanitizeFilename(title)
		documents := []document{
			{base + ".xlsx", services.GenerateExcel},
			{base + ".pdf", services.GeneratePDF},
			{base + ".csv", services.GenerateCSV},
		}

		// Generate everything before writing headers so a failure can
		// still return a clean error response.
		contents := make(map[string][]byte, len(documents))
		for _, doc := range documents {
			docBytes, err := doc.generate(result)
			if err != nil {
				log.Printf("bill_export: failed to generate %s: %v", doc.name, err)
				return e.String(http.StatusInternalServerError, "Failed to generate documents")
			}
			contents[doc.name] = docBytes
		}

		filename := fmt.Sprintf("Bill_%s_%d.zip", base, time.Now().Year())
		e.Response.Header().Set("Content-Type", "application/zip")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

		zw := zip.NewWriter(e.Response)
		for _, doc := range documents {
			w, err := zw.Create(doc.name)
			if err != nil {
				return fmt.Errorf("zip create %s: %w", doc.name, err)
			}
			if _, err := w.Write(contents[doc.name]); err != nil {
				return fmt.Errorf("zip write %s: %w", doc.name, err)
			}
		}
		return zw.Close()
	}
}

// HandleBillDelete returns a handler that deletes a generated bill.
func HandleBillDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		billID := e.Request.PathValue("id")
		if billID == "" {
			return e.String(http.StatusBadRequest, "Missing bill ID")
		}

		rec, err := app.FindRecordById("bills", billID)
		if err != nil {
			return e.String(http.StatusNotFound, "Bill not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("bill_delete: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to delete bill")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
