package handlers

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"billgen/testhelpers"
)

func TestHandleBillExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	bill := testhelpers.CreateTestBill(t, app, "Export Test", result)

	handler := HandleBillExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, "/bills/"+bill.Id+"/export/excel", nil)
	req.SetPathValue("id", bill.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Export-Test") {
		t.Errorf("Content-Disposition = %q, want sanitized title", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 6 {
		t.Errorf("got %d sheets, want 6: %v", len(sheets), sheets)
	}
}

func TestHandleBillExportExcel_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBillExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, "/bills/nonexistent/export/excel", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleBillExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	bill := testhelpers.CreateTestBill(t, app, "PDF Export", result)

	handler := HandleBillExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, "/bills/"+bill.Id+"/export/pdf", nil)
	req.SetPathValue("id", bill.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response is not a pdf")
	}
}

func TestHandleBillExportCSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	bill := testhelpers.CreateTestBill(t, app, "CSV Export", result)

	handler := HandleBillExportCSV(app)
	req := httptest.NewRequest(http.MethodGet, "/bills/"+bill.Id+"/export/csv", nil)
	req.SetPathValue("id", bill.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "work_order") || !strings.Contains(body, "net_payable") {
		t.Errorf("csv missing expected sections:\n%s", body)
	}
}

func TestHandleBillDownloadAll(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	bill := testhelpers.CreateTestBill(t, app, "Bundle", result)

	handler := HandleBillDownloadAll(app)
	req := httptest.NewRequest(http.MethodGet, "/bills/"+bill.Id+"/download", nil)
	req.SetPathValue("id", bill.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	want := map[string]bool{"Bundle.xlsx": false, "Bundle.pdf": false, "Bundle.csv": false}
	for _, zf := range zr.File {
		if _, ok := want[zf.Name]; ok {
			want[zf.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("zip missing %s", name)
		}
	}
}

func TestHandleBillDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	bill := testhelpers.CreateTestBill(t, app, "To Delete", result)

	handler := HandleBillDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/bills/"+bill.Id, nil)
	req.SetPathValue("id", bill.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("bills", bill.Id); err == nil {
		t.Error("record should be gone after delete")
	}
}

func TestHandleBillDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBillDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/bills/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
