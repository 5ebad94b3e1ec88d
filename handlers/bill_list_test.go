package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"billgen/testhelpers"
)

func TestHandleBillList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	testhelpers.CreateTestBill(t, app, "CC Road Phase 1", result)
	testhelpers.CreateTestBill(t, app, "Culvert Repair", result)

	handler := HandleBillList(app)
	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"CC Road Phase 1", "Culvert Repair", "10.00% above")
}

func TestHandleBillList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBillList(app)
	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "No bills generated yet.")
}

func TestHandleBillList_ShowsNetPayable(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	testhelpers.CreateTestBill(t, app, "Payable Check", result)

	handler := HandleBillList(app)
	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// FormatINR(54696) → "₹54,696.00"; "54,696" is the reliable substring.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "54,696")
}
