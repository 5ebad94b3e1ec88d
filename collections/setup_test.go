package collections_test

import (
	"testing"

	"billgen/collections"
	"billgen/testhelpers"
)

func TestSetup_CreatesBillsCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("bills")
	if err != nil {
		t.Fatalf("bills collection not found: %v", err)
	}

	for _, field := range []string{"title", "premium_percent", "premium_sign",
		"grand_total", "net_payable", "anomaly_count", "payload", "created", "updated"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("bills collection missing field %q", field)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// NewTestApp already ran Setup once; a second run must be a no-op.
	collections.Setup(app)

	if _, err := app.FindCollectionByNameOrId("bills"); err != nil {
		t.Fatalf("bills collection lost after re-run: %v", err)
	}
}

func TestSetup_RecordsSaveAndLoad(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	result := testhelpers.SampleBillResult(t)
	rec := testhelpers.CreateTestBill(t, app, "Roundtrip", result)

	loaded, err := app.FindRecordById("bills", rec.Id)
	if err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if loaded.GetString("title") != "Roundtrip" {
		t.Errorf("title = %q", loaded.GetString("title"))
	}
	if loaded.GetString("payload") == "" {
		t.Error("payload should hold the canonical result")
	}
}
