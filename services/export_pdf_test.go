package services

import (
	"bytes"
	"testing"
)

func TestGeneratePDF(t *testing.T) {
	data, err := GeneratePDF(sampleResult(t))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF, got %q", data[:min(len(data), 8)])
	}
	if len(data) < 1000 {
		t.Errorf("pdf suspiciously small: %d bytes", len(data))
	}
}

func TestGeneratePDF_NoExtraItems(t *testing.T) {
	in := sampleBillInput()
	in.ExtraItemHeaders = nil
	in.ExtraItemRows = nil
	result, err := GenerateBill(in, PremiumConfig{Percent: 10, Sign: SignAbove})
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}

	data, err := GeneratePDF(result)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a pdf")
	}
}
