package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// PremiumSign says whether the tender premium adds to or subtracts from
// the base contract value.
type PremiumSign string

const (
	SignAbove PremiumSign = "above"
	SignBelow PremiumSign = "below"
)

// PremiumConfig is the tender premium for one bill. Build one per
// invocation and pass it down; nothing in the core holds it globally.
type PremiumConfig struct {
	Percent float64     `json:"percent"`
	Sign    PremiumSign `json:"sign"`
}

// Validate rejects a percent outside [0, 100] or an unrecognized sign.
// Out-of-domain values are never clamped.
func (c PremiumConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Percent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&c.Sign, validation.Required, validation.In(SignAbove, SignBelow)),
	)
	if err != nil {
		return &ValidationError{Field: "tender premium", Message: err.Error()}
	}
	return nil
}

// PremiumAmount computes the premium on a base total, negative when the
// tender is below. Rounded to two places like the totals it adjusts.
func PremiumAmount(total decimal.Decimal, c PremiumConfig) decimal.Decimal {
	amt := total.Mul(decimal.NewFromFloat(c.Percent)).Div(decimal.NewFromInt(100)).Round(2)
	if c.Sign == SignBelow {
		amt = amt.Neg()
	}
	return amt
}

// Deductions are the statutory recoveries on a contractor bill.
type Deductions struct {
	SecurityDeposit decimal.Decimal // 10%, whole rupee
	IncomeTax       decimal.Decimal // 2%, whole rupee
	GST             decimal.Decimal // 2%, rounded up to the next even rupee
	LabourCess      decimal.Decimal // 1%, whole rupee
}

// Total sums all four deductions.
func (d Deductions) Total() decimal.Decimal {
	return d.SecurityDeposit.Add(d.IncomeTax).Add(d.GST).Add(d.LabourCess)
}

// ComputeDeductions derives the statutory recoveries from the grand
// total. GST alone rounds up to the next even rupee; the others round to
// the nearest whole rupee.
func ComputeDeductions(base decimal.Decimal) Deductions {
	return Deductions{
		SecurityDeposit: percentOf(base, 10).Round(0),
		IncomeTax:       percentOf(base, 2).Round(0),
		GST:             RoundUpToEven(percentOf(base, 2)),
		LabourCess:      percentOf(base, 1).Round(0),
	}
}

func percentOf(base decimal.Decimal, pct int64) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100))
}
