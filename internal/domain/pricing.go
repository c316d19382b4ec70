package domain

import "errors"

// DefaultTaxRate is the projected sales tax rate applied per unit when none is configured
const DefaultTaxRate = 0.10

// DerivedFields holds the figures computed from a line item's numeric inputs
// All values keep full float64 precision; rounding happens at presentation
type DerivedFields struct {
	UnitPaid                  float64
	TaxesSum                  float64
	TaxExpectedPerUnit        float64
	MarginPercent             float64
	AmountPaidTotal           float64
	ProjectedTaxExpectedTotal float64
	ProjectedEarningsTotal    float64
}

// PricingCalculator computes derived pricing figures at a fixed tax rate
type PricingCalculator struct {
	TaxRate float64
}

// NewPricingCalculator creates a PricingCalculator for the given tax rate
func NewPricingCalculator(taxRate float64) (*PricingCalculator, error) {
	if taxRate < 0 || taxRate > 1 {
		return nil, errors.New("tax rate must be between 0 and 1")
	}
	return &PricingCalculator{TaxRate: taxRate}, nil
}

// ComputeDerived calculates the derived fields for a purchase
// Logic:
//   - UnitPaid = paid / quantity (paid itself when quantity is not positive)
//   - TaxesSum = sum of taxLines
//   - TaxExpectedPerUnit = salePrice * TaxRate
//   - MarginPercent = (salePrice - UnitPaid) / UnitPaid * 100, or 0 when UnitPaid is not positive
//   - Totals multiply the per-unit figures back by quantity
func (c *PricingCalculator) ComputeDerived(paid float64, taxLines []float64, quantity int, salePrice float64) DerivedFields {
	unitPaid := paid
	if quantity > 0 {
		unitPaid = paid / float64(quantity)
	}

	taxesSum := 0.0
	for _, tax := range taxLines {
		taxesSum += tax
	}

	taxExpectedPerUnit := salePrice * c.TaxRate

	marginPercent := 0.0
	if unitPaid > 0 {
		marginPercent = ((salePrice - unitPaid) / unitPaid) * 100
	}

	qty := float64(quantity)

	return DerivedFields{
		UnitPaid:                  unitPaid,
		TaxesSum:                  taxesSum,
		TaxExpectedPerUnit:        taxExpectedPerUnit,
		MarginPercent:             marginPercent,
		AmountPaidTotal:           unitPaid * qty,
		ProjectedTaxExpectedTotal: taxExpectedPerUnit * qty,
		ProjectedEarningsTotal:    (salePrice - unitPaid) * qty,
	}
}
