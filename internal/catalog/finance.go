package catalog

import (
	"math"

	"github.com/ramizraja09/calcpad/internal/calc"
)

// loanPayment computes the fixed monthly payment on an amortized loan.
// A zero rate degenerates to straight division of the principal.
func loanPayment(v calc.Values) (*calc.Result, error) {
	principal := v.Number("principal")
	months := v.Number("months")
	monthlyRate := v.Number("rate") / 100 / 12

	payment := principal / months
	if monthlyRate > 0 {
		payment = principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -months))
	}
	total := payment * months

	return calc.NewResult(
		calc.Num("payment", "Monthly Payment", payment, "", 2),
		calc.Num("total", "Total Paid", total, "", 2),
		calc.Num("interest", "Total Interest", total-principal, "", 2),
	), nil
}

// compoundingPeriods maps each compounding option to periods per year.
var compoundingPeriods = map[string]float64{
	"annually":  1,
	"quarterly": 4,
	"monthly":   12,
	"daily":     365,
}

func compoundInterest(v calc.Values) (*calc.Result, error) {
	principal := v.Number("principal")
	n := compoundingPeriods[v.Text("compounding")]
	amount := principal * math.Pow(1+v.Number("rate")/100/n, n*v.Number("years"))

	return calc.NewResult(
		calc.Num("amount", "Final Amount", amount, "", 2),
		calc.Num("interest", "Interest Earned", amount-principal, "", 2),
	), nil
}

func unitPrice(v calc.Values) (*calc.Result, error) {
	unitA := v.Number("price_a") / v.Number("qty_a")
	unitB := v.Number("price_b") / v.Number("qty_b")

	verdict := "Both items cost the same"
	switch {
	case unitA < unitB:
		verdict = v.Text("item_a")
	case unitB < unitA:
		verdict = v.Text("item_b")
	}

	return calc.NewResult(
		calc.Num("unit_a", "First Unit Price", unitA, "", 4),
		calc.Num("unit_b", "Second Unit Price", unitB, "", 4),
		calc.Txt("verdict", "Better Buy", verdict),
	), nil
}
