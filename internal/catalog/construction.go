package catalog

import "github.com/ramizraja09/calcpad/internal/calc"

// squareFeetPerAcre is the survey definition of an acre.
const squareFeetPerAcre = 43560

func computeAcreage(v calc.Values) (*calc.Result, error) {
	sqft := v.Number("length") * v.Number("width")
	return calc.NewResult(
		calc.Num("sqft", "Square Footage", sqft, "sq ft", 2),
		calc.Num("acres", "Acres", sqft/squareFeetPerAcre, "acres", 4),
	), nil
}
