package catalog

import "github.com/ramizraja09/calcpad/internal/calc"

// dateDifference counts whole days between two dates. Inputs are normalized
// to midnight UTC, so the division is exact.
func dateDifference(v calc.Values) (*calc.Result, error) {
	days := v.Date("end").Sub(v.Date("start")).Hours() / 24
	return calc.NewResult(
		calc.Num("days", "Days", days, "", 0),
		calc.Num("weeks", "Weeks", days/7, "", 1),
	), nil
}

func dateAdd(v calc.Values) (*calc.Result, error) {
	result := v.Date("start").AddDate(0, 0, int(v.Number("days")))
	return calc.NewResult(calc.Day("date", "Resulting Date", result)), nil
}
