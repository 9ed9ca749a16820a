package catalog

import "github.com/ramizraja09/calcpad/internal/calc"

// computeCombinations counts r-selections from n items, unordered and
// ordered. The multiplicative form keeps every intermediate value integral,
// so no factorial is ever materialized.
func computeCombinations(v calc.Values) (*calc.Result, error) {
	n, r := v.Number("n"), v.Number("r")

	combinations := 1.0
	for i := 0.0; i < r; i++ {
		combinations = combinations * (n - i) / (i + 1)
	}
	permutations := 1.0
	for i := 0.0; i < r; i++ {
		permutations *= n - i
	}

	return calc.NewResult(
		calc.Num("combinations", "Combinations (nCr)", combinations, "", 0),
		calc.Num("permutations", "Permutations (nPr)", permutations, "", 0),
	), nil
}

func computePercentChange(v calc.Values) (*calc.Result, error) {
	original, updated := v.Number("original"), v.Number("updated")
	return calc.NewResult(
		calc.Num("change", "Percent Change", (updated-original)/original*100, "%", 2),
		calc.Num("difference", "Difference", updated-original, "", 2),
	), nil
}
