package catalog

import "github.com/ramizraja09/calcpad/internal/calc"

// bmiCategory buckets a BMI value per the WHO adult classification.
func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obesity"
	}
}

func computeBMI(v calc.Values) (*calc.Result, error) {
	meters := v.Number("height") / 100
	bmi := v.Number("weight") / (meters * meters)

	return calc.NewResult(
		calc.Num("bmi", "BMI", bmi, "", 1),
		calc.Txt("category", "Category", bmiCategory(bmi)),
	), nil
}
