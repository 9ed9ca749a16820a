package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResultValueDisplayGroupsDigits(t *testing.T) {
	rv := Num("sqft", "Square Footage", 43559.8641, "sq ft", 2)

	assert.Equal(t, "43,559.86", rv.Display())
}

func TestResultValuePlainSkipsGrouping(t *testing.T) {
	rv := Num("sqft", "Square Footage", 43559.8641, "sq ft", 2)

	assert.Equal(t, "43559.86", rv.Plain())
}

func TestResultValuePrecisionIsFixed(t *testing.T) {
	// 43559.8641 / 43560 rounds up to exactly one acre at four decimals.
	rv := Num("acres", "Acres", 43559.8641/43560, "acres", 4)

	assert.Equal(t, "1.0000", rv.Plain())
	assert.Equal(t, "1.0000", rv.Display())
}

func TestResultValueText(t *testing.T) {
	rv := Txt("category", "Category", "Normal weight")

	assert.Equal(t, "Normal weight", rv.Display())
	assert.Equal(t, "Normal weight", rv.Plain())
}

func TestResultValueDate(t *testing.T) {
	rv := Day("date", "Resulting Date", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-03-15", rv.Display())
	assert.Equal(t, "2024-03-15", rv.Plain())
}

func TestResultSummary(t *testing.T) {
	r := NewResult(
		Num("bmi", "BMI", 22.857142857142858, "", 1),
		Txt("category", "Category", "Normal weight"),
	)

	assert.Equal(t, "BMI: 22.9; Category: Normal weight", r.Summary())
}

func TestResultSummaryIncludesUnits(t *testing.T) {
	r := NewResult(Num("converted", "Converted", 32.80839895013123, "feet", 4))

	assert.Equal(t, "Converted: 32.8084 feet", r.Summary())
}
