package catalog

import "github.com/ramizraja09/calcpad/internal/calc"

// metersPer maps each length option to its size in meters.
var metersPer = map[string]float64{
	"meters":      1,
	"feet":        0.3048,
	"inches":      0.0254,
	"yards":       0.9144,
	"kilometers":  1000,
	"miles":       1609.344,
	"centimeters": 0.01,
}

func convertLength(v calc.Values) (*calc.Result, error) {
	to := v.Text("to")
	converted := v.Number("value") * metersPer[v.Text("from")] / metersPer[to]
	return calc.NewResult(calc.Num("converted", "Converted", converted, to, 4)), nil
}

// convertTemperature converts via Celsius as the pivot scale.
func convertTemperature(v calc.Values) (*calc.Result, error) {
	value := v.Number("value")

	celsius := value
	switch v.Text("from") {
	case "fahrenheit":
		celsius = (value - 32) * 5 / 9
	case "kelvin":
		celsius = value - 273.15
	}

	to := v.Text("to")
	converted := celsius
	switch to {
	case "fahrenheit":
		converted = celsius*9/5 + 32
	case "kelvin":
		converted = celsius + 273.15
	}
	return calc.NewResult(calc.Num("converted", "Converted", converted, to, 2)), nil
}

// meshMicronFactor relates US mesh counts to micron openings. The same
// reciprocal factor applies in both directions.
const meshMicronFactor = 14832

func convertMeshMicron(v calc.Values) (*calc.Result, error) {
	converted := meshMicronFactor / v.Number("value")
	if v.Text("direction") == "micron-to-mesh" {
		return calc.NewResult(calc.Num("converted", "Mesh Size", converted, "", 2)), nil
	}
	return calc.NewResult(calc.Num("converted", "Micron Size", converted, "microns", 2)), nil
}
