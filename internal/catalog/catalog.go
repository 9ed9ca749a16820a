// Package catalog assembles the built-in calculators: declarative input
// schemas from the embedded CUE catalog, bound to their Go compute
// functions. Assembly happens once at startup and fails loudly on any
// mismatch between declarations and functions.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/ramizraja09/calcpad/internal/calc"
	"github.com/ramizraja09/calcpad/internal/registry"
	"github.com/ramizraja09/calcpad/internal/schema"
)

//go:embed catalog.cue
var catalogCUE string

// computeFuncs binds each declared id to its computation. A declaration
// without a function here, or a function without a declaration, fails
// assembly.
var computeFuncs = map[string]calc.ComputeFunc{
	"length-converter":      convertLength,
	"temperature-converter": convertTemperature,
	"mesh-micron":           convertMeshMicron,
	"acreage":               computeAcreage,
	"combinations":          computeCombinations,
	"percent-change":        computePercentChange,
	"date-difference":       dateDifference,
	"date-add":              dateAdd,
	"loan-payment":          loanPayment,
	"compound-interest":     compoundInterest,
	"unit-price":            unitPrice,
	"bmi":                   computeBMI,
}

// New assembles the built-in calculator registry from the embedded
// declarations. Catalog order becomes registry order.
func New() (*registry.Registry, error) {
	decls, err := schema.Compile(catalogCUE)
	if err != nil {
		return nil, fmt.Errorf("compile catalog: %w", err)
	}

	reg := registry.New()
	bound := make(map[string]bool, len(decls))
	for i := range decls {
		decl := &decls[i]
		fn, ok := computeFuncs[decl.ID]
		if !ok {
			return nil, fmt.Errorf("assemble catalog: %s has no compute function", decl.ID)
		}
		bound[decl.ID] = true

		def := &calc.Definition{
			ID:          decl.ID,
			Name:        decl.Name,
			Category:    decl.Category,
			Description: decl.Description,
			Schema:      decl.Schema,
			Func:        fn,
		}
		if err := reg.Register(def); err != nil {
			return nil, fmt.Errorf("assemble catalog: %w", err)
		}
	}

	for id := range computeFuncs {
		if !bound[id] {
			return nil, fmt.Errorf("assemble catalog: %s has no declaration", id)
		}
	}
	return reg, nil
}
