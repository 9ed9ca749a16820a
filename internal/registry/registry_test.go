package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramizraja09/calcpad/internal/calc"
)

func testDef(id, name string, cat calc.Category) *calc.Definition {
	return &calc.Definition{
		ID:       id,
		Name:     name,
		Category: cat,
		Schema: &calc.InputSchema{Fields: []calc.Field{
			{Name: "value", Label: "Value", Type: calc.FieldNumber},
		}},
		Func: func(v calc.Values) (*calc.Result, error) {
			return calc.NewResult(calc.Num("value", "Value", v.Number("value"), "", 2)), nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(testDef("bmi", "BMI Calculator", calc.CategoryHealth)))

	def, ok := r.Get("bmi")
	require.True(t, ok)
	assert.Equal(t, "BMI Calculator", def.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(testDef("bmi", "BMI Calculator", calc.CategoryHealth)))
	err := r.Register(testDef("bmi", "Other", calc.CategoryHealth))

	var dup *DuplicateDefinitionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "bmi", dup.ID)
}

func TestRegisterRejectsIncompleteDefinitions(t *testing.T) {
	r := New()

	assert.Error(t, r.Register(&calc.Definition{}))
	assert.Error(t, r.Register(&calc.Definition{ID: "x"}))
	assert.Error(t, r.Register(&calc.Definition{ID: "x", Schema: &calc.InputSchema{}}))
}

func TestOrderIsPreserved(t *testing.T) {
	r := New()
	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(testDef(id, fmt.Sprintf("Calc %d", i), calc.CategoryMath)))
	}

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)
}

func TestByCategory(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testDef("bmi", "BMI", calc.CategoryHealth)))
	require.NoError(t, r.Register(testDef("loan", "Loan", calc.CategoryFinance)))
	require.NoError(t, r.Register(testDef("combinations", "Combinations", calc.CategoryMath)))

	health := r.ByCategory(calc.CategoryHealth)
	require.Len(t, health, 1)
	assert.Equal(t, "bmi", health[0].ID)

	assert.Empty(t, r.ByCategory(calc.CategoryDatetime))
}

func TestNamesAndByName(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testDef("bmi", "BMI Calculator", calc.CategoryHealth)))
	require.NoError(t, r.Register(testDef("loan-payment", "Loan Payment", calc.CategoryFinance)))

	assert.Equal(t, []string{"BMI Calculator", "Loan Payment"}, r.Names())

	def, ok := r.ByName("loan payment")
	require.True(t, ok)
	assert.Equal(t, "loan-payment", def.ID)

	_, ok = r.ByName("Mortgage")
	assert.False(t, ok)
}
