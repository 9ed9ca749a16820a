// Package schema compiles the declarative calculator catalog, written in
// CUE, into calc.InputSchema values at assembly time. Declarations are
// parsed once at startup; a malformed catalog is a fatal configuration
// error, never a runtime condition.
package schema

import (
	"fmt"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/ramizraja09/calcpad/internal/calc"
)

// Decl is one calculator declaration from the catalog source, ready to be
// bound to its compute function.
type Decl struct {
	ID          string
	Name        string
	Category    calc.Category
	Description string
	Schema      *calc.InputSchema
}

// CompileError reports an invalid declaration in the catalog source.
type CompileError struct {
	Path    string // declaration path, e.g. "calculators[2].inputs[0]"
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// idPattern constrains calculator ids to lowercase kebab-case.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Compile parses CUE catalog source and returns the declared calculators in
// declaration order. The source must define a `calculators` list.
func Compile(source string) ([]Decl, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(source, cue.Filename("catalog.cue"))
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	list := root.LookupPath(cue.ParsePath("calculators"))
	if !list.Exists() {
		return nil, &CompileError{Path: "calculators", Message: "calculators list is required"}
	}

	iter, err := list.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var decls []Decl
	seen := make(map[string]bool)
	for i := 0; iter.Next(); i++ {
		path := fmt.Sprintf("calculators[%d]", i)
		decl, err := compileDecl(ctx, iter.Value(), path)
		if err != nil {
			return nil, err
		}
		if seen[decl.ID] {
			return nil, &CompileError{Path: path + ".id", Message: fmt.Sprintf("duplicate id %q", decl.ID)}
		}
		seen[decl.ID] = true
		decls = append(decls, *decl)
	}
	if len(decls) == 0 {
		return nil, &CompileError{Path: "calculators", Message: "at least one calculator is required"}
	}
	return decls, nil
}

// compileDecl parses a single calculator declaration.
func compileDecl(ctx *cue.Context, v cue.Value, path string) (*Decl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	decl := &Decl{Schema: &calc.InputSchema{}}

	id, err := requiredString(v, "id", path)
	if err != nil {
		return nil, err
	}
	if !idPattern.MatchString(id) {
		return nil, &CompileError{
			Path:    path + ".id",
			Message: fmt.Sprintf("id %q must be lowercase kebab-case", id),
			Pos:     v.Pos(),
		}
	}
	decl.ID = id

	if decl.Name, err = requiredString(v, "name", path); err != nil {
		return nil, err
	}
	if decl.Description, err = requiredString(v, "description", path); err != nil {
		return nil, err
	}

	catStr, err := requiredString(v, "category", path)
	if err != nil {
		return nil, err
	}
	cat, err := calc.ParseCategory(catStr)
	if err != nil {
		return nil, &CompileError{Path: path + ".category", Message: err.Error(), Pos: v.Pos()}
	}
	decl.Category = cat

	if decl.Schema.Fields, err = compileFields(v, path); err != nil {
		return nil, err
	}
	if decl.Schema.Refinements, err = compileRules(ctx, v, path); err != nil {
		return nil, err
	}

	return decl, nil
}

// compileFields parses the inputs list of a declaration.
func compileFields(v cue.Value, path string) ([]calc.Field, error) {
	inputsVal := v.LookupPath(cue.ParsePath("inputs"))
	if !inputsVal.Exists() {
		return nil, &CompileError{Path: path + ".inputs", Message: "inputs list is required", Pos: v.Pos()}
	}
	iter, err := inputsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []calc.Field
	seen := make(map[string]bool)
	for i := 0; iter.Next(); i++ {
		fpath := fmt.Sprintf("%s.inputs[%d]", path, i)
		field, err := compileField(iter.Value(), fpath)
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, &CompileError{Path: fpath + ".name", Message: fmt.Sprintf("duplicate field %q", field.Name)}
		}
		seen[field.Name] = true
		fields = append(fields, *field)
	}
	if len(fields) == 0 {
		return nil, &CompileError{Path: path + ".inputs", Message: "at least one input is required", Pos: v.Pos()}
	}
	return fields, nil
}

// compileField parses a single input field declaration.
func compileField(v cue.Value, path string) (*calc.Field, error) {
	field := &calc.Field{}

	var err error
	if field.Name, err = requiredString(v, "name", path); err != nil {
		return nil, err
	}
	if field.Label, err = requiredString(v, "label", path); err != nil {
		return nil, err
	}

	typeStr, err := requiredString(v, "type", path)
	if err != nil {
		return nil, err
	}
	switch calc.FieldType(typeStr) {
	case calc.FieldNumber, calc.FieldEnum, calc.FieldDate, calc.FieldText:
		field.Type = calc.FieldType(typeStr)
	default:
		return nil, &CompileError{
			Path:    path + ".type",
			Message: fmt.Sprintf("invalid type %q, must be number, enum, date, or text", typeStr),
			Pos:     v.Pos(),
		}
	}

	if unitVal := v.LookupPath(cue.ParsePath("unit")); unitVal.Exists() {
		if field.Unit, err = unitVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if minVal := v.LookupPath(cue.ParsePath("min")); minVal.Exists() {
		f, err := minVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		field.Min = calc.Bound(f)
	}
	if maxVal := v.LookupPath(cue.ParsePath("max")); maxVal.Exists() {
		f, err := maxVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		field.Max = calc.Bound(f)
	}
	if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
		return nil, &CompileError{Path: path, Message: "min must not exceed max", Pos: v.Pos()}
	}
	if intVal := v.LookupPath(cue.ParsePath("integer")); intVal.Exists() {
		if field.Integer, err = intVal.Bool(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	optsVal := v.LookupPath(cue.ParsePath("options"))
	if field.Type == calc.FieldEnum {
		if !optsVal.Exists() {
			return nil, &CompileError{Path: path + ".options", Message: "enum fields require options", Pos: v.Pos()}
		}
		optIter, err := optsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for optIter.Next() {
			opt, err := optIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			field.Options = append(field.Options, opt)
		}
		if len(field.Options) < 2 {
			return nil, &CompileError{Path: path + ".options", Message: "enum fields require at least two options", Pos: v.Pos()}
		}
	} else if optsVal.Exists() {
		return nil, &CompileError{Path: path + ".options", Message: "options are only valid on enum fields", Pos: v.Pos()}
	}

	return field, nil
}

// compileRules parses and compiles the cross-field rules of a declaration.
// Each rule expression is compiled once here; evaluation happens per
// computation in calc.Refinement.Holds.
func compileRules(ctx *cue.Context, v cue.Value, path string) ([]calc.Refinement, error) {
	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, nil
	}
	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var refinements []calc.Refinement
	for i := 0; iter.Next(); i++ {
		rpath := fmt.Sprintf("%s.rules[%d]", path, i)
		rv := iter.Value()

		ref := calc.Refinement{}
		fieldsVal := rv.LookupPath(cue.ParsePath("fields"))
		if !fieldsVal.Exists() {
			return nil, &CompileError{Path: rpath + ".fields", Message: "fields list is required", Pos: rv.Pos()}
		}
		fieldIter, err := fieldsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for fieldIter.Next() {
			name, err := fieldIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			ref.Fields = append(ref.Fields, name)
		}
		if len(ref.Fields) == 0 {
			return nil, &CompileError{Path: rpath + ".fields", Message: "at least one field is required", Pos: rv.Pos()}
		}

		if ref.Message, err = requiredString(rv, "message", rpath); err != nil {
			return nil, err
		}
		expr, err := requiredString(rv, "expr", rpath)
		if err != nil {
			return nil, err
		}

		rule := ctx.CompileString("inputs: _\nok: "+expr, cue.Filename("rule.cue"))
		if err := rule.Err(); err != nil {
			return nil, &CompileError{
				Path:    rpath + ".expr",
				Message: fmt.Sprintf("invalid rule expression %q: %v", expr, err),
				Pos:     rv.Pos(),
			}
		}
		ref.Rule = rule
		refinements = append(refinements, ref)
	}
	return refinements, nil
}

// requiredString reads a mandatory string attribute from a declaration.
func requiredString(v cue.Value, name, path string) (string, error) {
	val := v.LookupPath(cue.ParsePath(name))
	if !val.Exists() {
		return "", &CompileError{Path: path + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	if s == "" {
		return "", &CompileError{Path: path + "." + name, Message: name + " must be non-empty", Pos: v.Pos()}
	}
	return s, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Path:    "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
