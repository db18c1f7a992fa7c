package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
)

// EvalContext builds the evaluation context for `when` expressions. The
// triggering event is exposed as an `event` object with kind, ref, and tag
// attributes.
func EvalContext(evt event.Context) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"event": cty.ObjectVal(map[string]cty.Value{
				"kind": cty.StringVal(evt.Kind.String()),
				"ref":  cty.StringVal(evt.Ref),
				"tag":  cty.StringVal(evt.TagName()),
			}),
		},
	}
}

// exprAbsent reports whether expr is the placeholder gohcl assigns to an
// optional expression field whose attribute is missing from the source: a
// static null that references no variables. A written expression either
// mentions variables or evaluates to a concrete value.
func exprAbsent(expr hcl.Expression) bool {
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// evalWhen evaluates a `when` expression against an event and coerces the
// result to a boolean.
func evalWhen(expr hcl.Expression, evt event.Context) (bool, error) {
	v, diags := expr.Value(EvalContext(evt))
	if diags.HasErrors() {
		return false, fmt.Errorf("evaluating when expression: %w", diags)
	}
	v, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("when expression must produce a boolean: %w", err)
	}
	if v.IsNull() {
		return false, fmt.Errorf("when expression produced null")
	}
	return v.True(), nil
}
