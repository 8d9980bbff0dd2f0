package conditions

import (
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/logging"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCL evaluates conditions written as HCL expressions.
type HCL struct {
	logger zerolog.Logger
}

// NewHCL returns the default condition evaluator.
func NewHCL() *HCL {
	return &HCL{logger: logging.GetLogger("conditions")}
}

// Evaluate parses and evaluates condition. Parse errors, evaluation errors
// and results that are not a known bool are CONDITION_EVAL errors.
func (h *HCL) Evaluate(condition string, props properties.Snapshot) (bool, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(condition), "condition", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return false, errors.Wrapf(diags, errors.ErrConditionEval, "cannot parse condition %q", condition).
			WithDetail("condition", condition)
	}

	val, diags := expr.Value(h.evalContext(expr, props))
	if diags.HasErrors() {
		return false, errors.Wrapf(diags, errors.ErrConditionEval, "cannot evaluate condition %q", condition).
			WithDetail("condition", condition)
	}

	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Bool) {
		return false, errors.Newf(errors.ErrConditionEval,
			"condition %q evaluated to %s, want bool", condition, val.Type().FriendlyName()).
			WithDetail("condition", condition)
	}

	result := val.True()
	h.logger.Trace().Str("condition", condition).Bool("result", result).Msg("Condition evaluated")
	return result, nil
}

func (h *HCL) evalContext(expr hcl.Expression, props properties.Snapshot) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, seen := vars[name]; seen {
			continue
		}
		vars[name] = listValue(props.Values(name))
	}

	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"contains": containsFunc,
			"isEmpty":  isEmptyFunc,
			"value":    valueFunc(props),
			"scalar":   scalarFunc(props),
			"length":   stdlib.LengthFunc,
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
		},
	}
}

func listValue(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	elems := make([]cty.Value, len(values))
	for i, v := range values {
		elems[i] = cty.StringVal(v)
	}
	return cty.ListVal(elems)
}

var containsFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "list", Type: cty.List(cty.String)},
		{Name: "value", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		want := args[1].AsString()
		for it := args[0].ElementIterator(); it.Next(); {
			_, v := it.Element()
			if v.AsString() == want {
				return cty.True, nil
			}
		}
		return cty.False, nil
	},
})

var isEmptyFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "list", Type: cty.List(cty.String)},
	},
	Type: function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.BoolVal(args[0].LengthInt() == 0), nil
	},
})

// valueFunc reads any property, including dotted paths that cannot be
// written as HCL identifiers.
func valueFunc(props properties.Snapshot) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return listValue(props.Values(args[0].AsString())), nil
		},
	})
}

func scalarFunc(props properties.Snapshot) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(props.Value(args[0].AsString())), nil
		},
	})
}
