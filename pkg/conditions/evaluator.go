package conditions

import (
	"github.com/arthur-debert/prjconf/pkg/properties"
)

// Evaluator decides whether condition holds for a property snapshot.
type Evaluator interface {
	Evaluate(condition string, props properties.Snapshot) (bool, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(condition string, props properties.Snapshot) (bool, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(condition string, props properties.Snapshot) (bool, error) {
	return f(condition, props)
}
