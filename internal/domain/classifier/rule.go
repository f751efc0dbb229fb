package classifier

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/okian/talentmatch/internal/domain/features"
)

const ruleCostLimit = 100_000

// DefaultRule matches when every gate feature equals 1.
func DefaultRule() string {
	gates := features.GateColumns()
	terms := make([]string, len(gates))
	for i, g := range gates {
		terms[i] = g + " == 1.0"
	}
	return strings.Join(terms, " && ")
}

// Rule scores rows with a boolean CEL expression over feature columns. The
// score is 1 when the expression holds and 0 otherwise.
type Rule struct {
	expr    string
	columns []string
	prog    cel.Program
}

// NewRule compiles expr with every column declared as a double variable. An
// empty expr selects DefaultRule.
func NewRule(expr string, columns []string) (*Rule, error) {
	if strings.TrimSpace(expr) == "" {
		expr = DefaultRule()
	}
	if len(columns) == 0 {
		columns = features.DefaultColumns()
	}

	opts := make([]cel.EnvOption, 0, len(columns))
	for _, c := range columns {
		opts = append(opts, cel.Variable(c, cel.DoubleType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrInvalidRule, err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: compile: %w", ErrInvalidRule, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression yields %s, want bool", ErrInvalidRule, ast.OutputType())
	}
	prog, err := env.Program(ast, cel.CostLimit(ruleCostLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: program: %w", ErrInvalidRule, err)
	}

	return &Rule{
		expr:    expr,
		columns: append([]string(nil), columns...),
		prog:    prog,
	}, nil
}

// Kind implements Classifier.
func (r *Rule) Kind() Kind { return KindRuleBased }

// Columns implements Classifier.
func (r *Rule) Columns() []string { return append([]string(nil), r.columns...) }

// Expression returns the compiled source.
func (r *Rule) Expression() string { return r.expr }

// Predict implements Classifier.
func (r *Rule) Predict(m features.Matrix) ([]bool, error) {
	pos, err := bind(r.columns, m)
	if err != nil {
		return nil, err
	}
	out := make([]bool, m.Len())
	for i, row := range m.Rows {
		vars := make(map[string]any, len(pos))
		for j, p := range pos {
			vars[r.columns[j]] = row[p]
		}
		val, _, err := r.prog.Eval(vars)
		if err != nil {
			return nil, features.Transformationf("rule", "row %d: %v", i, err)
		}
		b, ok := val.Value().(bool)
		if !ok {
			return nil, features.Transformationf("rule", "row %d: non-boolean result %v", i, val.Value())
		}
		out[i] = b
	}
	return out, nil
}

// PredictProba implements Classifier.
func (r *Rule) PredictProba(m features.Matrix) ([]float64, error) {
	labels, err := r.Predict(m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(labels))
	for i, l := range labels {
		if l {
			out[i] = 1
		}
	}
	return out, nil
}
