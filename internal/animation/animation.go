// Package animation evaluates the interactive lesson visualizations.
//
// Every evaluator is a pure function from a parameter set to a Result: the
// computed values shown next to the chart plus the chart geometry itself.
// Results are recomputed in full on each call.
package animation

import (
	"sort"
)

const (
	TypeQuadratic    = "quadratic-function"
	TypeLinearSystem = "linear-system"
	TypeCircle       = "circle-properties"
	TypeTrigonometry = "trigonometry"
	TypeRational     = "rational-equations"
	TypeSequences    = "sequences"
	TypePolynomial   = "polynomial-factorizer"
	TypeDerivative   = "derivative-explorer"
	TypeIntegral     = "integral-calculator"
	TypeProbability  = "probability-simulator"
	TypeInequality   = "inequality-solver"
)

// KnownTypes lists every animation type a lesson may reference, including the
// ones that only render a placeholder.
var KnownTypes = []string{
	TypeQuadratic,
	TypeLinearSystem,
	TypeCircle,
	TypeTrigonometry,
	TypeRational,
	TypeSequences,
	TypePolynomial,
	TypeDerivative,
	TypeIntegral,
	TypeProbability,
	TypeInequality,
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is a polyline drawn on the chart.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Dashed bool    `json:"dashed,omitempty"`
	Points []Point `json:"points"`
}

// Marker is a labelled point.
type Marker struct {
	Label string  `json:"label,omitempty"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type ViewBox struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

type Chart struct {
	ViewBox ViewBox  `json:"viewBox"`
	Series  []Series `json:"series,omitempty"`
	Markers []Marker `json:"markers,omitempty"`
}

// Result is what a visualization renders: the evaluated values and the chart.
type Result struct {
	Type        string      `json:"type"`
	Placeholder bool        `json:"placeholder,omitempty"`
	Values      interface{} `json:"values"`
	Chart       *Chart      `json:"chart,omitempty"`
}

// Evaluator computes a Result from merged parameters.
type Evaluator interface {
	Evaluate(p Params) (*Result, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(p Params) (*Result, error)

func (f EvaluatorFunc) Evaluate(p Params) (*Result, error) {
	return f(p)
}

// Registry maps animation types to evaluators.
type Registry struct {
	evaluators map[string]Evaluator
}

func NewRegistry() *Registry {
	r := &Registry{evaluators: make(map[string]Evaluator)}
	r.Register(TypeQuadratic, EvaluatorFunc(EvaluateQuadratic))
	r.Register(TypeLinearSystem, EvaluatorFunc(EvaluateLinearSystem))
	r.Register(TypeCircle, EvaluatorFunc(EvaluateCircle))
	r.Register(TypeTrigonometry, EvaluatorFunc(EvaluateTrigonometry))
	r.Register(TypeSequences, EvaluatorFunc(EvaluateSequence))
	// rational equations reuse the sequence visualization
	r.Register(TypeRational, EvaluatorFunc(EvaluateSequence))
	r.Register(TypePolynomial, EvaluatorFunc(EvaluatePolynomial))
	r.Register(TypeDerivative, EvaluatorFunc(EvaluateDerivative))
	r.Register(TypeProbability, EvaluatorFunc(EvaluateProbability))
	r.Register(TypeInequality, EvaluatorFunc(EvaluateInequality))
	return r
}

func (r *Registry) Register(animationType string, e Evaluator) {
	r.evaluators[animationType] = e
}

// Has reports whether a real evaluator (not the placeholder) exists.
func (r *Registry) Has(animationType string) bool {
	_, ok := r.evaluators[animationType]
	return ok
}

// Types returns the registered types in lexical order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.evaluators))
	for t := range r.evaluators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Evaluate merges the lesson config with caller overrides and runs the
// evaluator for animationType. Unknown types yield a placeholder.
func (r *Registry) Evaluate(animationType string, config, overrides map[string]interface{}) (*Result, error) {
	e, ok := r.evaluators[animationType]
	if !ok {
		return Placeholder(animationType), nil
	}
	res, err := e.Evaluate(Merge(config, overrides))
	if err != nil {
		return nil, err
	}
	res.Type = animationType
	return res, nil
}

// Placeholder is shown for animation types without a visualization yet.
func Placeholder(title string) *Result {
	return &Result{
		Type:        title,
		Placeholder: true,
		Values:      map[string]string{"title": title},
	}
}

// IsKnownType reports whether t is one of KnownTypes.
func IsKnownType(t string) bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}
