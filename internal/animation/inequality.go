package animation

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
)

// Interval is a solution interval; infinite ends use ±Inf and are always open.
type Interval struct {
	From       float64
	To         float64
	FromClosed bool
	ToClosed   bool
}

// Bounds formats both ends; JSON has no infinity so intervals travel as text.
func (i Interval) Bounds() (from, to string) {
	return boundString(i.From), boundString(i.To)
}

func (i Interval) MarshalJSON() ([]byte, error) {
	from, to := i.Bounds()
	return json.Marshal(struct {
		From       string `json:"from"`
		To         string `json:"to"`
		FromClosed bool   `json:"fromClosed"`
		ToClosed   bool   `json:"toClosed"`
		Notation   string `json:"notation"`
	}{from, to, i.FromClosed, i.ToClosed, i.String()})
}

func boundString(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsInf(v, 1):
		return "+∞"
	}
	return fmt.Sprintf("%.2f", v)
}

func (i Interval) String() string {
	lb, rb := "(", ")"
	if i.FromClosed {
		lb = "["
	}
	if i.ToClosed {
		rb = "]"
	}
	from, to := i.Bounds()
	return fmt.Sprintf("%s%s, %s%s", lb, from, to, rb)
}

// Contains reports whether x satisfies the interval.
func (i Interval) Contains(x float64) bool {
	lo := x > i.From || (i.FromClosed && x == i.From)
	hi := x < i.To || (i.ToClosed && x == i.To)
	return lo && hi
}

type InequalityValues struct {
	A            float64    `json:"a"`
	B            float64    `json:"b"`
	C            float64    `json:"c"`
	Operator     string     `json:"operator"`
	Expression   string     `json:"expression"`
	Discriminant float64    `json:"discriminant"`
	Roots        []float64  `json:"roots"`
	Intervals    []Interval `json:"intervals"`
	// Points holds isolated solution points (x = x0 cases).
	Points   []float64 `json:"points,omitempty"`
	Notation string    `json:"notation"`
}

// SolveQuadraticInequality solves ax² + bx + c (op) 0 for a ≠ 0. The result
// is a union of intervals plus isolated points.
func SolveQuadraticInequality(a, b, c float64, op string) ([]Interval, []float64) {
	positive := op == OpGreater || op == OpGreaterEqual
	inclusive := op == OpGreaterEqual || op == OpLessEqual
	// true when the wanted sign matches the sign of the parabola's arms
	outside := (a > 0) == positive
	all := []Interval{{From: math.Inf(-1), To: math.Inf(1)}}

	d := Discriminant(a, b, c)
	roots := QuadraticRoots(a, b, c)
	switch {
	case d < 0:
		if outside {
			return all, nil
		}
		return nil, nil
	case d == 0:
		x0 := roots[0]
		switch {
		case outside && inclusive:
			return all, nil
		case outside:
			return []Interval{
				{From: math.Inf(-1), To: x0},
				{From: x0, To: math.Inf(1)},
			}, nil
		case inclusive:
			return nil, []float64{x0}
		}
		return nil, nil
	}

	x1, x2 := roots[0], roots[1]
	if outside {
		return []Interval{
			{From: math.Inf(-1), To: x1, ToClosed: inclusive},
			{From: x2, To: math.Inf(1), FromClosed: inclusive},
		}, nil
	}
	return []Interval{{From: x1, To: x2, FromClosed: inclusive, ToClosed: inclusive}}, nil
}

func inequalityNotation(intervals []Interval, points []float64) string {
	if len(points) > 0 {
		return fmt.Sprintf("x = %.2f", points[0])
	}
	switch len(intervals) {
	case 0:
		return "no solution (∅)"
	case 1:
		if math.IsInf(intervals[0].From, -1) && math.IsInf(intervals[0].To, 1) {
			return "x ∈ ℝ"
		}
		return "x ∈ " + intervals[0].String()
	}
	if intervals[0].To == intervals[1].From && !intervals[0].ToClosed && !intervals[1].FromClosed &&
		math.IsInf(intervals[0].From, -1) && math.IsInf(intervals[1].To, 1) {
		return fmt.Sprintf("x ∈ ℝ \\ {%.2f}", intervals[0].To)
	}
	return fmt.Sprintf("x ∈ %s ∪ %s", intervals[0], intervals[1])
}

func operatorSymbol(op string) string {
	switch op {
	case OpGreaterEqual:
		return "≥"
	case OpLessEqual:
		return "≤"
	}
	return op
}

func EvaluateInequality(p Params) (*Result, error) {
	r := newReader(p)
	a := r.float("a", 1)
	b := r.float("b", -5)
	c := r.float("c", 6)
	op := r.str("operator", OpGreater)
	r.within("a", a, -5, 5)
	r.within("b", b, -10, 10)
	r.within("c", c, -10, 10)
	r.oneOf("operator", op, OpGreater, OpGreaterEqual, OpLess, OpLessEqual)
	if a == 0 {
		r.fail("a", "must be non-zero")
	}
	if r.err != nil {
		return nil, r.err
	}

	intervals, points := SolveQuadraticInequality(a, b, c, op)
	v := InequalityValues{
		A:            a,
		B:            b,
		C:            c,
		Operator:     op,
		Expression:   fmt.Sprintf("%sx²%sx%s %s 0", trimFloat(a), formatSigned(b), formatSigned(c), operatorSymbol(op)),
		Discriminant: Discriminant(a, b, c),
		Roots:        QuadraticRoots(a, b, c),
		Intervals:    intervals,
		Points:       points,
		Notation:     inequalityNotation(intervals, points),
	}

	const span = 8.0
	chart := &Chart{
		ViewBox: ViewBox{XMin: -span, XMax: span, YMin: -span, YMax: span},
		Series: []Series{
			{Name: "parabola", Color: "#3b82f6", Points: sample(func(x float64) float64 { return a*x*x + b*x + c }, -span, span, samplesPerSeries)},
		},
	}
	for _, in := range intervals {
		from := math.Max(in.From, -span)
		to := math.Min(in.To, span)
		if from < to {
			chart.Series = append(chart.Series, Series{
				Name:   "solution",
				Color:  "#22c55e",
				Points: []Point{{X: from}, {X: to}},
			})
		}
	}
	for _, x := range v.Roots {
		chart.Markers = append(chart.Markers, Marker{Color: "#ef4444", X: x})
	}

	return &Result{Values: v, Chart: chart}, nil
}
