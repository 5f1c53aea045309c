package animation

import (
	"fmt"
	"math"
)

const (
	SequenceArithmetic = "arithmetic"
	SequenceGeometric  = "geometric"
)

type SequenceTerm struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
	// Height is |value| relative to the largest |value|, in percent.
	Height float64 `json:"height"`
}

type SequenceValues struct {
	Mode        string         `json:"mode"`
	Formula     string         `json:"formula"`
	N           int            `json:"n"`
	Terms       []SequenceTerm `json:"terms"`
	NthTerm     float64        `json:"nthTerm"`
	PartialSum  float64        `json:"partialSum"`
	InfiniteSum *float64       `json:"infiniteSum,omitempty"`
}

func ArithmeticTerm(a1, d float64, i int) float64 {
	return a1 + float64(i-1)*d
}

func ArithmeticSum(a1, d float64, n int) float64 {
	return float64(n) * (2*a1 + float64(n-1)*d) / 2
}

func GeometricTerm(b1, q float64, i int) float64 {
	return b1 * math.Pow(q, float64(i-1))
}

func GeometricSum(b1, q float64, n int) float64 {
	if q == 1 {
		return b1 * float64(n)
	}
	return b1 * (math.Pow(q, float64(n)) - 1) / (q - 1)
}

// GeometricInfiniteSum is b1 / (1 − q); ok is false unless |q| < 1.
func GeometricInfiniteSum(b1, q float64) (float64, bool) {
	if math.Abs(q) >= 1 {
		return 0, false
	}
	return b1 / (1 - q), true
}

func EvaluateSequence(p Params) (*Result, error) {
	r := newReader(p)
	mode := r.str("mode", SequenceArithmetic)
	r.oneOf("mode", mode, SequenceArithmetic, SequenceGeometric)
	n := r.int("n", 10)
	r.within("n", float64(n), 3, 15)

	var term func(i int) float64
	v := SequenceValues{Mode: mode, N: n}
	if mode == SequenceGeometric {
		b1 := r.float("b1", 2)
		q := r.float("q", 1.5)
		r.within("b1", b1, 1, 10)
		r.within("q", q, 0.5, 3)
		if r.err != nil {
			return nil, r.err
		}
		term = func(i int) float64 { return GeometricTerm(b1, q, i) }
		v.Formula = fmt.Sprintf("bₙ = %s × %.1f^(n-1)", trimFloat(b1), q)
		v.PartialSum = GeometricSum(b1, q, n)
		if s, ok := GeometricInfiniteSum(b1, q); ok {
			v.InfiniteSum = &s
		}
	} else {
		a1 := r.float("a1", 2)
		d := r.float("d", 3)
		r.within("a1", a1, -10, 10)
		r.within("d", d, -5, 10)
		if r.err != nil {
			return nil, r.err
		}
		term = func(i int) float64 { return ArithmeticTerm(a1, d, i) }
		v.Formula = fmt.Sprintf("aₙ = %s + (n-1)×%s", trimFloat(a1), trimFloat(d))
		v.PartialSum = ArithmeticSum(a1, d, n)
	}

	maxAbs := 0.0
	v.Terms = make([]SequenceTerm, n)
	for i := 1; i <= n; i++ {
		t := term(i)
		v.Terms[i-1] = SequenceTerm{Index: i, Value: t}
		maxAbs = math.Max(maxAbs, math.Abs(t))
	}
	for i := range v.Terms {
		if maxAbs > 0 {
			v.Terms[i].Height = math.Min(math.Abs(v.Terms[i].Value)/maxAbs*100, 100)
		}
	}
	v.NthTerm = v.Terms[n-1].Value

	chart := &Chart{ViewBox: ViewBox{XMin: 0, XMax: float64(n + 1), YMin: -maxAbs, YMax: maxAbs}}
	bars := Series{Name: "terms", Color: "#3b82f6"}
	for _, t := range v.Terms {
		bars.Points = append(bars.Points, Point{X: float64(t.Index), Y: t.Value})
	}
	chart.Series = append(chart.Series, bars)

	return &Result{Values: v, Chart: chart}, nil
}
