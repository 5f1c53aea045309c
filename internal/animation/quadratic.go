package animation

import (
	"fmt"
	"math"
	"sort"
)

// QuadraticValues describes y = ax² + bx + c.
type QuadraticValues struct {
	A            float64   `json:"a"`
	B            float64   `json:"b"`
	C            float64   `json:"c"`
	Equation     string    `json:"equation"`
	Vertex       Point     `json:"vertex"`
	Discriminant float64   `json:"discriminant"`
	Roots        []float64 `json:"roots"`
	RootCount    int       `json:"rootCount"`
	RootsLabel   string    `json:"rootsLabel"`
	YIntercept   Point     `json:"yIntercept"`
	Opens        string    `json:"opens"`
	ExtremumKind string    `json:"extremumKind"`
	Degenerate   bool      `json:"degenerate,omitempty"`
}

// Discriminant returns b² − 4ac.
func Discriminant(a, b, c float64) float64 {
	return b*b - 4*a*c
}

// QuadraticRoots returns the real roots of ax² + bx + c in ascending order.
// With a = 0 the equation is linear and has at most one root.
func QuadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return []float64{}
		}
		return []float64{-c / b}
	}
	d := Discriminant(a, b, c)
	switch {
	case d < 0:
		return []float64{}
	case d == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	roots := []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	sort.Float64s(roots)
	return roots
}

// QuadraticVertex returns the turning point; for a = 0 it is (0, c).
func QuadraticVertex(a, b, c float64) Point {
	if a == 0 {
		return Point{X: 0, Y: c}
	}
	x := -b / (2 * a)
	return Point{X: x, Y: a*x*x + b*x + c}
}

func EvaluateQuadratic(p Params) (*Result, error) {
	r := newReader(p)
	a := r.floatOr("a", "initialA", 1)
	b := r.floatOr("b", "initialB", 0)
	c := r.floatOr("c", "initialC", 0)
	r.within("a", a, r.float("minA", -5), r.float("maxA", 5))
	r.within("b", b, r.float("minB", -10), r.float("maxB", 10))
	r.within("c", c, r.float("minC", -10), r.float("maxC", 10))
	if r.err != nil {
		return nil, r.err
	}

	d := Discriminant(a, b, c)
	roots := QuadraticRoots(a, b, c)
	vertex := QuadraticVertex(a, b, c)

	v := QuadraticValues{
		A:            a,
		B:            b,
		C:            c,
		Equation:     fmt.Sprintf("y = %sx²%sx%s", trimFloat(a), formatSigned(b), formatSigned(c)),
		Vertex:       vertex,
		Discriminant: d,
		Roots:        roots,
		RootCount:    len(roots),
		YIntercept:   Point{X: 0, Y: c},
		Degenerate:   a == 0,
	}

	v.RootsLabel = rootsLabel(a, b, c, len(roots))
	switch {
	case a > 0:
		v.Opens, v.ExtremumKind = "up", "minimum"
	case a < 0:
		v.Opens, v.ExtremumKind = "down", "maximum"
	default:
		v.Opens, v.ExtremumKind = "-", "-"
	}

	chart := &Chart{ViewBox: ViewBox{XMin: -10, XMax: 10, YMin: -10, YMax: 10}}
	if a != 0 {
		chart.Series = append(chart.Series, Series{
			Name:   "parabola",
			Color:  "#0ea5e9",
			Points: sample(func(x float64) float64 { return a*x*x + b*x + c }, -10, 10, samplesPerSeries),
		})
	}
	chart.Markers = append(chart.Markers, Marker{
		Label: fmt.Sprintf("vertex (%.2f, %.2f)", vertex.X, vertex.Y),
		Color: "#22c55e",
		X:     vertex.X,
		Y:     vertex.Y,
	})
	for i, x := range roots {
		chart.Markers = append(chart.Markers, Marker{Label: fmt.Sprintf("x%d", i+1), Color: "#ef4444", X: x})
	}
	chart.Markers = append(chart.Markers, Marker{Color: "#8b5cf6", X: 0, Y: c})

	return &Result{Values: v, Chart: chart}, nil
}

// rootsLabel follows the roots actually returned; with a = 0 the equation
// is linear and a = b = 0 is either an identity or has no solution.
func rootsLabel(a, b, c float64, n int) string {
	if a == 0 && b == 0 {
		if c == 0 {
			return "infinitely many solutions"
		}
		return "no solution"
	}
	switch n {
	case 0:
		return "no real roots"
	case 1:
		if a == 0 {
			return "one root (linear)"
		}
		return "one root (tangent)"
	default:
		return "two roots"
	}
}
