package animation

import (
	"math"
)

const (
	SolutionUnique   = "unique"
	SolutionInfinite = "infinite"
	SolutionNone     = "none"

	linearEpsilon = 0.001
)

// LinearEquation is a·x + b·y = c.
type LinearEquation struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// at returns y on the line for a given x; vertical lines have no such y.
func (e LinearEquation) at(x float64) (float64, bool) {
	if e.B == 0 {
		return 0, false
	}
	return (e.C - e.A*x) / e.B, true
}

type LinearSystemValues struct {
	First        LinearEquation `json:"first"`
	Second       LinearEquation `json:"second"`
	Determinant  float64        `json:"determinant"`
	SolutionType string         `json:"solutionType"`
	Solution     *Point         `json:"solution,omitempty"`
}

// SolveLinearSystem solves the 2×2 system with Cramer's rule. A determinant
// within 0.001 of zero is treated as singular, in which case the lines are
// either the same line or parallel.
func SolveLinearSystem(e1, e2 LinearEquation) (string, *Point, float64) {
	det := e1.A*e2.B - e2.A*e1.B
	if math.Abs(det) > linearEpsilon {
		x := (e1.C*e2.B - e2.C*e1.B) / det
		y := (e1.A*e2.C - e2.A*e1.C) / det
		return SolutionUnique, &Point{X: x, Y: y}, det
	}
	// singular: consistent iff the augmented columns are also dependent
	if math.Abs(e1.A*e2.C-e2.A*e1.C) < linearEpsilon && math.Abs(e1.B*e2.C-e2.B*e1.C) < linearEpsilon {
		return SolutionInfinite, nil, det
	}
	return SolutionNone, nil, det
}

func EvaluateLinearSystem(p Params) (*Result, error) {
	r := newReader(p)
	grid := r.float("gridRange", 10)
	e1 := LinearEquation{A: r.float("a1", 2), B: r.float("b1", 1), C: r.float("c1", 5)}
	e2 := LinearEquation{A: r.float("a2", 1), B: r.float("b2", -1), C: r.float("c2", 1)}
	r.within("gridRange", grid, 1, 100)
	if e1.A == 0 && e1.B == 0 {
		r.fail("a1", "a1 and b1 cannot both be zero")
	}
	if e2.A == 0 && e2.B == 0 {
		r.fail("a2", "a2 and b2 cannot both be zero")
	}
	if r.err != nil {
		return nil, r.err
	}

	kind, sol, det := SolveLinearSystem(e1, e2)

	chart := &Chart{ViewBox: ViewBox{XMin: -grid, XMax: grid, YMin: -grid, YMax: grid}}
	for _, line := range []struct {
		eq    LinearEquation
		name  string
		color string
	}{
		{e1, "equation 1", "#3b82f6"},
		{e2, "equation 2", "#ef4444"},
	} {
		if y0, ok := line.eq.at(-grid); ok {
			y1, _ := line.eq.at(grid)
			chart.Series = append(chart.Series, Series{
				Name:   line.name,
				Color:  line.color,
				Points: []Point{{X: -grid, Y: y0}, {X: grid, Y: y1}},
			})
		} else {
			x := line.eq.C / line.eq.A
			chart.Series = append(chart.Series, Series{
				Name:   line.name,
				Color:  line.color,
				Points: []Point{{X: x, Y: -grid}, {X: x, Y: grid}},
			})
		}
	}
	if sol != nil {
		chart.Markers = append(chart.Markers, Marker{Label: "intersection", Color: "#22c55e", X: sol.X, Y: sol.Y})
	}

	return &Result{
		Values: LinearSystemValues{
			First:        e1,
			Second:       e2,
			Determinant:  det,
			SolutionType: kind,
			Solution:     sol,
		},
		Chart: chart,
	}, nil
}
