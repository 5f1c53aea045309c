package animation

import (
	"math"
)

const (
	FunctionQuadratic = "quadratic"
	FunctionCubic     = "cubic"
	FunctionSine      = "sine"

	extremumSlope = 0.1
)

type explorable struct {
	f, fPrime     func(float64) float64
	label, dLabel string
}

var explorables = map[string]explorable{
	FunctionQuadratic: {
		f:      func(x float64) float64 { return x * x },
		fPrime: func(x float64) float64 { return 2 * x },
		label:  "f(x) = x²",
		dLabel: "f'(x) = 2x",
	},
	FunctionCubic: {
		f:      func(x float64) float64 { return x*x*x - 3*x },
		fPrime: func(x float64) float64 { return 3*x*x - 3 },
		label:  "f(x) = x³ - 3x",
		dLabel: "f'(x) = 3x² - 3",
	},
	FunctionSine: {
		f:      func(x float64) float64 { return 2 * math.Sin(x) },
		fPrime: func(x float64) float64 { return 2 * math.Cos(x) },
		label:  "f(x) = 2sin(x)",
		dLabel: "f'(x) = 2cos(x)",
	},
}

type DerivativeValues struct {
	Function         string   `json:"function"`
	Label            string   `json:"label"`
	DerivativeLabel  string   `json:"derivativeLabel"`
	X                float64  `json:"x"`
	Y                float64  `json:"y"`
	Slope            float64  `json:"slope"`
	Status           string   `json:"status"`
	PossibleExtremum bool     `json:"possibleExtremum"`
	Tangent          [2]Point `json:"tangent"`
}

func monotonicity(slope float64) string {
	switch {
	case slope > 0:
		return "increasing"
	case slope < 0:
		return "decreasing"
	}
	return "stationary"
}

func EvaluateDerivative(p Params) (*Result, error) {
	r := newReader(p)
	fn := r.str("function", FunctionQuadratic)
	r.oneOf("function", fn, FunctionQuadratic, FunctionCubic, FunctionSine)
	x := r.float("x", 1)
	r.within("x", x, -5, 5)
	if r.err != nil {
		return nil, r.err
	}

	e := explorables[fn]
	y := e.f(x)
	slope := e.fPrime(x)
	tangent := [2]Point{{X: x - 2, Y: y - 2*slope}, {X: x + 2, Y: y + 2*slope}}

	v := DerivativeValues{
		Function:         fn,
		Label:            e.label,
		DerivativeLabel:  e.dLabel,
		X:                x,
		Y:                y,
		Slope:            slope,
		Status:           monotonicity(slope),
		PossibleExtremum: math.Abs(slope) < extremumSlope,
		Tangent:          tangent,
	}

	chart := &Chart{
		ViewBox: ViewBox{XMin: -6, XMax: 6, YMin: -6, YMax: 6},
		Series: []Series{
			{Name: "f", Color: "#3b82f6", Points: sample(e.f, -6, 6, samplesPerSeries)},
			{Name: "f'", Color: "#ef4444", Points: sample(e.fPrime, -6, 6, samplesPerSeries)},
			{Name: "tangent", Color: "#22c55e", Points: tangent[:]},
		},
		Markers: []Marker{
			{Color: "#8b5cf6", X: x, Y: y},
			{Color: "#ef4444", X: x, Y: slope},
		},
	}

	return &Result{Values: v, Chart: chart}, nil
}
