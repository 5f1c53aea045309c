package animation

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestQuadratic(t *testing.T) {
	tests := []struct {
		name      string
		a, b, c   float64
		wantD     float64
		wantRoots []float64
		wantLabel string
	}{
		{name: "two roots", a: 1, b: -5, c: 6, wantD: 1, wantRoots: []float64{2, 3}, wantLabel: "two roots"},
		{name: "double root", a: 1, b: -4, c: 4, wantD: 0, wantRoots: []float64{2}, wantLabel: "one root (tangent)"},
		{name: "no real roots", a: 1, b: 0, c: 1, wantD: -4, wantRoots: []float64{}, wantLabel: "no real roots"},
		{name: "opens down", a: -1, b: 0, c: 4, wantD: 16, wantRoots: []float64{-2, 2}, wantLabel: "two roots"},
	}
	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reg.Evaluate(TypeQuadratic, nil, map[string]interface{}{"a": tt.a, "b": tt.b, "c": tt.c})
			require.NoError(t, err)
			v := res.Values.(QuadraticValues)
			assert.InDelta(t, tt.wantD, v.Discriminant, eps)
			assert.InDeltaSlice(t, tt.wantRoots, v.Roots, eps)
			assert.Equal(t, len(tt.wantRoots), v.RootCount)
			assert.Equal(t, tt.wantLabel, v.RootsLabel)
			assert.Equal(t, TypeQuadratic, res.Type)
		})
	}
}

func TestQuadraticVertexAndShape(t *testing.T) {
	res, err := EvaluateQuadratic(Params{"a": 1, "b": -5, "c": 6})
	require.NoError(t, err)
	v := res.Values.(QuadraticValues)
	assert.InDelta(t, 2.5, v.Vertex.X, eps)
	assert.InDelta(t, -0.25, v.Vertex.Y, eps)
	assert.Equal(t, "up", v.Opens)
	assert.Equal(t, "minimum", v.ExtremumKind)
	assert.Equal(t, Point{X: 0, Y: 6}, v.YIntercept)
	assert.Equal(t, "y = 1x² - 5x + 6", v.Equation)
}

func TestQuadraticDegenerate(t *testing.T) {
	res, err := EvaluateQuadratic(Params{"a": 0, "b": 2, "c": -4})
	require.NoError(t, err)
	v := res.Values.(QuadraticValues)
	assert.True(t, v.Degenerate)
	assert.Equal(t, Point{X: 0, Y: -4}, v.Vertex)
	assert.InDeltaSlice(t, []float64{2}, v.Roots, eps)
	assert.Equal(t, 1, v.RootCount)
	assert.Equal(t, "one root (linear)", v.RootsLabel)
	assert.Empty(t, res.Chart.Series)

	for _, tt := range []struct {
		c    float64
		want string
	}{
		{c: 3, want: "no solution"},
		{c: 0, want: "infinitely many solutions"},
	} {
		res, err = EvaluateQuadratic(Params{"a": 0, "b": 0, "c": tt.c})
		require.NoError(t, err)
		v = res.Values.(QuadraticValues)
		assert.Zero(t, v.RootCount)
		assert.Equal(t, tt.want, v.RootsLabel)
	}
}

func TestOverridesCannotWidenBounds(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Evaluate(TypeQuadratic, nil, map[string]interface{}{"a": 1e6, "maxA": 1e9})
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "a", pe.Param)

	// the lesson itself may still narrow or widen them
	res, err := reg.Evaluate(TypeQuadratic, map[string]interface{}{"maxA": 8}, map[string]interface{}{"a": 7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, res.Values.(QuadraticValues).A)

	merged := Merge(map[string]interface{}{"minB": -2}, map[string]interface{}{"minB": -100, "b": 1, "max": 3})
	assert.Equal(t, -2, merged["minB"])
	assert.Equal(t, 3, merged["max"])
}

func TestQuadraticUsesLessonConfig(t *testing.T) {
	cfg := map[string]interface{}{"initialA": 2, "initialB": 0, "initialC": -8, "maxA": 2}
	res, err := NewRegistry().Evaluate(TypeQuadratic, cfg, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2, 2}, res.Values.(QuadraticValues).Roots, eps)

	_, err = NewRegistry().Evaluate(TypeQuadratic, cfg, map[string]interface{}{"a": 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParam))
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "a", pe.Param)
}

func TestLinearSystem(t *testing.T) {
	tests := []struct {
		name     string
		e1, e2   LinearEquation
		wantKind string
		want     *Point
	}{
		{"unique", LinearEquation{2, 1, 5}, LinearEquation{1, -1, 1}, SolutionUnique, &Point{X: 2, Y: 1}},
		{"parallel", LinearEquation{1, 1, 1}, LinearEquation{2, 2, 5}, SolutionNone, nil},
		{"same line", LinearEquation{1, 1, 1}, LinearEquation{2, 2, 2}, SolutionInfinite, nil},
		{"vertical same line", LinearEquation{1, 0, 3}, LinearEquation{2, 0, 6}, SolutionInfinite, nil},
		{"vertical parallel", LinearEquation{1, 0, 3}, LinearEquation{1, 0, 4}, SolutionNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, sol, _ := SolveLinearSystem(tt.e1, tt.e2)
			assert.Equal(t, tt.wantKind, kind)
			if tt.want == nil {
				assert.Nil(t, sol)
				return
			}
			require.NotNil(t, sol)
			assert.InDelta(t, tt.want.X, sol.X, eps)
			assert.InDelta(t, tt.want.Y, sol.Y, eps)
		})
	}
}

func TestLinearSystemDefaults(t *testing.T) {
	res, err := EvaluateLinearSystem(Params{})
	require.NoError(t, err)
	v := res.Values.(LinearSystemValues)
	assert.Equal(t, SolutionUnique, v.SolutionType)
	assert.InDelta(t, -3, v.Determinant, eps)
	require.Len(t, res.Chart.Series, 2)
	require.Len(t, res.Chart.Markers, 1)

	_, err = EvaluateLinearSystem(Params{"a1": 0, "b1": 0})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestCircle(t *testing.T) {
	res, err := EvaluateCircle(Params{"radius": 3, "centralAngle": 60})
	require.NoError(t, err)
	v := res.Values.(CircleValues)
	assert.InDelta(t, 30, v.InscribedAngle, eps)
	assert.InDelta(t, 3, v.ChordLength, 1e-9)
	assert.InDelta(t, 6*math.Pi, v.Circumference, eps)
	assert.InDelta(t, 9*math.Pi, v.Area, eps)
	assert.InDelta(t, 3*math.Cos(math.Pi/6), v.DistanceToChord, eps)
	assert.InDelta(t, math.Pi, v.ArcLength, eps)
	assert.InDelta(t, ChordLength(3, 60), v.ChordLength, eps)

	_, err = EvaluateCircle(Params{"radius": 5})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestTrigonometry(t *testing.T) {
	res, err := EvaluateTrigonometry(Params{"angle": 30})
	require.NoError(t, err)
	v := res.Values.(TrigValues)
	assert.InDelta(t, 0.5, v.Sin, eps)
	assert.InDelta(t, math.Sqrt(3)/2, v.Cos, eps)
	require.NotNil(t, v.Tan)
	assert.InDelta(t, 1/math.Sqrt(3), *v.Tan, eps)
	assert.InDelta(t, 1, v.Identity, eps)

	res, err = EvaluateTrigonometry(Params{"angle": 90})
	require.NoError(t, err)
	assert.Nil(t, res.Values.(TrigValues).Tan)

	_, err = EvaluateTrigonometry(Params{"angle": "steep"})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestHornerAndRationalRoots(t *testing.T) {
	// x³ + 2x² − 5x − 6 = (x + 3)(x + 1)(x − 2)
	coeffs := []int{1, 2, -5, -6}
	assert.Equal(t, []float64{-3, -1, 2}, RationalRoots(coeffs))

	h := NewHornerScheme([]float64{1, 2, -5, -6}, -3)
	assert.Equal(t, []float64{1, -1, -2, 0}, h.Results)
	assert.Equal(t, []float64{1, -1, -2}, h.Quotient)
	assert.Zero(t, h.Remainder)

	assert.Equal(t, []int{1, 2, 3, 6}, Divisors(-6))
	assert.Equal(t, []int{1}, Divisors(0))

	// 2x³ − x² = x²(2x − 1): zero constant term
	assert.Equal(t, []float64{0, 0.5}, RationalRoots([]int{2, -1, 0, 0}))
	// x² + 1 has none
	assert.Empty(t, RationalRoots([]int{0, 1, 0, 1}))
}

func TestPolynomialEvaluator(t *testing.T) {
	res, err := EvaluatePolynomial(Params{})
	require.NoError(t, err)
	v := res.Values.(PolynomialValues)
	assert.Equal(t, []float64{-3, -1, 2}, v.Roots)
	assert.Equal(t, "(x + 3)(x + 1)(x - 2)", v.FactoredForm)
	assert.Equal(t, "P(x) = 1x³ + 2x² - 5x - 6", v.Expression)
	require.NotNil(t, v.Horner)
	assert.Equal(t, -3.0, v.Horner.Root)

	res, err = EvaluatePolynomial(Params{"a": 1, "b": 0, "c": 1, "d": 1})
	require.NoError(t, err)
	assert.Equal(t, "no rational roots", res.Values.(PolynomialValues).FactoredForm)
	assert.Nil(t, res.Values.(PolynomialValues).Horner)

	_, err = EvaluatePolynomial(Params{"a": 1.5})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestPolynomialLeadingZero(t *testing.T) {
	res, err := EvaluatePolynomial(Params{"a": 0, "b": 1, "c": -5, "d": 6})
	require.NoError(t, err)
	v := res.Values.(PolynomialValues)
	assert.Equal(t, []float64{2, 3}, v.Roots)
	assert.Equal(t, "P(x) = 1x² - 5x + 6", v.Expression)
	assert.Equal(t, "(x - 2)(x - 3)", v.FactoredForm)
}

func TestPolynomialFactoredForm(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d int
		want       string
	}{
		{name: "scaled", a: 2, b: 0, c: -2, d: 0, want: "2(x + 1)x(x - 1)"},
		{name: "negative leading", a: -1, b: 0, c: 1, d: 0, want: "-(x + 1)x(x - 1)"},
		{name: "quadratic leftover", a: 1, b: -1, c: 1, d: -1, want: "(x - 1)(1x² + 1)"},
		{name: "repeated root", a: 1, b: -3, c: 3, d: -1, want: "(x - 1)(1x² - 2x + 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EvaluatePolynomial(Params{"a": tt.a, "b": tt.b, "c": tt.c, "d": tt.d})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Values.(PolynomialValues).FactoredForm)
		})
	}
}

func TestSequences(t *testing.T) {
	res, err := EvaluateSequence(Params{})
	require.NoError(t, err)
	v := res.Values.(SequenceValues)
	assert.Equal(t, SequenceArithmetic, v.Mode)
	assert.Len(t, v.Terms, 10)
	assert.InDelta(t, 29, v.NthTerm, eps)
	assert.InDelta(t, 155, v.PartialSum, eps)
	assert.Nil(t, v.InfiniteSum)

	res, err = EvaluateSequence(Params{"mode": "geometric", "b1": 4, "q": 0.5, "n": 3})
	require.NoError(t, err)
	v = res.Values.(SequenceValues)
	assert.InDelta(t, 1, v.NthTerm, eps)
	assert.InDelta(t, 7, v.PartialSum, eps)
	require.NotNil(t, v.InfiniteSum)
	assert.InDelta(t, 8, *v.InfiniteSum, eps)
	assert.InDelta(t, 100, v.Terms[0].Height, eps)

	assert.InDelta(t, 6, GeometricSum(2, 1, 3), eps)

	_, err = EvaluateSequence(Params{"mode": "harmonic"})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestDerivative(t *testing.T) {
	res, err := EvaluateDerivative(Params{"function": "cubic", "x": 1})
	require.NoError(t, err)
	v := res.Values.(DerivativeValues)
	assert.InDelta(t, -2, v.Y, eps)
	assert.InDelta(t, 0, v.Slope, eps)
	assert.Equal(t, "stationary", v.Status)
	assert.True(t, v.PossibleExtremum)

	res, err = EvaluateDerivative(Params{})
	require.NoError(t, err)
	v = res.Values.(DerivativeValues)
	assert.Equal(t, "increasing", v.Status)
	assert.Equal(t, [2]Point{{X: -1, Y: -3}, {X: 3, Y: 5}}, v.Tangent)
}

func TestProbabilityIsReproducibleWithSeed(t *testing.T) {
	p := Params{"mode": ModeBoth, "trials": 1000, "seed": 42}
	first, err := EvaluateProbability(p)
	require.NoError(t, err)
	second, err := EvaluateProbability(p)
	require.NoError(t, err)
	assert.Equal(t, first.Values, second.Values)

	v := first.Values.(ProbabilityValues)
	total := 0
	for _, f := range v.DiceFrequency {
		total += f
	}
	assert.Equal(t, 1000, total)
	assert.Equal(t, 1000, v.Heads+v.Tails)
	assert.InDelta(t, 16.67, v.DiceTheoretical, eps)

	direct := Simulate(rand.New(rand.NewSource(42)), ModeBoth, 1000)
	assert.Equal(t, v.DiceFrequency, direct.DiceFrequency)

	_, err = EvaluateProbability(Params{"trials": 1001})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestInequality(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		op      string
		want    string
		inside  []float64
		outside []float64
	}{
		{"outer open", 1, -5, 6, OpGreater, "x ∈ (-∞, 2.00) ∪ (3.00, +∞)", []float64{0, 4}, []float64{2, 2.5, 3}},
		{"inner closed", 1, -5, 6, OpLessEqual, "x ∈ [2.00, 3.00]", []float64{2, 2.5, 3}, []float64{1, 4}},
		{"downward inner", -1, 0, 4, OpGreater, "x ∈ (-2.00, 2.00)", []float64{0}, []float64{-2, 2}},
		{"no roots all", 1, 0, 1, OpGreater, "x ∈ ℝ", []float64{-100, 0, 100}, nil},
		{"no roots empty", 1, 0, 1, OpLess, "no solution (∅)", nil, []float64{0}},
		{"touching excluded", 1, -4, 4, OpGreater, "x ∈ ℝ \\ {2.00}", []float64{1, 3}, []float64{2}},
		{"touching point", 1, -4, 4, OpLessEqual, "x = 2.00", nil, []float64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EvaluateInequality(Params{"a": tt.a, "b": tt.b, "c": tt.c, "operator": tt.op})
			require.NoError(t, err)
			v := res.Values.(InequalityValues)
			assert.Equal(t, tt.want, v.Notation)
			in := func(x float64) bool {
				for _, p := range v.Points {
					if p == x {
						return true
					}
				}
				for _, iv := range v.Intervals {
					if iv.Contains(x) {
						return true
					}
				}
				return false
			}
			for _, x := range tt.inside {
				assert.True(t, in(x), "expected %v in solution", x)
			}
			for _, x := range tt.outside {
				assert.False(t, in(x), "expected %v outside solution", x)
			}
		})
	}

	_, err := EvaluateInequality(Params{"a": 0})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestIntervalJSON(t *testing.T) {
	data, err := json.Marshal(Interval{From: math.Inf(-1), To: 2, ToClosed: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"-∞","to":"2.00","fromClosed":false,"toClosed":true,"notation":"(-∞, 2.00]"}`, string(data))
}

func TestRegistryPlaceholderAndAliases(t *testing.T) {
	reg := NewRegistry()
	res, err := reg.Evaluate(TypeIntegral, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Placeholder)
	assert.Equal(t, TypeIntegral, res.Type)
	assert.False(t, reg.Has(TypeIntegral))

	res, err = reg.Evaluate(TypeRational, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeRational, res.Type)
	assert.IsType(t, SequenceValues{}, res.Values)

	assert.True(t, IsKnownType(TypeInequality))
	assert.False(t, IsKnownType("fractal-zoom"))
	assert.Contains(t, reg.Types(), TypeQuadratic)
}

func TestMergeDoesNotMutate(t *testing.T) {
	defaults := map[string]interface{}{"a": 1}
	merged := Merge(defaults, map[string]interface{}{"a": 2, "b": 3})
	assert.Equal(t, 1, defaults["a"])
	assert.Equal(t, 2, merged["a"])
	assert.Equal(t, 3, merged["b"])
}
