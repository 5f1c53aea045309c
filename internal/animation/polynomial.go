package animation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	rootTolerance  = 1e-4
	dedupTolerance = 1e-3
)

// HornerScheme is the synthetic-division table for dividing P(x) by (x − Root).
type HornerScheme struct {
	Root         float64   `json:"root"`
	Coefficients []float64 `json:"coefficients"`
	Results      []float64 `json:"results"`
	Quotient     []float64 `json:"quotient"`
	Remainder    float64   `json:"remainder"`
}

type PolynomialValues struct {
	Coefficients []float64     `json:"coefficients"`
	Expression   string        `json:"expression"`
	Candidates   []float64     `json:"candidates"`
	Roots        []float64     `json:"roots"`
	Horner       *HornerScheme `json:"horner,omitempty"`
	FactoredForm string        `json:"factoredForm"`
}

// Horner evaluates the polynomial with coefficients in descending order at x
// and returns every intermediate value; the last one is P(x).
func Horner(coeffs []float64, x float64) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	results := make([]float64, len(coeffs))
	results[0] = coeffs[0]
	for i := 1; i < len(coeffs); i++ {
		results[i] = results[i-1]*x + coeffs[i]
	}
	return results
}

// NewHornerScheme divides the polynomial by (x − root).
func NewHornerScheme(coeffs []float64, root float64) *HornerScheme {
	results := Horner(coeffs, root)
	return &HornerScheme{
		Root:         root,
		Coefficients: coeffs,
		Results:      results,
		Quotient:     results[:len(results)-1],
		Remainder:    results[len(results)-1],
	}
}

// Divisors returns the positive divisors of n in ascending order. n = 0 is
// treated as 1.
func Divisors(n int) []int {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		n = 1
	}
	var ds []int
	for i := 1; i*i <= n; i++ {
		if n%i == 0 {
			ds = append(ds, i)
			if i != n/i {
				ds = append(ds, n/i)
			}
		}
	}
	sort.Ints(ds)
	return ds
}

// RationalRootCandidates lists ±p/q for p dividing the lowest non-zero
// coefficient and q dividing the leading one, ascending and without
// duplicates. A zero constant term adds the candidate 0.
func RationalRootCandidates(coeffs []int) []float64 {
	out := []float64{}
	leading := leadingCoefficient(coeffs)
	if leading == 0 {
		return out
	}
	trailing := 0
	for i := len(coeffs) - 1; i >= 0; i-- {
		if coeffs[i] != 0 {
			trailing = coeffs[i]
			break
		}
	}
	seen := make(map[float64]bool)
	add := func(v float64) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if coeffs[len(coeffs)-1] == 0 {
		add(0)
	}
	for _, p := range Divisors(trailing) {
		for _, q := range Divisors(leading) {
			v := float64(p) / float64(q)
			add(v)
			add(-v)
		}
	}
	sort.Float64s(out)
	return out
}

// RationalRoots confirms each candidate with Horner evaluation and keeps the
// distinct ones in ascending order.
func RationalRoots(coeffs []int) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	fc := make([]float64, len(coeffs))
	for i, c := range coeffs {
		fc[i] = float64(c)
	}
	roots := []float64{}
	for _, cand := range RationalRootCandidates(coeffs) {
		h := Horner(fc, cand)
		if math.Abs(h[len(h)-1]) >= rootTolerance {
			continue
		}
		dup := false
		for _, r := range roots {
			if math.Abs(r-cand) < dedupTolerance {
				dup = true
				break
			}
		}
		if !dup {
			roots = append(roots, cand)
		}
	}
	sort.Float64s(roots)
	return roots
}

// leadingCoefficient is the first non-zero coefficient, or 0 for P ≡ 0.
func leadingCoefficient(coeffs []int) int {
	for _, c := range coeffs {
		if c != 0 {
			return c
		}
	}
	return 0
}

var polynomialPowers = []string{"x³", "x²", "x", ""}

// polynomialExpression renders the cubic from its leading non-zero term, so
// a = 0 shows as a quadratic.
func polynomialExpression(coeffs []int) string {
	powers := polynomialPowers[len(polynomialPowers)-len(coeffs):]
	var sb strings.Builder
	sb.WriteString("P(x) =")
	started := false
	for i, c := range coeffs {
		if !started {
			if c == 0 && i < len(coeffs)-1 {
				continue
			}
			fmt.Fprintf(&sb, " %d%s", c, powers[i])
			started = true
			continue
		}
		fmt.Fprintf(&sb, " %s %d%s", sign(c), absInt(c), powers[i])
	}
	return sb.String()
}

func sign(v int) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// trimLeadingZeros drops zero coefficients ahead of the leading term.
func trimLeadingZeros(coeffs []float64) []float64 {
	for len(coeffs) > 1 && coeffs[0] == 0 {
		coeffs = coeffs[1:]
	}
	return coeffs
}

// factoredForm writes P as k(x − r1)(x − r2)… followed by whatever factor is
// left after dividing out the rational roots.
func factoredForm(coeffs []float64, roots []float64) string {
	if len(roots) == 0 {
		return "no rational roots"
	}
	rest := trimLeadingZeros(coeffs)
	for _, r := range roots {
		rest = NewHornerScheme(rest, r).Quotient
	}

	var sb strings.Builder
	if len(rest) == 1 {
		switch k := rest[0]; k {
		case 1:
		case -1:
			sb.WriteString("-")
		default:
			sb.WriteString(trimFloat(k))
		}
	}
	for _, r := range roots {
		switch {
		case r == 0:
			sb.WriteString("x")
		case r > 0:
			sb.WriteString(fmt.Sprintf("(x - %s)", trimFloat(r)))
		default:
			sb.WriteString(fmt.Sprintf("(x + %s)", trimFloat(-r)))
		}
	}
	if len(rest) > 1 {
		sb.WriteString("(" + residualExpression(rest) + ")")
	}
	return sb.String()
}

// residualExpression renders a linear or quadratic leftover factor.
func residualExpression(coeffs []float64) string {
	powers := polynomialPowers[len(polynomialPowers)-len(coeffs):]
	var sb strings.Builder
	for i, c := range coeffs {
		if i == 0 {
			sb.WriteString(trimFloat(c) + powers[i])
			continue
		}
		if c == 0 {
			continue
		}
		sb.WriteString(formatSigned(c) + powers[i])
	}
	return sb.String()
}

func EvaluatePolynomial(p Params) (*Result, error) {
	r := newReader(p)
	a := r.int("a", 1)
	b := r.int("b", 2)
	c := r.int("c", -5)
	d := r.int("d", -6)
	r.within("a", float64(a), -3, 3)
	r.within("b", float64(b), -10, 10)
	r.within("c", float64(c), -10, 10)
	r.within("d", float64(d), -10, 10)
	if r.err != nil {
		return nil, r.err
	}

	coeffs := []int{a, b, c, d}
	fc := []float64{float64(a), float64(b), float64(c), float64(d)}
	roots := RationalRoots(coeffs)

	v := PolynomialValues{
		Coefficients: fc,
		Expression:   polynomialExpression(coeffs),
		Candidates:   RationalRootCandidates(coeffs),
		Roots:        roots,
		FactoredForm: factoredForm(fc, roots),
	}
	if len(roots) > 0 {
		v.Horner = NewHornerScheme(fc, roots[0])
	}

	f := func(x float64) float64 {
		h := Horner(fc, x)
		return h[len(h)-1]
	}
	chart := &Chart{
		ViewBox: ViewBox{XMin: -6, XMax: 6, YMin: -15, YMax: 15},
		Series: []Series{
			{Name: "P(x)", Color: "#3b82f6", Points: sample(f, -6, 6, samplesPerSeries)},
		},
	}
	for _, x := range roots {
		chart.Markers = append(chart.Markers, Marker{Color: "#ef4444", X: x})
	}

	return &Result{Values: v, Chart: chart}, nil
}
