package animation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ErrInvalidParam is wrapped by every parameter validation failure.
var ErrInvalidParam = errors.New("invalid visualization parameter")

// ParamError names the offending parameter.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}

// Params is a merged, loosely typed parameter set. Values usually come from
// JSON so numbers arrive as float64, but strings and ints are accepted too.
type Params map[string]interface{}

// Merge layers overrides on top of defaults without mutating either. Range
// bounds (minA, maxC, ...) are lesson settings and are only taken from
// defaults.
func Merge(defaults, overrides map[string]interface{}) Params {
	p := make(Params, len(defaults)+len(overrides))
	for k, v := range defaults {
		p[k] = v
	}
	for k, v := range overrides {
		if isBoundKey(k) {
			continue
		}
		p[k] = v
	}
	return p
}

// isBoundKey matches min/max followed by an upper-case parameter name.
func isBoundKey(k string) bool {
	for _, prefix := range []string{"min", "max"} {
		if len(k) > len(prefix) && strings.HasPrefix(k, prefix) {
			c := k[len(prefix)]
			return c >= 'A' && c <= 'Z'
		}
	}
	return false
}

// reader pulls typed values out of Params and keeps the first error, so
// evaluators can read all inputs and check once.
type reader struct {
	p   Params
	err error
}

func newReader(p Params) *reader {
	return &reader{p: p}
}

func (r *reader) fail(param, reason string) {
	if r.err == nil {
		r.err = &ParamError{Param: param, Reason: reason}
	}
}

func (r *reader) float(key string, def float64) float64 {
	v, ok := r.p[key]
	if !ok || v == nil {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		r.fail(key, "must be a number")
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(key, "must be finite")
		return def
	}
	return f
}

// floatOr reads key, falling back to fallbackKey, then def. Lesson configs
// name starting values "initialX" while callers send plain "x".
func (r *reader) floatOr(key, fallbackKey string, def float64) float64 {
	if _, ok := r.p[key]; ok {
		return r.float(key, def)
	}
	return r.float(fallbackKey, def)
}

func (r *reader) int(key string, def int) int {
	f := r.float(key, float64(def))
	if f != math.Trunc(f) {
		r.fail(key, "must be an integer")
		return def
	}
	return int(f)
}

func (r *reader) str(key, def string) string {
	v, ok := r.p[key]
	if !ok || v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		r.fail(key, "must be a string")
		return def
	}
	return strings.TrimSpace(s)
}

func (r *reader) boolean(key string, def bool) bool {
	v, ok := r.p[key]
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		r.fail(key, "must be a boolean")
		return def
	}
	return b
}

func (r *reader) within(key string, v, lo, hi float64) {
	if v < lo || v > hi {
		r.fail(key, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
}

func (r *reader) oneOf(key, v string, allowed ...string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	r.fail(key, "must be one of "+strings.Join(allowed, ", "))
}

// sample evaluates f at n evenly spaced points over [xMin, xMax], dropping
// non-finite values.
func sample(f func(float64) float64, xMin, xMax float64, n int) []Point {
	if n < 2 {
		n = 2
	}
	step := (xMax - xMin) / float64(n-1)
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := xMin + float64(i)*step
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

const samplesPerSeries = 201

// round rounds to the given number of decimals, matching how values are shown.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// formatSigned renders " + 3" / " - 3" for building equation strings.
func formatSigned(v float64) string {
	if v < 0 {
		return fmt.Sprintf(" - %s", trimFloat(-v))
	}
	return fmt.Sprintf(" + %s", trimFloat(v))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
