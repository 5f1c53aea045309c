package animation

import (
	"math"
)

// SpecialAngles are the quick-select angles offered next to the slider.
var SpecialAngles = []float64{0, 30, 45, 60, 90}

type TrigValues struct {
	Angle float64 `json:"angle"`
	Sin   float64 `json:"sin"`
	Cos   float64 `json:"cos"`
	// Tan is nil where the tangent is undefined (90°).
	Tan           *float64  `json:"tan"`
	Identity      float64   `json:"identity"`
	UnitPoint     Point     `json:"unitPoint"`
	Triangle      [3]Point  `json:"triangle"`
	SpecialAngles []float64 `json:"specialAngles"`
}

// TrigRatios returns sin, cos and tan for an angle in degrees. ok is false
// when the tangent is undefined.
func TrigRatios(deg float64) (sin, cos, tan float64, ok bool) {
	rad := degToRad(deg)
	sin, cos = math.Sin(rad), math.Cos(rad)
	if math.Mod(deg-90, 180) == 0 {
		return sin, cos, 0, false
	}
	return sin, cos, math.Tan(rad), true
}

func EvaluateTrigonometry(p Params) (*Result, error) {
	r := newReader(p)
	angle := r.float("angle", 45)
	r.within("angle", angle, 0, 90)
	if r.err != nil {
		return nil, r.err
	}

	sin, cos, tan, ok := TrigRatios(angle)
	v := TrigValues{
		Angle:         angle,
		Sin:           sin,
		Cos:           cos,
		Identity:      sin*sin + cos*cos,
		UnitPoint:     Point{X: cos, Y: sin},
		SpecialAngles: SpecialAngles,
	}
	if ok {
		v.Tan = &tan
	}

	// triangle scaled by 3 so it is readable next to the unit circle
	origin := Point{}
	foot := Point{X: cos * 3}
	apex := Point{X: cos * 3, Y: sin * 3}
	v.Triangle = [3]Point{origin, foot, apex}

	unit := make([]Point, 0, samplesPerSeries)
	for i := 0; i < samplesPerSeries; i++ {
		t := 2 * math.Pi * float64(i) / float64(samplesPerSeries-1)
		unit = append(unit, Point{X: math.Cos(t), Y: math.Sin(t)})
	}

	chart := &Chart{
		ViewBox: ViewBox{XMin: -4, XMax: 4, YMin: -4, YMax: 4},
		Series: []Series{
			{Name: "unit circle", Color: "#94a3b8", Dashed: true, Points: unit},
			{Name: "hypotenuse", Color: "#ef4444", Points: []Point{origin, apex}},
			{Name: "opposite", Color: "#3b82f6", Points: []Point{foot, apex}},
			{Name: "adjacent", Color: "#22c55e", Points: []Point{origin, foot}},
			{Name: "sin", Color: "#ef4444", Dashed: true, Points: []Point{v.UnitPoint, {X: cos}}},
			{Name: "cos", Color: "#22c55e", Dashed: true, Points: []Point{origin, {X: cos}}},
		},
		Markers: []Marker{
			{Color: "#000000"},
			{Color: "#22c55e", X: foot.X},
			{Color: "#3b82f6", X: apex.X, Y: apex.Y},
			{Color: "#8b5cf6", X: cos, Y: sin},
		},
	}

	return &Result{Values: v, Chart: chart}, nil
}
