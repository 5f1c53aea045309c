package animation

import (
	"math"
)

type CircleValues struct {
	Radius          float64 `json:"radius"`
	CentralAngle    float64 `json:"centralAngle"`
	InscribedAngle  float64 `json:"inscribedAngle"`
	Circumference   float64 `json:"circumference"`
	Area            float64 `json:"area"`
	ChordLength     float64 `json:"chordLength"`
	DistanceToChord float64 `json:"distanceToChord"`
	ArcLength       float64 `json:"arcLength"`
	A               Point   `json:"a"`
	B               Point   `json:"b"`
	C               Point   `json:"c"`
}

// InscribedAngle is half the central angle subtending the same arc.
func InscribedAngle(centralDeg float64) float64 {
	return centralDeg / 2
}

// ChordLength is the chord cut by a central angle in a circle of radius r.
func ChordLength(r, centralDeg float64) float64 {
	return 2 * r * math.Sin(degToRad(centralDeg)/2)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// EvaluateCircle places A at angle 0 and B at the central angle; C sits on
// the opposite arc so that ∠ACB is the inscribed angle.
func EvaluateCircle(p Params) (*Result, error) {
	rd := newReader(p)
	radius := rd.float("radius", 3)
	central := rd.float("centralAngle", 60)
	showCentral := rd.boolean("showCentralAngle", true)
	showInscribed := rd.boolean("showInscribedAngle", false)
	showTangent := rd.boolean("showTangent", false)
	showChord := rd.boolean("showChord", false)
	rd.within("radius", radius, 1, 4)
	rd.within("centralAngle", central, 10, 180)
	if rd.err != nil {
		return nil, rd.err
	}

	theta := degToRad(central)
	a := Point{X: radius, Y: 0}
	b := Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	cPos := math.Pi + theta/2
	c := Point{X: radius * math.Cos(cPos), Y: radius * math.Sin(cPos)}

	v := CircleValues{
		Radius:          radius,
		CentralAngle:    central,
		InscribedAngle:  InscribedAngle(central),
		Circumference:   2 * math.Pi * radius,
		Area:            math.Pi * radius * radius,
		ChordLength:     math.Hypot(b.X-a.X, b.Y-a.Y),
		DistanceToChord: radius * math.Cos(theta/2),
		ArcLength:       radius * theta,
		A:               a,
		B:               b,
		C:               c,
	}

	chart := &Chart{ViewBox: ViewBox{XMin: -5, XMax: 5, YMin: -5, YMax: 5}}
	circle := make([]Point, 0, samplesPerSeries)
	for i := 0; i < samplesPerSeries; i++ {
		t := 2 * math.Pi * float64(i) / float64(samplesPerSeries-1)
		circle = append(circle, Point{X: radius * math.Cos(t), Y: radius * math.Sin(t)})
	}
	chart.Series = append(chart.Series, Series{Name: "circle", Color: "#3b82f6", Points: circle})
	if showCentral {
		chart.Series = append(chart.Series, Series{Name: "central angle", Color: "#22c55e", Points: []Point{a, {}, b}})
	}
	if showInscribed {
		chart.Series = append(chart.Series, Series{Name: "inscribed angle", Color: "#8b5cf6", Points: []Point{a, c, b}})
		chart.Markers = append(chart.Markers, Marker{Label: "C", Color: "#8b5cf6", X: c.X, Y: c.Y})
	}
	if showChord {
		chart.Series = append(chart.Series, Series{Name: "chord", Color: "#f59e0b", Points: []Point{a, b}})
	}
	if showTangent {
		chart.Series = append(chart.Series, Series{
			Name:   "tangent",
			Color:  "#ec4899",
			Points: []Point{{X: a.X, Y: a.Y - 3}, {X: a.X, Y: a.Y + 3}},
		})
	}
	chart.Markers = append(chart.Markers,
		Marker{Label: "O", Color: "#000000"},
		Marker{Label: "A", Color: "#ef4444", X: a.X, Y: a.Y},
		Marker{Label: "B", Color: "#ef4444", X: b.X, Y: b.Y},
	)

	return &Result{Values: v, Chart: chart}, nil
}
