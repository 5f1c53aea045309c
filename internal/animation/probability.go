package animation

import (
	"math/rand"
	"time"
)

const (
	ModeDice = "dice"
	ModeCoin = "coin"
	ModeBoth = "both"

	maxTrials = 1000
)

type ProbabilityValues struct {
	Mode   string `json:"mode"`
	Trials int    `json:"trials"`
	Seed   int64  `json:"seed"`

	DiceRolls       []int      `json:"diceRolls,omitempty"`
	DiceFrequency   [6]int     `json:"diceFrequency"`
	DicePercentages [6]float64 `json:"dicePercentages"`
	DiceTheoretical float64    `json:"diceTheoretical"`

	CoinFlips       []string `json:"coinFlips,omitempty"`
	Heads           int      `json:"heads"`
	Tails           int      `json:"tails"`
	HeadsPercentage float64  `json:"headsPercentage"`
	TailsPercentage float64  `json:"tailsPercentage"`
	CoinTheoretical float64  `json:"coinTheoretical"`
}

// Simulate rolls a die and/or flips a coin trials times using rng.
func Simulate(rng *rand.Rand, mode string, trials int) ProbabilityValues {
	v := ProbabilityValues{
		Mode:            mode,
		Trials:          trials,
		DiceTheoretical: round(100.0/6, 2),
		CoinTheoretical: 50,
	}
	dice := mode == ModeDice || mode == ModeBoth
	coin := mode == ModeCoin || mode == ModeBoth
	for i := 0; i < trials; i++ {
		if dice {
			roll := rng.Intn(6) + 1
			v.DiceRolls = append(v.DiceRolls, roll)
			v.DiceFrequency[roll-1]++
		}
		if coin {
			if rng.Float64() > 0.5 {
				v.CoinFlips = append(v.CoinFlips, "heads")
				v.Heads++
			} else {
				v.CoinFlips = append(v.CoinFlips, "tails")
				v.Tails++
			}
		}
	}
	if n := len(v.DiceRolls); n > 0 {
		for i, f := range v.DiceFrequency {
			v.DicePercentages[i] = round(float64(f)/float64(n)*100, 1)
		}
	}
	if n := len(v.CoinFlips); n > 0 {
		v.HeadsPercentage = round(float64(v.Heads)/float64(n)*100, 1)
		v.TailsPercentage = round(float64(v.Tails)/float64(n)*100, 1)
	}
	return v
}

func EvaluateProbability(p Params) (*Result, error) {
	r := newReader(p)
	mode := r.str("mode", ModeDice)
	r.oneOf("mode", mode, ModeDice, ModeCoin, ModeBoth)
	trials := r.int("trials", 1)
	r.within("trials", float64(trials), 1, maxTrials)
	seed := int64(r.float("seed", float64(time.Now().UnixNano()%1e9)))
	if r.err != nil {
		return nil, r.err
	}

	v := Simulate(rand.New(rand.NewSource(seed)), mode, trials)
	v.Seed = seed

	chart := &Chart{ViewBox: ViewBox{XMin: 0, XMax: 7, YMin: 0, YMax: 100}}
	if mode != ModeCoin {
		hist := Series{Name: "dice frequency", Color: "#3b82f6"}
		for i, pct := range v.DicePercentages {
			hist.Points = append(hist.Points, Point{X: float64(i + 1), Y: pct})
		}
		chart.Series = append(chart.Series, hist)
	}
	if mode != ModeDice {
		chart.Series = append(chart.Series, Series{
			Name:   "coin",
			Color:  "#f59e0b",
			Points: []Point{{X: 1, Y: v.HeadsPercentage}, {X: 2, Y: v.TailsPercentage}},
		})
	}

	return &Result{Values: v, Chart: chart}, nil
}
