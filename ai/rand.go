package ai

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/youryharchenko/go-vacuum/planning"
)

// WeightedAction - дія разом з її відносною вагою.
type WeightedAction struct {
	Action planning.Action
	Weight float64
}

// WeightedRandom вибирає дію одним рівномірним числом з [0,1),
// яке порівнюється з накопиченими порогами таблиці.
type WeightedRandom struct {
	rng        *rand.Rand
	choices    []WeightedAction
	thresholds []float64
}

// NewWeightedRandom будує таблицю порогів. Якщо rng == nil, береться генератор,
// засіяний часом.
func NewWeightedRandom(rng *rand.Rand, choices ...WeightedAction) (*WeightedRandom, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrInvalidChoice)
	}

	total := 0.0
	for _, c := range choices {
		if c.Weight <= 0 {
			return nil, fmt.Errorf("%w: weight of %q must be positive", ErrInvalidChoice, c.Action)
		}
		total += c.Weight
	}

	// Пороги рахуємо як sum/total, щоб 1:1:4 давало рівно 1/6 і 1/3
	thresholds := make([]float64, len(choices))
	sum := 0.0
	for i, c := range choices {
		sum += c.Weight
		thresholds[i] = sum / total
	}
	thresholds[len(thresholds)-1] = 1.0

	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	return &WeightedRandom{
		rng:        rng,
		choices:    append([]WeightedAction(nil), choices...),
		thresholds: thresholds,
	}, nil
}

// Choose робить один вибір.
func (p *WeightedRandom) Choose() planning.Action {
	return p.Pick(p.rng.Float64())
}

// Pick повертає дію для вже витягнутого числа r з [0,1).
func (p *WeightedRandom) Pick(r float64) planning.Action {
	for i, t := range p.thresholds {
		if r < t {
			return p.choices[i].Action
		}
	}
	return p.choices[len(p.choices)-1].Action
}

// Thresholds повертає копію накопичених порогів.
func (p *WeightedRandom) Thresholds() []float64 {
	return append([]float64(nil), p.thresholds...)
}
