// Package history synthesizes decorative price paths for charting. The
// output is anchored at the current quote and clamped into a band around it;
// it is not a price model.
package history

import (
	"iter"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/models"
)

// Timeframe selects the length and granularity of a synthetic series.
type Timeframe string

const (
	Timeframe5m Timeframe = "5m"
	Timeframe1w Timeframe = "1w"
	Timeframe1m Timeframe = "1m"
)

// DefaultTimeframe is used for empty or unrecognized input.
const DefaultTimeframe = Timeframe1m

type shape struct {
	points     int
	step       time.Duration
	volatility float64 // max per-step move, in percent
	low, high  float64 // clamp band as multiples of the anchor
	layout     string
}

var shapes = map[Timeframe]shape{
	Timeframe5m: {points: 12, step: 5 * time.Minute, volatility: 0.5, low: 0.995, high: 1.005, layout: "15:04"},
	Timeframe1w: {points: 7, step: 24 * time.Hour, volatility: 1.0, low: 0.93, high: 1.07, layout: "Mon 01/02"},
	Timeframe1m: {points: 30, step: 24 * time.Hour, volatility: 1.5, low: 0.85, high: 1.15, layout: "01/02"},
}

// ParseTimeframe maps user input to a Timeframe, falling back to 1m.
func ParseTimeframe(s string) Timeframe {
	tf := Timeframe(s)
	if _, ok := shapes[tf]; ok {
		return tf
	}
	return DefaultTimeframe
}

// Len is the number of points a series of this timeframe contains.
func (tf Timeframe) Len() int {
	return shapes[ParseTimeframe(string(tf))].points
}

// Band returns the clamp band as multiples of the anchor price.
func (tf Timeframe) Band() (low, high float64) {
	s := shapes[ParseTimeframe(string(tf))]
	return s.low, s.high
}

// Series is a synthesized path ready for JSON or chart rendering.
// Labels and Prices always have the same length.
type Series struct {
	Symbol       string          `json:"symbol"`
	Timeframe    Timeframe       `json:"timeframe"`
	Labels       []string        `json:"labels"`
	Prices       []float64       `json:"prices"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Change       decimal.Decimal `json:"change"`
}

// Synthesizer produces random walks from a fresh source on every iteration.
type Synthesizer struct {
	now     func() time.Time
	newRand func() *rand.Rand
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// WithClock sets the reference time labels count back from.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithSource sets the factory for per-iteration random sources.
func WithSource(newRand func() *rand.Rand) Option {
	return func(s *Synthesizer) { s.newRand = newRand }
}

// NewSynthesizer returns a Synthesizer seeded from the runtime's random source.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		now: time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Points walks from the oldest point to the newest. Each step applies a
// uniform move of up to the timeframe's volatility to the running price and
// clamps it into the band around anchor. Prices are rounded to cents.
func (s *Synthesizer) Points(anchor float64, tf Timeframe) iter.Seq2[string, float64] {
	sh := shapes[ParseTimeframe(string(tf))]
	return func(yield func(string, float64) bool) {
		rng := s.newRand()
		now := s.now()
		lo, hi := centBand(anchor*sh.low, anchor*sh.high)
		price := anchor

		for i := sh.points; i >= 1; i-- {
			move := (rng.Float64()*2 - 1) * sh.volatility
			price *= 1 + move/100
			price = min(max(price, anchor*sh.low), anchor*sh.high)

			label := now.Add(-time.Duration(i) * sh.step).Format(sh.layout)
			if !yield(label, min(max(roundCents(price), lo), hi)) {
				return
			}
		}
	}
}

// centBand narrows [lo, hi] to the cent values inside it so rounded prices
// never leave the band. A band too narrow to hold a whole cent is kept as is.
func centBand(lo, hi float64) (float64, float64) {
	clo, chi := math.Ceil(lo*100)/100, math.Floor(hi*100)/100
	if clo > chi {
		return lo, hi
	}
	return clo, chi
}

// Series collects a full path for stock.
func (s *Synthesizer) Series(stock models.Stock, tf Timeframe) Series {
	tf = ParseTimeframe(string(tf))
	out := Series{
		Symbol:       stock.Symbol,
		Timeframe:    tf,
		Labels:       make([]string, 0, tf.Len()),
		Prices:       make([]float64, 0, tf.Len()),
		CurrentPrice: stock.Price,
		Change:       stock.Change,
	}
	for label, price := range s.Points(stock.Price.InexactFloat64(), tf) {
		out.Labels = append(out.Labels, label)
		out.Prices = append(out.Prices, price)
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
