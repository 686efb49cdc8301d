package engine

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// MaxMove is the largest relative price change a single tick can produce.
var MaxMove = decimal.RequireFromString("0.10")

const pricePlaces = 2

// Sampler yields uniform samples in [0, 1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// NewSampler returns a PCG backed sampler. A zero seed is replaced by the
// current time.
func NewSampler(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Asset is a named instrument with a current price.
type Asset struct {
	name  string
	price decimal.Decimal
}

func NewAsset(name string, price decimal.Decimal) *Asset {
	return &Asset{name: name, price: price}
}

func (a *Asset) Name() string           { return a.name }
func (a *Asset) Price() decimal.Decimal { return a.price }

// Fluctuate moves the price by a uniform random factor in [1-MaxMove, 1+MaxMove]
// and rounds it to cents.
func (a *Asset) Fluctuate(s Sampler) {
	a.price = applyMove(a.price, sampleMove(s))
}

// sampleMove maps a [0, 1) sample onto [-MaxMove, MaxMove).
func sampleMove(s Sampler) decimal.Decimal {
	u := decimal.NewFromFloat(s.Float64())
	return u.Mul(decimal.NewFromInt(2)).Sub(decimal.NewFromInt(1)).Mul(MaxMove)
}

// applyMove returns round(price * (1 + r), 2), kept inside the band
// [price*(1-MaxMove), price*(1+MaxMove)] when rounding would leave it.
func applyMove(price, r decimal.Decimal) decimal.Decimal {
	next := price.Mul(decimal.NewFromInt(1).Add(r)).Round(pricePlaces)

	lo := price.Mul(decimal.NewFromInt(1).Sub(MaxMove)).RoundCeil(pricePlaces)
	hi := price.Mul(decimal.NewFromInt(1).Add(MaxMove)).RoundFloor(pricePlaces)
	if lo.GreaterThan(hi) {
		// no cent inside the band
		return next
	}
	if next.LessThan(lo) {
		return lo
	}
	if next.GreaterThan(hi) {
		return hi
	}
	return next
}
