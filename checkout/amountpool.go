package checkout

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// AmountPool disambiguates sessions that pay to a shared address (the demo
// fallback addresses are shared per asset): each active pay session is handed
// the smallest unused amount >= the computed one, in 1e-8 steps, so an
// incoming transfer can be matched back to exactly one session. Issuer-supplied
// addresses are unique and never go through the pool.
type AmountPool struct {
	mu    sync.Mutex
	spans map[Method]*SpanSet
}

func NewAmountPool() *AmountPool {
	return &AmountPool{spans: make(map[Method]*SpanSet)}
}

func (p *AmountPool) set(m Method) *SpanSet {
	s, ok := p.spans[m]
	if !ok {
		s = NewSpanSet()
		p.spans[m] = s
	}
	return s
}

// Acquire reserves and returns the smallest unused amount >= amount.
func (p *AmountPool) Acquire(m Method, amount string) (string, error) {
	units, err := toBaseUnits(amount)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.set(m)
	free := s.NextFree(units)
	s.Add(free)
	return fromBaseUnits(free), nil
}

// Release frees a previously acquired amount.
func (p *AmountPool) Release(m Method, amount string) {
	units, err := toBaseUnits(amount)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(m).Remove(units)
}

func toBaseUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", amount, err)
	}
	return d.Shift(8).IntPart(), nil
}

func fromBaseUnits(units int64) string {
	return decimal.NewFromInt(units).Shift(-8).StringFixed(8)
}
