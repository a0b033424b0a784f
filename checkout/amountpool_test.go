package checkout

import "testing"

func TestAmountPoolAcquireRelease(t *testing.T) {
	p := NewAmountPool()

	first, err := p.Acquire(BTC, "0.00049976")
	if err != nil {
		t.Fatal(err)
	}
	if first != "0.00049976" {
		t.Errorf("first acquire should keep the base amount, got %s", first)
	}

	second, _ := p.Acquire(BTC, "0.00049976")
	if second != "0.00049977" {
		t.Errorf("second acquire should nudge by 1e-8, got %s", second)
	}

	p.Release(BTC, first)
	third, _ := p.Acquire(BTC, "0.00049976")
	if third != "0.00049976" {
		t.Errorf("released amount should be handed out again, got %s", third)
	}
}

func TestAmountPoolPerMethod(t *testing.T) {
	p := NewAmountPool()

	p.Acquire(BTC, "0.10000000")
	got, _ := p.Acquire(LTC, "0.10000000")
	if got != "0.10000000" {
		t.Errorf("methods must not share a pool, got %s", got)
	}
}

func TestAmountPoolBadInput(t *testing.T) {
	p := NewAmountPool()
	if _, err := p.Acquire(BTC, "not-a-number"); err == nil {
		t.Error("expected error for malformed amount")
	}
}
