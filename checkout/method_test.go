package checkout

import "testing"

func TestParseMethod(t *testing.T) {
	if m, ok := ParseMethod("btc"); !ok || m != BTC {
		t.Error("expected BTC, got", m, ok)
	}
	if _, ok := ParseMethod("DOGE"); ok {
		t.Error("DOGE is not a supported method")
	}
}

func TestParseChain(t *testing.T) {
	if c, ok := ParseChain("base"); !ok || c != ChainBase {
		t.Error("expected BASE, got", c, ok)
	}
	if _, ok := ParseChain("TRON"); ok {
		t.Error("TRON is not a supported chain")
	}
}

func TestChainRequirements(t *testing.T) {
	for _, m := range []Method{ETH, USDT, USDC} {
		if !m.RequiresChain() {
			t.Errorf("%s must require a chain", m)
		}
	}
	for _, m := range []Method{BTC, SOL, BNB, LTC} {
		if m.RequiresChain() {
			t.Errorf("%s must not require a chain", m)
		}
		if len(m.Chains()) != 0 {
			t.Errorf("%s must not list chains", m)
		}
	}
}

func TestStableFlags(t *testing.T) {
	for _, m := range Methods {
		want := m == USDT || m == USDC
		if m.Stable() != want {
			t.Errorf("%s: Stable() = %v", m, m.Stable())
		}
	}
}

func TestStablecoinChains(t *testing.T) {
	for _, m := range []Method{USDT, USDC} {
		chains := m.Chains()
		if len(chains) != 3 {
			t.Errorf("%s should offer 3 chains, got %v", m, chains)
		}
		for _, c := range []Chain{ChainETH, ChainSOL, ChainBNB} {
			if !m.AllowsChain(c) {
				t.Errorf("%s should allow %s", m, c)
			}
		}
		if m.AllowsChain(ChainBase) {
			t.Errorf("%s must not allow BASE", m)
		}
	}
}

func TestGeckoIDs(t *testing.T) {
	for _, m := range Methods {
		if m.GeckoID() == "" {
			t.Errorf("%s is missing a price feed id", m)
		}
	}
}
