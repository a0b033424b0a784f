package address

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"onlyexchange/checkout"
)

func TestEndpointPath(t *testing.T) {
	cases := []struct {
		method checkout.Method
		chain  checkout.Chain
		want   string
	}{
		{checkout.BTC, "", "/api/next-btc-address"},
		{checkout.SOL, "", "/api/next-sol-address"},
		{checkout.BNB, "", "/api/next-bnb-address"},
		{checkout.LTC, "", "/api/next-ltc-address"},
		// ETH always hits the mainnet endpoint, whatever chain is shown
		{checkout.ETH, "", "/api/next-eth-address"},
		{checkout.ETH, checkout.ChainBase, "/api/next-eth-address"},
		{checkout.ETH, checkout.ChainArbitrum, "/api/next-eth-address"},
		{checkout.USDT, checkout.ChainETH, "/api/next-usdt-eth-address"},
		{checkout.USDT, checkout.ChainSOL, "/api/next-usdt-sol-address"},
		{checkout.USDT, checkout.ChainBNB, "/api/next-usdt-bnb-address"},
		{checkout.USDC, checkout.ChainETH, "/api/next-usdc-eth-address"},
		{checkout.USDC, checkout.ChainSOL, "/api/next-usdc-sol-address"},
		{checkout.USDC, checkout.ChainBNB, "/api/next-usdc-bnb-address"},
	}
	for _, tc := range cases {
		got, err := endpointPath(tc.method, tc.chain)
		if err != nil {
			t.Errorf("%s/%s: %v", tc.method, tc.chain, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s/%s: expected %s, got %s", tc.method, tc.chain, tc.want, got)
		}
	}

	if _, err := endpointPath(checkout.USDT, ""); err != ErrChainRequired {
		t.Errorf("USDT without chain: expected ErrChainRequired, got %v", err)
	}
}

func TestNext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/next-eth-address" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"address": "0x52908400098527886E0F7030069857D2E4169EE7"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	addr, fallback, err := c.Next(context.Background(), checkout.ETH, checkout.ChainBase)
	if err != nil {
		t.Fatal(err)
	}
	if fallback {
		t.Error("live issuance must not report fallback")
	}
	if addr != "0x52908400098527886E0F7030069857D2E4169EE7" {
		t.Errorf("unexpected address %s", addr)
	}
}

func TestNextFailsWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	_, _, err := c.Next(context.Background(), checkout.ETH, checkout.ChainETH)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestNextDemoFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	c.DemoFallback = true

	addr, fallback, err := c.Next(context.Background(), checkout.ETH, checkout.ChainETH)
	if err != nil {
		t.Fatal(err)
	}
	if !fallback {
		t.Error("fallback flag must be set")
	}
	if addr != demoAddresses[checkout.ETH] {
		t.Errorf("expected the ETH demo address, got %s", addr)
	}
}

func TestNextMissingAddressField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	if _, _, err := c.Next(context.Background(), checkout.BTC, ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestNextMalformedAddressTreatedAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"address": "definitely-not-an-eth-address"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	if _, _, err := c.Next(context.Background(), checkout.ETH, checkout.ChainETH); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}

	c.DemoFallback = true
	addr, fallback, err := c.Next(context.Background(), checkout.ETH, checkout.ChainETH)
	if err != nil || !fallback || addr != demoAddresses[checkout.ETH] {
		t.Errorf("malformed response should degrade to the demo address, got %s %v %v", addr, fallback, err)
	}
}

func TestPlausibleAddress(t *testing.T) {
	cases := []struct {
		method checkout.Method
		chain  checkout.Chain
		addr   string
		ok     bool
	}{
		{checkout.ETH, "", "0x52908400098527886E0F7030069857D2E4169EE7", true},
		{checkout.ETH, "", "0x529084", false},
		{checkout.BNB, "", "0x52908400098527886E0F7030069857D2E4169EE7", true},
		{checkout.BTC, "", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{checkout.BTC, "", "1A1zP1eP5QGefi2DMPTfTL5SLmv7Divfff", false},
		{checkout.SOL, "", "11111111111111111111111111111111", true},
		{checkout.SOL, "", "tooshort", false},
		{checkout.USDT, checkout.ChainSOL, "11111111111111111111111111111111", true},
		{checkout.USDT, checkout.ChainETH, "0x52908400098527886E0F7030069857D2E4169EE7", true},
	}
	for _, tc := range cases {
		if got := plausibleAddress(tc.method, tc.chain, tc.addr); got != tc.ok {
			t.Errorf("%s/%s %s: expected %v, got %v", tc.method, tc.chain, tc.addr, tc.ok, got)
		}
	}
}
