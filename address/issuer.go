// Client for the address-issuance endpoints. Endpoint choice is a pure
// function of method and chain; responses get a cheap shape check before use.
package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"onlyexchange/checkout"
	"onlyexchange/logger"
	"onlyexchange/metrics"
)

var (
	ErrUnavailable   = errors.New("address issuer unavailable")
	ErrChainRequired = errors.New("chain selection required")
)

// Demo placeholder addresses, shared per asset and visually distinguishable
// from real ones. Only handed out when the fallback is explicitly enabled;
// silently giving a user a non-functional address loses real payments.
var demoAddresses = map[checkout.Method]string{
	checkout.BTC:  "bc1qdemo000000000000000000000000000000000",
	checkout.ETH:  "0x000000000000000000000000000000000000dEaD",
	checkout.SOL:  "DemoDemoDemoDemoDemoDemoDemoDemoDemoDemo111",
	checkout.BNB:  "0x000000000000000000000000000000000000bEEF",
	checkout.LTC:  "ltc1qdemo00000000000000000000000000000000",
	checkout.USDT: "0x00000000000000000000000000000000DeaDBeef",
	checkout.USDC: "0x00000000000000000000000000000000cafeBabe",
}

type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
	rec     metrics.Recorder

	// DemoFallback substitutes a placeholder address on any issuance failure
	// so the pay step is always reachable. Off by default.
	DemoFallback bool
}

func New(baseURL string, log logger.Logger, rec metrics.Recorder) *Client {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
		rec:     rec,
	}
}

// endpointPath maps method+chain to the issuer path. ETH always asks for a
// mainnet address no matter which chain the user picked: the page's L2
// selector is informational and was never wired to chain-specific issuance.
func endpointPath(m checkout.Method, chain checkout.Chain) (string, error) {
	switch m {
	case checkout.BTC:
		return "/api/next-btc-address", nil
	case checkout.ETH:
		return "/api/next-eth-address", nil
	case checkout.SOL:
		return "/api/next-sol-address", nil
	case checkout.BNB:
		return "/api/next-bnb-address", nil
	case checkout.LTC:
		return "/api/next-ltc-address", nil
	case checkout.USDT, checkout.USDC:
		coin := strings.ToLower(string(m))
		switch chain {
		case checkout.ChainETH:
			return fmt.Sprintf("/api/next-%s-eth-address", coin), nil
		case checkout.ChainSOL:
			return fmt.Sprintf("/api/next-%s-sol-address", coin), nil
		case checkout.ChainBNB:
			return fmt.Sprintf("/api/next-%s-bnb-address", coin), nil
		default:
			return "", ErrChainRequired
		}
	}
	return "", fmt.Errorf("unsupported method %s", m)
}

// Next requests a receiving address for the method/chain. With DemoFallback
// enabled any failure degrades to the per-asset placeholder address; the
// second return value reports whether the fallback was used.
func (c *Client) Next(ctx context.Context, m checkout.Method, chain checkout.Chain) (string, bool, error) {
	path, err := endpointPath(m, chain)
	if err != nil {
		return "", false, err
	}

	addr, err := c.fetch(ctx, path)
	if err == nil {
		if !plausibleAddress(m, chain, addr) {
			err = fmt.Errorf("issuer returned malformed address %q", addr)
		}
	}
	if err != nil {
		c.log.Warn("address issuance failed", map[string]any{
			"method": string(m), "path": path, "error": err.Error(),
		})
		if c.DemoFallback {
			c.rec.IncCounter(metrics.AddressFallback, map[string]string{"method": string(m)})
			return demoAddresses[m], true, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return addr, false, nil
}

func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	c.rec.ObserveLatency("address_fetch", time.Since(start), nil)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("issuer returned %s", resp.Status)
	}

	var body struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Address == "" {
		return "", errors.New("response missing address field")
	}
	return body.Address, nil
}
