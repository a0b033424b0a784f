package checkout

import "strings"

// Method is the cryptocurrency asset used for payment.
type Method string

const (
	BTC  Method = "BTC"
	ETH  Method = "ETH"
	SOL  Method = "SOL"
	BNB  Method = "BNB"
	LTC  Method = "LTC"
	USDT Method = "USDT"
	USDC Method = "USDC"
)

// Chain is the network a multi-network asset is transferred on.
type Chain string

const (
	ChainETH       Chain = "ETH"
	ChainSOL       Chain = "SOL"
	ChainBNB       Chain = "BNB"
	ChainBase      Chain = "BASE"
	ChainArbitrum  Chain = "ARBITRUM"
	ChainOptimism  Chain = "OPTIMISM"
	ChainPolygon   Chain = "POLYGON"
	ChainAvalanche Chain = "AVALANCHE"
	ChainLinea     Chain = "LINEA"
	ChainZkSync    Chain = "ZKSYNC"
)

var Methods = []Method{BTC, ETH, SOL, BNB, LTC, USDT, USDC}

// coingecko asset ids, used as keys of the price endpoint response
var geckoIDs = map[Method]string{
	BTC:  "bitcoin",
	ETH:  "ethereum",
	SOL:  "solana",
	BNB:  "binancecoin",
	LTC:  "litecoin",
	USDT: "tether",
	USDC: "usd-coin",
}

// chains offered per method. The ETH list is informational only: whatever the
// user picks, the issuer is always asked for a mainnet address (see address
// package). USDT/USDC chains do select distinct issuer endpoints.
var methodChains = map[Method][]Chain{
	ETH: {ChainETH, ChainBase, ChainArbitrum, ChainOptimism, ChainPolygon,
		ChainAvalanche, ChainLinea, ChainZkSync},
	USDT: {ChainETH, ChainSOL, ChainBNB},
	USDC: {ChainETH, ChainSOL, ChainBNB},
}

func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(s))
	for _, v := range Methods {
		if v == m {
			return m, true
		}
	}
	return "", false
}

func ParseChain(s string) (Chain, bool) {
	c := Chain(strings.ToUpper(s))
	switch c {
	case ChainETH, ChainSOL, ChainBNB, ChainBase, ChainArbitrum, ChainOptimism,
		ChainPolygon, ChainAvalanche, ChainLinea, ChainZkSync:
		return c, true
	}
	return "", false
}

// GeckoID returns the price-feed identifier of the asset.
func (m Method) GeckoID() string {
	return geckoIDs[m]
}

// Stable reports whether the asset is pegged 1:1 to USD. Stable amounts never
// depend on the price feed.
func (m Method) Stable() bool {
	return m == USDT || m == USDC
}

// RequiresChain reports whether a chain must be selected before payment.
func (m Method) RequiresChain() bool {
	return m == ETH || m == USDT || m == USDC
}

// Chains returns the chains selectable for the method, nil when none apply.
func (m Method) Chains() []Chain {
	return methodChains[m]
}

// AllowsChain reports whether c is in the method's chain list.
func (m Method) AllowsChain(c Chain) bool {
	for _, v := range methodChains[m] {
		if v == c {
			return true
		}
	}
	return false
}
