package address

import (
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"

	"onlyexchange/checkout"
)

// plausibleAddress is a shape check, not ownership proof: a malformed issuer
// response is treated like a failed fetch instead of being shown to the user.
func plausibleAddress(m checkout.Method, chain checkout.Chain, addr string) bool {
	switch m {
	case checkout.BTC:
		return validBase58OrBech32(addr, "bc1")
	case checkout.LTC:
		return validBase58OrBech32(addr, "ltc1")
	case checkout.ETH, checkout.BNB:
		return common.IsHexAddress(addr)
	case checkout.SOL:
		return validSolana(addr)
	case checkout.USDT, checkout.USDC:
		if chain == checkout.ChainSOL {
			return validSolana(addr)
		}
		return common.IsHexAddress(addr)
	}
	return false
}

func validBase58OrBech32(addr, hrpPrefix string) bool {
	if strings.HasPrefix(strings.ToLower(addr), hrpPrefix) {
		_, _, err := bech32.Decode(strings.ToLower(addr))
		return err == nil
	}
	_, _, err := base58.CheckDecode(addr)
	return err == nil
}

func validSolana(addr string) bool {
	raw := base58.Decode(addr)
	return len(raw) == 32
}
