package checkout

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrPriceUnavailable = errors.New("live price unavailable")

// ComputeAmount converts a plan's USD price into a display amount in the
// selected asset.
//
// Stables are the USD price verbatim, two decimals. Everything else is
// priceUSD / usdPrice truncated (never rounded) to 8 decimals: display rounding
// up could show an amount the user then underpays against.
func ComputeAmount(priceUSD float64, method Method, usdPrice float64) (string, error) {
	if method.Stable() {
		return decimal.NewFromFloat(priceUSD).StringFixed(2), nil
	}
	if usdPrice <= 0 {
		return "", ErrPriceUnavailable
	}
	amount := decimal.NewFromFloat(priceUSD).Div(decimal.NewFromFloat(usdPrice))
	return amount.Truncate(8).StringFixed(8), nil
}
