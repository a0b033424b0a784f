package checkout

import (
	"fmt"
	"net/url"
)

// PaymentURI builds the string encoded into the payment QR code.
// BTC wallets understand the BIP-21 amount parameter, LTC wallets generally
// only the bare scheme, everything else scans the raw address.
func PaymentURI(method Method, address, amount string) string {
	switch method {
	case BTC:
		return fmt.Sprintf("bitcoin:%s?amount=%s", address, amount)
	case LTC:
		return fmt.Sprintf("litecoin:%s", address)
	default:
		return address
	}
}

// QRImageURL returns the primary hosted QR image for the payment URI.
// QRImageFallbackURL is swapped in by the page when the primary image
// fails to load.
func QRImageURL(uri string) string {
	return fmt.Sprintf("https://chart.googleapis.com/chart?chs=260x260&cht=qr&chl=%s", url.QueryEscape(uri))
}

func QRImageFallbackURL(uri string) string {
	return fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=260x260&data=%s", url.QueryEscape(uri))
}
