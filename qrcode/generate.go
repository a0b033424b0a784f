package qrcode

import (
	qrcode "github.com/skip2/go-qrcode"
)

// PNG renders a payment URI as a QR PNG. Served locally so checkout still has
// a scannable code when both hosted QR image services are unreachable.
func PNG(uri string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(uri, qrcode.Medium, size)
}
