package qrcode_test

import (
	"bytes"
	"testing"

	"onlyexchange/qrcode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNG(t *testing.T) {
	png, err := qrcode.PNG("bitcoin:bc1qaddr?amount=0.00049976", 256)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestPNGDefaultSize(t *testing.T) {
	png, err := qrcode.PNG("litecoin:ltc1qaddr", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(png) == 0 {
		t.Error("empty image")
	}
}
