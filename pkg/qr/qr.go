// Package qr encodes label payloads into QR symbols with boombuler/barcode.
package qr

import (
	"fmt"

	"github.com/boombuler/barcode/qr"

	"github.com/matzehuels/labelsheet/pkg/render"
)

// MaxPayload is the largest payload accepted, in bytes. It matches the
// byte-mode capacity of a version 40 symbol at level L.
const MaxPayload = 2953

// Encoder implements render.Encoder.
type Encoder struct{}

// New returns a QR encoder.
func New() Encoder { return Encoder{} }

// Encode builds the module matrix for payload. Empty payloads are rejected.
func (Encoder) Encode(payload string, level render.Level) (*render.Symbol, error) {
	if payload == "" {
		return nil, fmt.Errorf("qr: empty payload")
	}
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("qr: payload of %d bytes exceeds %d", len(payload), MaxPayload)
	}
	ecl, err := errorCorrection(level)
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode(payload, ecl, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	b := code.Bounds()
	size := b.Dx()
	if size < 1 || b.Dy() != size {
		return nil, fmt.Errorf("qr: unexpected symbol bounds %v", b)
	}
	sym := &render.Symbol{Size: size, Modules: make([]bool, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			sym.Modules[y*size+x] = r < 0x8000
		}
	}
	return sym, nil
}

func errorCorrection(level render.Level) (qr.ErrorCorrectionLevel, error) {
	switch level {
	case render.LevelLow:
		return qr.L, nil
	case render.LevelMedium, "":
		return qr.M, nil
	case render.LevelQuartile:
		return qr.Q, nil
	case render.LevelHigh:
		return qr.H, nil
	}
	return qr.M, fmt.Errorf("qr: unknown error correction level %q", level)
}
