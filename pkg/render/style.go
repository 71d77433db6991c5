package render

import (
	"math"
	"strings"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Level is a QR error-correction level.
type Level string

// Error-correction levels, from 7% to 30% recoverable codewords.
const (
	LevelLow      Level = "L"
	LevelMedium   Level = "M"
	LevelQuartile Level = "Q"
	LevelHigh     Level = "H"
)

// ParseLevel accepts L, M, Q or H in any case. An empty string selects
// LevelMedium.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return LevelMedium, nil
	case "L":
		return LevelLow, nil
	case "M":
		return LevelMedium, nil
	case "Q":
		return LevelQuartile, nil
	case "H":
		return LevelHigh, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid QR error correction level %q (use L, M, Q or H)", s)
}

// Style defaults.
const (
	DefaultFontSizePt = 10.0
	DefaultQRSizeMm   = 8.0
	DefaultPaddingMm  = 0.5
)

// Style controls how cells are drawn.
type Style struct {
	FontSizePt float64 `json:"font_size_pt"`
	QR         bool    `json:"qr"`
	QRSizeMm   float64 `json:"qr_size_mm"`
	QRLevel    Level   `json:"qr_level"`
	PaddingMm  float64 `json:"padding_mm"` // inner padding of each cell
	Border     bool    `json:"border"`     // outline every cell, for test prints
}

// DefaultStyle returns the style used when a request sets nothing.
func DefaultStyle() Style {
	return Style{
		FontSizePt: DefaultFontSizePt,
		QR:         true,
		QRSizeMm:   DefaultQRSizeMm,
		QRLevel:    LevelMedium,
		PaddingMm:  DefaultPaddingMm,
	}
}

// Validate rejects non-positive sizes and unknown levels.
func (s Style) Validate() error {
	if !(s.FontSizePt > 0) || math.IsInf(s.FontSizePt, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be > 0, got %v", s.FontSizePt)
	}
	if s.PaddingMm < 0 || math.IsNaN(s.PaddingMm) || math.IsInf(s.PaddingMm, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be >= 0, got %v", s.PaddingMm)
	}
	if !s.QR {
		return nil
	}
	if !(s.QRSizeMm > 0) || math.IsInf(s.QRSizeMm, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "QR size must be > 0, got %v", s.QRSizeMm)
	}
	if _, err := ParseLevel(string(s.QRLevel)); err != nil {
		return err
	}
	return nil
}
