package numbering

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Placeholder is replaced by the display text in QR templates.
const Placeholder = "{label}"

// Defaults used when a request leaves a field unset.
const (
	DefaultPrefix         = "ASN"
	DefaultStartingNumber = 1
	DefaultPaddingZeros   = 4
)

// maxPadding bounds the zero padding to keep labels printable.
const maxPadding = 32

// Config describes a run of sequential labels.
type Config struct {
	Prefix         string `json:"prefix"`
	StartingNumber int    `json:"starting_number"`
	PaddingZeros   int    `json:"padding_zeros"`
	Count          int    `json:"count"`
	QRTemplate     string `json:"qr_template,omitempty"`
}

// Content is one generated label.
type Content struct {
	DisplayText string `json:"display_text"`
	QRPayload   string `json:"qr_payload"`
}

// Validate reports an INVALID_CONFIGURATION error for negative values,
// oversized padding, an invalid prefix or template, or a run whose last
// number would overflow.
func (c Config) Validate() error {
	if err := errors.ValidateNonNegative("starting number", c.StartingNumber); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("padding", c.PaddingZeros); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("count", c.Count); err != nil {
		return err
	}
	if c.PaddingZeros > maxPadding {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be <= %d, got %d", maxPadding, c.PaddingZeros)
	}
	if c.Count > 0 && c.StartingNumber > math.MaxInt-(c.Count-1) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"starting number %d with count %d overflows", c.StartingNumber, c.Count)
	}
	if err := errors.ValidatePrefix(c.Prefix); err != nil {
		return err
	}
	return errors.ValidateTemplate(c.QRTemplate)
}

// Label returns the display text for number n.
func (c Config) Label(n int) string {
	return c.Prefix + ZeroPad(n, c.PaddingZeros)
}

// Payload returns the QR payload for a display text.
func (c Config) Payload(label string) string {
	if c.QRTemplate == "" {
		return label
	}
	return ApplyTemplate(c.QRTemplate, label)
}

// Generate expands cfg into exactly cfg.Count contents in numbering order.
// A zero count yields an empty, non-nil slice.
func Generate(cfg Config) ([]Content, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]Content, cfg.Count)
	for i := range out {
		label := cfg.Label(cfg.StartingNumber + i)
		out[i] = Content{DisplayText: label, QRPayload: cfg.Payload(label)}
	}
	return out, nil
}

// ZeroPad formats n in decimal, left-padded with '0' to at least width
// digits. A width of zero or less disables padding; wider numbers are kept
// whole. Negative numbers keep their sign in front of the padding.
func ZeroPad(n, width int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	if pad := width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

// ApplyTemplate replaces every occurrence of Placeholder in tpl with label.
func ApplyTemplate(tpl, label string) string {
	return strings.ReplaceAll(tpl, Placeholder, label)
}
