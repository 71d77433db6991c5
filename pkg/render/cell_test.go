package render

import (
	stderrors "errors"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/numbering"
)

// fakeEncoder returns a 1x1 dark symbol, failing for payloads listed in fail.
type fakeEncoder struct {
	fail  map[string]bool
	panic bool
	calls []string
}

func (f *fakeEncoder) Encode(payload string, _ Level) (*Symbol, error) {
	f.calls = append(f.calls, payload)
	if f.panic {
		panic("boom")
	}
	if f.fail[payload] {
		return nil, stderrors.New("payload rejected")
	}
	return &Symbol{Size: 1, Modules: []bool{true}}, nil
}

func populated(text string) layout.Cell {
	return layout.Cell{Row: 1, Col: 2, Index: 5, Content: &numbering.Content{DisplayText: text, QRPayload: "qr:" + text}}
}

var cellBounds = layout.Rect{X: 10, Y: 20, W: 40, H: 12}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRenderCellSpacer(t *testing.T) {
	enc := &fakeEncoder{}
	in := RenderCell(layout.Cell{Row: 3, Col: 1, Index: -1}, cellBounds, DefaultStyle(), enc)

	if in.Kind != KindSpacer {
		t.Errorf("Kind = %v, want spacer", in.Kind)
	}
	if in.Bounds != cellBounds {
		t.Errorf("spacer must keep the cell footprint, got %+v", in.Bounds)
	}
	if in.Text != "" || in.QR != nil {
		t.Errorf("spacer must be blank, got %+v", in)
	}
	if len(enc.calls) != 0 {
		t.Error("spacer must not call the encoder")
	}
}

func TestRenderCellTextOnly(t *testing.T) {
	style := DefaultStyle()
	style.QR = false

	in := RenderCell(populated("ASN0001"), cellBounds, style, nil)
	if in.Kind != KindLabel || in.Text != "ASN0001" {
		t.Fatalf("got %+v", in)
	}
	if in.QR != nil {
		t.Error("QR disabled must not produce a QR block")
	}
	want := cellBounds.Inset(style.PaddingMm)
	if in.TextBounds != want {
		t.Errorf("text should take the full inner cell %+v, got %+v", want, in.TextBounds)
	}
}

func TestRenderCellWithQR(t *testing.T) {
	style := DefaultStyle()
	enc := &fakeEncoder{}

	in := RenderCell(populated("ASN0001"), cellBounds, style, enc)
	if in.QR == nil || in.QR.Fallback {
		t.Fatalf("expected QR block, got %+v", in.QR)
	}
	if in.QR.Payload != "qr:ASN0001" {
		t.Errorf("Payload = %q", in.QR.Payload)
	}
	if in.QR.Symbol == nil {
		t.Error("Symbol should be set")
	}

	qb := in.QR.Bounds
	if !near(qb.W, 8) || !near(qb.H, 8) {
		t.Errorf("QR size = %vx%v, want 8x8", qb.W, qb.H)
	}
	if !near(qb.X, 10.5) {
		t.Errorf("QR should sit at the left inner edge, X = %v", qb.X)
	}
	if !near(qb.Y+qb.H/2, cellBounds.Y+cellBounds.H/2) {
		t.Errorf("QR should be vertically centred, got %+v", qb)
	}
	if !near(in.TextBounds.X, qb.X+qb.W+style.PaddingMm) {
		t.Errorf("text should start after the QR block, got %+v", in.TextBounds)
	}
	if !near(in.TextBounds.X+in.TextBounds.W, cellBounds.X+cellBounds.W-style.PaddingMm) {
		t.Errorf("text should extend to the inner right edge, got %+v", in.TextBounds)
	}
}

func TestRenderCellQRClampedToCell(t *testing.T) {
	style := DefaultStyle()
	style.QRSizeMm = 50

	in := RenderCell(populated("A"), cellBounds, style, &fakeEncoder{})
	if !near(in.QR.Bounds.H, 11) {
		t.Errorf("QR must not exceed the inner cell height, got %v", in.QR.Bounds.H)
	}
}

func TestRenderCellFallback(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoder
	}{
		{"error", &fakeEncoder{fail: map[string]bool{"qr:BAD": true}}},
		{"panic", &fakeEncoder{panic: true}},
		{"nil encoder", nil},
		{"nil symbol", EncoderFunc(func(string, Level) (*Symbol, error) { return nil, nil })},
		{"short symbol", EncoderFunc(func(string, Level) (*Symbol, error) { return &Symbol{Size: 2}, nil })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := RenderCell(populated("BAD"), cellBounds, DefaultStyle(), &fakeEncoder{})
			in := RenderCell(populated("BAD"), cellBounds, DefaultStyle(), tt.enc)

			if in.QR == nil || !in.QR.Fallback {
				t.Fatalf("expected fallback block, got %+v", in.QR)
			}
			if in.QR.Err == "" || in.QR.Symbol != nil {
				t.Errorf("fallback should carry an error and no symbol: %+v", in.QR)
			}
			if in.QR.Bounds != ok.QR.Bounds {
				t.Errorf("fallback footprint %+v differs from symbol footprint %+v", in.QR.Bounds, ok.QR.Bounds)
			}
			if in.Text != "BAD" || in.TextBounds != ok.TextBounds {
				t.Errorf("text must be unaffected by QR failure: %+v", in)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelMedium, "l": LevelLow, "M": LevelMedium, " q ": LevelQuartile, "H": LevelHigh} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Error("ParseLevel(X) should fail")
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Style)
		wantErr string
	}{
		{"default", func(*Style) {}, ""},
		{"zero font", func(s *Style) { s.FontSizePt = 0 }, "font size"},
		{"negative padding", func(s *Style) { s.PaddingMm = -1 }, "padding"},
		{"zero qr size", func(s *Style) { s.QRSizeMm = 0 }, "QR size"},
		{"zero qr size without qr", func(s *Style) { s.QR = false; s.QRSizeMm = 0 }, ""},
		{"bad level", func(s *Style) { s.QRLevel = "Z" }, "error correction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindGutter.String() != "gutter" || Kind(9).String() != "Kind(9)" {
		t.Errorf("unexpected kind names: %s %s", KindGutter, Kind(9))
	}
}
