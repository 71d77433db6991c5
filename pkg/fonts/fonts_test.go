package fonts

import (
	"slices"
	"testing"
)

func TestRegular(t *testing.T) {
	a, err := Regular()
	if err != nil {
		t.Fatalf("Regular() error: %v", err)
	}
	b, _ := Regular()
	if a != b {
		t.Error("Regular() should return the cached font")
	}
}

func TestFacesCache(t *testing.T) {
	ttf, err := Regular()
	if err != nil {
		t.Fatal(err)
	}
	faces := NewFaces(ttf, 2)
	defer faces.Close()

	small := faces.Face(8)
	if faces.Face(8) != small {
		t.Error("same size should return the cached face")
	}
	large := faces.Face(16)
	if large == small {
		t.Error("different sizes should return different faces")
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("8pt face height %v should be smaller than 16pt %v", small.Metrics().Height, large.Metrics().Height)
	}
}

func TestMissing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []rune
	}{
		{"ascii", "ASN-0001", nil},
		{"latin accents", "Büro-Ærø 7", nil},
		{"greek", "Ω-12", nil},
		{"cjk", "箱-1", []rune{'箱'}},
		{"duplicates reported once", "箱箱-倉", []rune{'箱', '倉'}},
		{"whitespace ignored", "A\tB C", nil},
		{"emoji", "📦 01", []rune{'📦'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Missing(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Missing(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEmbeddedData(t *testing.T) {
	if len(RegularTTF()) == 0 || len(BoldTTF()) == 0 {
		t.Fatal("embedded font data is empty")
	}
	if slices.Equal(RegularTTF(), BoldTTF()) {
		t.Error("regular and bold data should differ")
	}
}
