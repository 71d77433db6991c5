package sink

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
)

var checker = render.EncoderFunc(func(payload string, _ render.Level) (*render.Symbol, error) {
	if strings.HasSuffix(payload, "0002") {
		return nil, stderrors.New("rejected")
	}
	mods := make([]bool, 9)
	for i := range mods {
		mods[i] = i%2 == 0
	}
	return &render.Symbol{Size: 3, Modules: mods}, nil
})

func testDocument(t *testing.T, count int) *compose.Document {
	t.Helper()
	return prefixedDocument(t, "ASN", count)
}

func prefixedDocument(t *testing.T, prefix string, count int) *compose.Document {
	t.Helper()
	f, err := format.Default().Lookup(format.AveryL7160)
	if err != nil {
		t.Fatal(err)
	}
	cs, err := numbering.Generate(numbering.Config{Prefix: prefix, StartingNumber: 1, PaddingZeros: 4, Count: count})
	if err != nil {
		t.Fatal(err)
	}
	style := render.DefaultStyle()
	style.Border = true
	doc, err := compose.ComposeDocument(context.Background(), f, cs, style, checker)
	if err != nil {
		t.Fatal(err)
	}
	doc.Title = "test"
	return doc
}

func TestRenderPDF(t *testing.T) {
	doc := testDocument(t, 25)
	data, err := RenderPDF(doc, WithCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
	if n := bytes.Count(data, []byte("/Type /Page\n")); n != 2 {
		t.Errorf("page objects = %d, want 2", n)
	}
}

func TestRenderPDFReproducible(t *testing.T) {
	doc := testDocument(t, 5)
	date := WithCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	a, err := RenderPDF(doc, date)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPDF(doc, date)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same document and date should produce identical bytes")
	}
}

func TestRenderPDFEmbedsFont(t *testing.T) {
	data, err := RenderPDF(testDocument(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("/FontFile2")) {
		t.Error("label font should be embedded as TrueType")
	}
	if bytes.Contains(data, []byte("/BaseFont /Helvetica")) {
		t.Error("core Helvetica cannot print non-Latin prefixes")
	}
}

func TestRenderGlyphCoverage(t *testing.T) {
	renderers := map[string]func(*compose.Document) ([]byte, error){
		OutputPDF: func(d *compose.Document) ([]byte, error) { return RenderPDF(d) },
		OutputPNG: func(d *compose.Document) ([]byte, error) { return RenderPNG(d, WithDPI(30)) },
	}
	tests := []struct {
		prefix   string
		wantCode errors.Code
	}{
		{"ASN", ""},
		{"Ω-", ""},
		{"Łódź-", ""},
		{"Пр-", ""},
		{"箱-", errors.ErrCodeInvalidInput},
		{"📦", errors.ErrCodeInvalidInput},
	}
	for output, fn := range renderers {
		for _, tt := range tests {
			t.Run(output+"/"+tt.prefix, func(t *testing.T) {
				_, err := fn(prefixedDocument(t, tt.prefix, 3))
				if tt.wantCode == "" {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					return
				}
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				if !strings.Contains(err.Error(), tt.prefix) {
					t.Errorf("error %q should name the offending text", err)
				}
			})
		}
	}
}

func TestRenderPDFEmptyDocument(t *testing.T) {
	if _, err := RenderPDF(&compose.Document{}); err == nil {
		t.Error("document without sheets should fail")
	}
}

func TestRenderPNG(t *testing.T) {
	doc := testDocument(t, 25)
	data, err := RenderPNG(doc, WithDPI(50))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	// Two A4 sheets at 50 dpi.
	if b.Dx() != 413 || b.Dy() != 1169 {
		t.Errorf("image size = %dx%d, want 413x1169", b.Dx(), b.Dy())
	}
}

func TestRenderPNGLimit(t *testing.T) {
	doc := testDocument(t, 1)
	if _, err := RenderPNG(doc, WithMaxPixels(100)); !errors.Is(err, errors.ErrCodeCapacity) {
		t.Errorf("pixel limit error = %v, want CAPACITY_EXCEEDED", err)
	}
	if _, err := RenderPNG(doc, WithDPI(0)); err == nil {
		t.Error("expected dpi error")
	}
}

func TestRenderPNGSheetLimit(t *testing.T) {
	perSheet := 21 // avery-l7160
	tests := []struct {
		name     string
		count    int
		opts     []PNGOption
		wantCode errors.Code
	}{
		{"at default limit", perSheet * DefaultPNGMaxSheets, nil, ""},
		{"over default limit", perSheet*DefaultPNGMaxSheets + 1, nil, errors.ErrCodeCapacity},
		{"custom limit", perSheet + 1, []PNGOption{WithMaxSheets(1)}, errors.ErrCodeCapacity},
		{"limit disabled", perSheet*DefaultPNGMaxSheets + 1, []PNGOption{WithMaxSheets(0)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]PNGOption{WithDPI(20)}, tt.opts...)
			_, err := RenderPNG(testDocument(t, tt.count), opts...)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t, 4)
	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Title     string `json:"title"`
		Labels    int    `json:"labels"`
		Fallbacks []struct {
			Payload string `json:"payload"`
		} `json:"fallbacks"`
		Format struct {
			ID string `json:"id"`
		} `json:"format"`
		Sheets []struct {
			Rows []struct {
				Elements []struct {
					Kind string `json:"kind"`
					Text string `json:"text"`
				} `json:"elements"`
			} `json:"rows"`
		} `json:"sheets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Title != "test" || out.Labels != 4 || out.Format.ID != format.AveryL7160 {
		t.Errorf("unexpected header: %+v", out)
	}
	if len(out.Fallbacks) != 1 || out.Fallbacks[0].Payload != "ASN0002" {
		t.Errorf("fallbacks = %+v", out.Fallbacks)
	}
	first := out.Sheets[0].Rows[0].Elements[0]
	if first.Kind != "label" || first.Text != "ASN0001" {
		t.Errorf("first element = %+v", first)
	}
}

func TestRenderXLSX(t *testing.T) {
	doc := testDocument(t, 25)
	data, err := RenderXLSX(doc)
	if err != nil {
		t.Fatalf("RenderXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(manifestSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 26 {
		t.Fatalf("rows = %d, want header + 25", len(rows))
	}
	if rows[0][1] != "Label" {
		t.Errorf("header = %v", rows[0])
	}
	if got := rows[2]; got[1] != "ASN0002" || !strings.HasPrefix(got[6], "error") {
		t.Errorf("fallback row = %v", got)
	}
	if got := rows[25]; got[1] != "ASN0025" || got[3] != "2" {
		t.Errorf("last row = %v, want ASN0025 on sheet 2", got)
	}

	v, err := f.GetCellValue(formatSheet, "B1")
	if err != nil || v != format.AveryL7160 {
		t.Errorf("format sheet B1 = %q, %v", v, err)
	}
}

func TestContentType(t *testing.T) {
	if ContentType("PDF") != "application/pdf" || ContentType("svg") != "application/octet-stream" {
		t.Error("unexpected content types")
	}
	if got := Outputs(); strings.Join(got, ",") != "json,pdf,png,xlsx" {
		t.Errorf("Outputs() = %v", got)
	}
	for _, o := range Outputs() {
		if _, ok := Defaults()[o]; !ok {
			t.Errorf("no default renderer for %s", o)
		}
	}
}
