package compose

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
)

var okEncoder = render.EncoderFunc(func(string, render.Level) (*render.Symbol, error) {
	return &render.Symbol{Size: 1, Modules: []bool{true}}, nil
})

func run(t *testing.T, n int) []numbering.Content {
	t.Helper()
	cs, err := numbering.Generate(numbering.Config{Prefix: "ASN", StartingNumber: 1, PaddingZeros: 4, Count: n})
	if err != nil {
		t.Fatal(err)
	}
	return cs
}

func testFormat(hgap, vgap float64) format.LabelFormat {
	return format.LabelFormat{
		ID: "t", LabelWidthMm: 30, LabelHeightMm: 10,
		PageMarginTopBottomMm: 10, PageMarginSideMm: 10,
		ColumnsPerRow: 3, RowsPerSheet: 5,
		HorizontalSpacingMm: hgap, VerticalSpacingMm: vgap,
	}
}

func kinds(row Row) []render.Kind {
	out := make([]render.Kind, len(row.Elements))
	for i, el := range row.Elements {
		out[i] = el.Kind
	}
	return out
}

func TestComposeGutters(t *testing.T) {
	L, S, G := render.KindLabel, render.KindSpacer, render.KindGutter

	tests := []struct {
		name       string
		hgap, vgap float64
		count      int
		wantRows   [][]render.Kind
		wantGutter []bool
	}{
		{
			name: "both gutters", hgap: 2, vgap: 1, count: 5,
			wantRows:   [][]render.Kind{{L, G, L, G, L}, {G}, {L, G, L, G, S}},
			wantGutter: []bool{false, true, false},
		},
		{
			name: "horizontal only", hgap: 2, vgap: 0, count: 4,
			wantRows:   [][]render.Kind{{L, G, L, G, L}, {L, G, S, G, S}},
			wantGutter: []bool{false, false},
		},
		{
			name: "no gutters", hgap: 0, vgap: 0, count: 3,
			wantRows:   [][]render.Kind{{L, L, L}},
			wantGutter: []bool{false},
		},
		{
			name: "vertical only", hgap: 0, vgap: 3, count: 6,
			wantRows:   [][]render.Kind{{L, L, L}, {G}, {L, L, L}},
			wantGutter: []bool{false, true, false},
		},
		{
			name: "empty", hgap: 2, vgap: 1, count: 0,
			wantRows:   [][]render.Kind{},
			wantGutter: []bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compose(testFormat(tt.hgap, tt.vgap), run(t, tt.count), render.DefaultStyle(), okEncoder)
			if len(s.Rows) != len(tt.wantRows) {
				t.Fatalf("rows = %d, want %d", len(s.Rows), len(tt.wantRows))
			}
			for i, row := range s.Rows {
				if got := kinds(row); !reflect.DeepEqual(got, tt.wantRows[i]) {
					t.Errorf("row %d kinds = %v, want %v", i, got, tt.wantRows[i])
				}
				if row.Gutter != tt.wantGutter[i] {
					t.Errorf("row %d Gutter = %v", i, row.Gutter)
				}
			}
			if s.Labels != tt.count {
				t.Errorf("Labels = %d, want %d", s.Labels, tt.count)
			}
		})
	}
}

func TestComposeGeometry(t *testing.T) {
	f := testFormat(2, 1)
	s := Compose(f, run(t, 4), render.DefaultStyle(), okEncoder)

	first := s.Rows[0].Elements
	if first[0].Bounds.X != 10 || first[0].Bounds.Y != 10 {
		t.Errorf("first cell at %+v, want margins (10,10)", first[0].Bounds)
	}
	gutter := first[1]
	if gutter.Bounds.X != 40 || gutter.Bounds.W != 2 {
		t.Errorf("horizontal gutter = %+v, want X=40 W=2", gutter.Bounds)
	}
	if first[2].Bounds.X != 42 {
		t.Errorf("second cell X = %v, want 42", first[2].Bounds.X)
	}

	vg := s.Rows[1].Elements[0]
	if vg.Bounds.Y != 20 || vg.Bounds.H != 1 || vg.Bounds.W != 94 {
		t.Errorf("vertical gutter = %+v, want Y=20 H=1 W=94", vg.Bounds)
	}
	if y := s.Rows[2].Elements[0].Bounds.Y; y != 21 {
		t.Errorf("second row Y = %v, want 21", y)
	}
	if s.PageWidthMm != format.A4WidthMm || s.Margins.SideMm != 10 {
		t.Errorf("page = %vx%v margins %+v", s.PageWidthMm, s.PageHeightMm, s.Margins)
	}
}

func TestComposeDeterministic(t *testing.T) {
	f := testFormat(2, 1)
	cs := run(t, 11)
	a, err := ComposeDocument(context.Background(), f, cs, render.DefaultStyle(), okEncoder)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComposeDocument(context.Background(), f, cs, render.DefaultStyle(), okEncoder)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical documents")
	}
}

func TestComposeQRFailureIsolated(t *testing.T) {
	f := testFormat(2, 0)
	cs := run(t, 6)
	failing := render.EncoderFunc(func(payload string, level render.Level) (*render.Symbol, error) {
		if payload == "ASN0003" {
			return nil, stderrors.New("encoder fault")
		}
		return okEncoder(payload, level)
	})

	good := Compose(f, cs, render.DefaultStyle(), okEncoder)
	bad := Compose(f, cs, render.DefaultStyle(), failing)

	if len(bad.Fallbacks) != 1 {
		t.Fatalf("Fallbacks = %+v, want exactly one", bad.Fallbacks)
	}
	fb := bad.Fallbacks[0]
	if fb.Row != 0 || fb.Col != 2 || fb.Index != 2 || fb.Payload != "ASN0003" {
		t.Errorf("fallback = %+v", fb)
	}

	gi, bi := good.Instructions(), bad.Instructions()
	if len(gi) != len(bi) {
		t.Fatalf("instruction count changed: %d vs %d", len(gi), len(bi))
	}
	for i := range gi {
		if gi[i].Text != bi[i].Text || gi[i].Bounds != bi[i].Bounds {
			t.Errorf("instruction %d changed after QR failure", i)
		}
		if i != 2 && (bi[i].QR == nil || bi[i].QR.Fallback) {
			t.Errorf("neighbour %d lost its QR symbol", i)
		}
	}
}

func TestComposeDocumentPagination(t *testing.T) {
	f := testFormat(2, 1) // capacity 15
	doc, err := ComposeDocument(context.Background(), f, run(t, 31), render.DefaultStyle(), okEncoder)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Sheets) != 3 {
		t.Fatalf("sheets = %d, want 3", len(doc.Sheets))
	}
	if doc.Labels() != 31 {
		t.Errorf("Labels() = %d, want 31", doc.Labels())
	}
	last := doc.Sheets[2]
	if last.ContentRows() != 1 || last.Labels != 1 {
		t.Errorf("last sheet rows=%d labels=%d", last.ContentRows(), last.Labels)
	}
	if got := last.Instructions()[0].Text; got != "ASN0031" {
		t.Errorf("last label = %q", got)
	}
	for i, s := range doc.Sheets {
		if s.Index != i {
			t.Errorf("sheet %d has Index %d", i, s.Index)
		}
	}
}

func TestComposeDocumentCancelled(t *testing.T) {
	f := testFormat(2, 1)
	cs := run(t, 31)

	tests := []struct {
		name    string
		cancel  bool
		wantErr error
	}{
		{"live context", false, nil},
		{"cancelled context", true, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}
			doc, err := ComposeDocument(ctx, f, cs, render.DefaultStyle(), okEncoder)
			if !stderrors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && doc != nil {
				t.Error("cancelled composition must not return a document")
			}
			if tt.wantErr == nil && len(doc.Sheets) != 3 {
				t.Errorf("sheets = %d, want 3", len(doc.Sheets))
			}
		})
	}
}

func TestComposeSpecGrid(t *testing.T) {
	f := format.LabelFormat{ID: "g", ColumnsPerRow: 3, RowsPerSheet: 63}
	s := Compose(f, run(t, 189), render.DefaultStyle(), okEncoder)
	if s.ContentRows() != 63 || s.Labels != 189 {
		t.Errorf("rows=%d labels=%d, want 63 full rows", s.ContentRows(), s.Labels)
	}
	for i, in := range s.Instructions() {
		if want := fmt.Sprintf("ASN%04d", i+1); in.Text != want {
			t.Fatalf("instruction %d = %q, want %q", i, in.Text, want)
		}
	}
}
