package format

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

var (
	gridLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z]+`},
		{Name: "Punct", Pattern: `,`},
	})

	gridParser = participle.MustBuild[gridExpr](
		participle.Lexer(gridLexer),
		participle.Elide("Whitespace"),
	)
)

// gridExpr is the AST of a grid expression such as
// "3x8 70x36 margin 4.5,0 gap 0,0".
type gridExpr struct {
	Cols    int           `parser:"@Number 'x'"`
	Rows    int           `parser:"@Number"`
	Label   *gridSize     `parser:"@@?"`
	Options []*gridOption `parser:"@@*"`
}

type gridSize struct {
	W float64 `parser:"@Number 'x'"`
	H float64 `parser:"@Number 'mm'?"`
}

type gridOption struct {
	Margin *gridPair `parser:"  'margin' @@"`
	Gap    *gridPair `parser:"| 'gap' @@"`
	Page   *gridSize `parser:"| 'page' @@"`
}

// gridPair is one or two lengths; a single value applies to both axes.
type gridPair struct {
	First float64   `parser:"@Number 'mm'?"`
	Rest  []float64 `parser:"( ',' @Number 'mm'? )?"`
}

func (p *gridPair) values() (a, b float64) {
	if len(p.Rest) == 0 {
		return p.First, p.First
	}
	return p.First, p.Rest[0]
}

// ParseGrid builds a LabelFormat from a grid expression:
//
//	<cols>x<rows> [<width>x<height>] [margin <top-bottom>[,<side>]] [gap <horizontal>[,<vertical>]] [page <width>x<height>]
//
// All lengths are millimetres; an optional "mm" suffix is accepted. The
// returned format is validated and named after the expression.
func ParseGrid(id, src string) (LabelFormat, error) {
	expr, err := gridParser.ParseString("", strings.TrimSpace(src))
	if err != nil {
		return LabelFormat{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid grid expression %q", src)
	}

	f := LabelFormat{
		ID:            id,
		Name:          fmt.Sprintf("Custom grid (%s)", strings.Join(strings.Fields(src), " ")),
		ColumnsPerRow: expr.Cols,
		RowsPerSheet:  expr.Rows,
	}
	if expr.Label != nil {
		f.LabelWidthMm, f.LabelHeightMm = expr.Label.W, expr.Label.H
	}
	for _, opt := range expr.Options {
		switch {
		case opt.Margin != nil:
			f.PageMarginTopBottomMm, f.PageMarginSideMm = opt.Margin.values()
		case opt.Gap != nil:
			f.HorizontalSpacingMm, f.VerticalSpacingMm = opt.Gap.values()
		case opt.Page != nil:
			f.PageWidthMm, f.PageHeightMm = opt.Page.W, opt.Page.H
		}
	}

	if err := f.Validate(); err != nil {
		return LabelFormat{}, err
	}
	return f, nil
}
