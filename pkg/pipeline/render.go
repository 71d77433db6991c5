package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// Render turns doc into the bytes of one output type. Renderer failures carry
// a "rendering:" prefix and keep their code; uncoded ones become
// RENDERING_FAILED.
func Render(ctx context.Context, rd sink.Renderer, doc *compose.Document, output string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, output)
	start := time.Now()

	data, err := rd.Render(doc)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRendering, err, "render %s", output)
		}
		err = fmt.Errorf("rendering: %w", err)
	}
	hooks.OnRenderComplete(ctx, output, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
