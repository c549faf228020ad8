package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/render/nodelink"
)

// Format constants for graph output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported graph formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be dot or svg)", format)
	}
	return nil
}

// RenderOptions configures Render.
type RenderOptions struct {
	Format   string
	Detailed bool
}

// Render draws the constraint graph of a result in the requested format.
func Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatDOT
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(res.Graph(), res.Order, res.Warnings, nodelink.Options{
		Mods:     res.Mods,
		Disabled: res.Disabled,
		Detailed: opts.Detailed,
	})

	switch opts.Format {
	case FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return svg, nil
	default:
		return []byte(dot), nil
	}
}
