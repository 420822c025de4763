package viz

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Format is an output file format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("viz: unsupported format %q (want svg, png or pdf)", s)
}

// Encode writes p to w as format, sized width×height points.
func Encode(p *plot.Plot, format Format, width, height float64, w io.Writer) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viz: plot size must be positive, got %gx%g", width, height)
	}
	wt, err := p.WriterTo(vg.Points(width), vg.Points(height), string(format))
	if err != nil {
		return fmt.Errorf("viz: encode %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("viz: write %s: %w", format, err)
	}
	return nil
}
