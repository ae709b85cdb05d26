package processor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// textSpan is a run of text in one color
type textSpan struct {
	text string
	col  color.Color
}

// renderLine draws spans with the 7x13 bitmap face and scales the result up.
// The scale shrinks until the line fits maxWidth.
func renderLine(spans []textSpan, scale, maxWidth int) *image.NRGBA {
	face := basicfont.Face7x13

	width := 0
	for _, s := range spans {
		width += font.MeasureString(face, s.text).Ceil()
	}
	height := face.Metrics().Height.Ceil()
	if width == 0 {
		return nil
	}

	for scale > 1 && width*scale > maxWidth {
		scale--
	}

	small := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  small,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	for _, s := range spans {
		d.Src = image.NewUniform(s.col)
		d.DrawString(s.text)
	}

	return imaging.Resize(small, width*scale, height*scale, imaging.NearestNeighbor)
}

// drawCentered pastes a rendered line horizontally centered with its top at y.
// It returns the y just below the line.
func drawCentered(dst *image.NRGBA, line *image.NRGBA, y int) int {
	if line == nil {
		return y
	}
	x := (dst.Bounds().Dx() - line.Bounds().Dx()) / 2
	r := line.Bounds().Add(image.Pt(x, y))
	draw.Draw(dst, r, line, image.Point{}, draw.Over)
	return y + line.Bounds().Dy()
}

// fade blends c over the opaque bg at the given opacity
func fade(c, bg color.NRGBA, alpha float64) color.NRGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*alpha + float64(b)*(1-alpha))
	}
	return color.NRGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 255}
}
