// Package renderer holds what the painter backends share: overlay-string
// translation and palette recolouring of the generated sprite art.
package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/leonelquinteros/gotext"

	"isoworld/pkg/engine/sprites"
)

// FormatString resolves an overlay key through the translation catalog and
// formats its arguments. Untranslated keys pass through unchanged, so plain
// format strings work without a catalog.
func FormatString(key string, args []any) string {
	s := gotext.Get(key)
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}

// paletteScale returns the per-channel multipliers of a palette, including
// the alpha fade of the transparency palette.
func paletteScale(pal sprites.PaletteID) (r, g, b, a float64) {
	switch pal {
	case sprites.PaletteToTransparent:
		return 0.6, 0.6, 0.6, 0.55
	case sprites.PaletteRed:
		return 1.0, 0.55, 0.55, 1.0
	case sprites.PaletteGreen:
		return 0.55, 1.0, 0.55, 1.0
	case sprites.PaletteBlue:
		return 0.55, 0.55, 1.0, 1.0
	case sprites.PaletteYellow:
		return 1.0, 1.0, 0.5, 1.0
	case sprites.PaletteGrey:
		return 0.7, 0.7, 0.7, 1.0
	default:
		return 1.0, 1.0, 1.0, 1.0
	}
}

// ApplyPalette returns src recoloured for the given palette. PaletteNone
// returns src itself; everything else allocates.
func ApplyPalette(src *image.RGBA, pal sprites.PaletteID) *image.RGBA {
	if pal == sprites.PaletteNone {
		return src
	}
	fr, fg, fb, fa := paletteScale(pal)
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		// Pixels are alpha-premultiplied, so the alpha fade scales every
		// channel.
		dst.Pix[i+0] = uint8(float64(src.Pix[i+0]) * fr * fa)
		dst.Pix[i+1] = uint8(float64(src.Pix[i+1]) * fg * fa)
		dst.Pix[i+2] = uint8(float64(src.Pix[i+2]) * fb * fa)
		dst.Pix[i+3] = uint8(float64(src.Pix[i+3]) * fa)
	}
	return dst
}

// SampleColour picks a representative colour from a sprite bitmap, used by
// the terminal painter to pick a cell colour. Returns false for fully
// transparent bitmaps.
func SampleColour(img *image.RGBA) (color.RGBA, bool) {
	b := img.Bounds()
	c := img.RGBAAt((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
	if c.A != 0 {
		return c, true
	}
	// Fall back to scanning for any opaque pixel.
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c = img.RGBAAt(x, y); c.A != 0 {
				return c, true
			}
		}
	}
	return color.RGBA{}, false
}
