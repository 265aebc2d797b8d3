package hud

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = 32
	lastGlyph    = 126
	atlasColumns = 16
)

// Font is a fixed-width glyph atlas rasterized from basicfont.Face7x13.
// Glyph coverage is stored in every channel of Image, so a shader may
// sample any of them.
type Font struct {
	Image *image.RGBA

	glyphW, glyphH int
}

// NewFont rasterizes printable ASCII into an atlas.
func NewFont() *Font {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height
	rows := (lastGlyph - firstGlyph + atlasColumns) / atlasColumns

	atlas := image.NewRGBA(image.Rect(0, 0, atlasColumns*gw, rows*gh))
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		col, row := glyphCell(rune(r))
		d.Dot = fixed.P(col*gw, row*gh+face.Ascent)
		d.DrawString(string(rune(r)))
	}

	return &Font{Image: atlas, glyphW: gw, glyphH: gh}
}

func glyphCell(r rune) (col, row int) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	return i % atlasColumns, i / atlasColumns
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GlyphUV returns the texture rectangle of r. Characters outside
// printable ASCII map to '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	col, row := glyphCell(r)
	b := f.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	u0 = float32(col*f.glyphW) / w
	v0 = float32(row*f.glyphH) / h
	u1 = float32((col+1)*f.glyphW) / w
	v1 = float32((row+1)*f.glyphH) / h
	return
}

// Measure returns the pixel size of a single line of text at scale.
func (f *Font) Measure(text string, scale float32) (float32, float32) {
	n := 0
	for range text {
		n++
	}
	return float32(n*f.glyphW) * scale, float32(f.glyphH) * scale
}
