package hud

// FloatsPerVertex is the HUD vertex layout: position(2) + uv(2) + color(4).
const FloatsPerVertex = 8

// DrawList holds one frame of HUD triangles in screen pixels, origin top
// left. Solid quads are drawn before glyphs.
type DrawList struct {
	Solid  []float32
	Glyphs []float32

	font *Font
}

// NewDrawList creates an empty list that lays text out with f.
func NewDrawList(f *Font) *DrawList {
	return &DrawList{
		Solid:  make([]float32, 0, 4096),
		Glyphs: make([]float32, 0, 4096),
		font:   f,
	}
}

// Reset empties the list, keeping its storage.
func (d *DrawList) Reset() {
	d.Solid = d.Solid[:0]
	d.Glyphs = d.Glyphs[:0]
}

// Empty reports whether nothing was queued.
func (d *DrawList) Empty() bool {
	return len(d.Solid) == 0 && len(d.Glyphs) == 0
}

// Font returns the atlas used for text.
func (d *DrawList) Font() *Font {
	return d.font
}

// Rect queues a filled rectangle.
func (d *DrawList) Rect(r Rect, c Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	d.Solid = appendQuad(d.Solid, r, 0, 0, 0, 0, c)
}

// Outline queues a rectangle border of the given thickness.
func (d *DrawList) Outline(r Rect, thickness float32, c Color) {
	d.Rect(Rect{r.X, r.Y, r.W, thickness}, c)
	d.Rect(Rect{r.X, r.Y + r.H - thickness, r.W, thickness}, c)
	d.Rect(Rect{r.X, r.Y + thickness, thickness, r.H - 2*thickness}, c)
	d.Rect(Rect{r.X + r.W - thickness, r.Y + thickness, thickness, r.H - 2*thickness}, c)
}

// Panel queues a background with a one pixel border.
func (d *DrawList) Panel(r Rect, bg, border Color) {
	d.Rect(r, bg)
	d.Outline(r, 1, border)
}

// Text queues a line of text with its top-left corner at (x, y).
func (d *DrawList) Text(x, y float32, text string, scale float32, c Color) {
	gw, gh := d.font.GlyphSize()
	w, h := float32(gw)*scale, float32(gh)*scale
	for _, ch := range text {
		if ch != ' ' {
			u0, v0, u1, v1 := d.font.GlyphUV(ch)
			d.Glyphs = appendQuad(d.Glyphs, Rect{x, y, w, h}, u0, v0, u1, v1, c)
		}
		x += w
	}
}

func appendQuad(buf []float32, r Rect, u0, v0, u1, v1 float32, c Color) []float32 {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	return append(buf,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y0, u1, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,

		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y1, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
