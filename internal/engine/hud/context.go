// Package hud is an immediate-mode on-screen control panel. It produces a
// DrawList each frame and never touches GL itself.
package hud

import "github.com/chewxy/math32"

const (
	textScale  = 1
	padding    = 8
	spacing    = 4
	rowDefault = 22
)

// Pointer is the mouse state for one frame, in window pixels.
type Pointer struct {
	X, Y     float32
	Down     bool
	Pressed  bool
	Released bool
}

// Context lays widgets out top to bottom inside one panel at a time.
type Context struct {
	list    *DrawList
	pointer Pointer

	hot    string
	active string

	panel   Rect
	inPanel bool
	cursorX float32
	cursorY float32
	rowH    float32

	width, height float32
}

// NewContext creates a context that draws text with f.
func NewContext(f *Font) *Context {
	return &Context{list: NewDrawList(f)}
}

// Begin starts a frame for a screen of the given size.
func (c *Context) Begin(p Pointer, width, height int) {
	c.list.Reset()
	c.pointer = p
	c.hot = ""
	c.width, c.height = float32(width), float32(height)
	if !p.Down {
		c.active = ""
	}
}

// End finishes the frame and returns what to draw.
func (c *Context) End() *DrawList {
	c.inPanel = false
	return c.list
}

// ScreenSize returns the size passed to Begin.
func (c *Context) ScreenSize() (float32, float32) {
	return c.width, c.height
}

// Hovered reports whether the pointer is over any panel drawn this frame.
func (c *Context) Hovered() bool {
	return c.hot != ""
}

// BeginPanel starts a titled panel.
func (c *Context) BeginPanel(id string, r Rect, title string) {
	c.panel = r
	c.inPanel = true
	c.list.Panel(r, ColorPanelBg, ColorPanelBorder)

	_, th := c.list.font.Measure(title, textScale)
	c.list.Rect(Rect{r.X + 1, r.Y + 1, r.W - 2, th + 6}, ColorButtonNormal)
	c.list.Text(r.X+padding, r.Y+4, title, textScale, ColorText)

	c.cursorX = r.X + padding
	c.cursorY = r.Y + th + 6 + padding
	c.rowH = 0

	if r.Contains(c.pointer.X, c.pointer.Y) {
		c.hot = id
	}
}

// EndPanel closes the current panel.
func (c *Context) EndPanel() {
	c.inPanel = false
}

// Row starts a new row of the given height.
func (c *Context) Row(height float32) {
	if !c.inPanel {
		return
	}
	c.cursorX = c.panel.X + padding
	c.cursorY += c.rowH
	if c.rowH > 0 {
		c.cursorY += spacing
	}
	c.rowH = height
}

// place reserves width pixels on the current row.
func (c *Context) place(width float32) Rect {
	if c.rowH == 0 {
		c.Row(rowDefault)
	}
	if width <= 0 {
		width = c.panel.X + c.panel.W - padding - c.cursorX
	}
	r := Rect{c.cursorX, c.cursorY, width, c.rowH}
	c.cursorX += width + spacing
	return r
}

// Button draws a button and reports a click. Clicks fire on press.
func (c *Context) Button(id string, width float32, label string) bool {
	if !c.inPanel {
		return false
	}
	r := c.place(width)

	hovered := r.Contains(c.pointer.X, c.pointer.Y)
	clicked := false
	if hovered && c.pointer.Pressed && c.active == "" {
		c.active = id
		clicked = true
	}

	color := ColorButtonNormal
	switch {
	case c.active == id:
		color = ColorButtonActive
	case hovered:
		color = ColorButtonHover
	}
	c.list.Rect(r, color)
	c.list.Outline(r, 1, ColorPanelBorder)

	tw, th := c.list.font.Measure(label, textScale)
	c.list.Text(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, label, textScale, ColorText)
	return clicked
}

// Label draws text on the current row.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws text in a given color.
func (c *Context) LabelColored(text string, color Color) {
	if !c.inPanel {
		return
	}
	tw, th := c.list.font.Measure(text, textScale)
	r := c.place(tw)
	c.list.Text(r.X, r.Y+(r.H-th)/2, text, textScale, color)
}

// Slider draws a horizontal slider over [lo, hi] snapped to step and
// returns the possibly dragged value and whether it changed.
func (c *Context) Slider(id string, width, value, lo, hi, step float32) (float32, bool) {
	if !c.inPanel || hi <= lo {
		return value, false
	}
	r := c.place(width)

	hovered := r.Contains(c.pointer.X, c.pointer.Y)
	if hovered && c.pointer.Pressed && c.active == "" {
		c.active = id
	}

	next := value
	if c.active == id && c.pointer.Down {
		next = sliderValue(r, c.pointer.X, lo, hi, step)
	}

	c.list.Rect(r, ColorTrack)
	c.list.Outline(r, 1, ColorPanelBorder)
	t := (next - lo) / (hi - lo)
	knob := float32(8)
	kx := r.X + t*(r.W-knob)
	c.list.Rect(Rect{r.X + 1, r.Y + r.H/2 - 1, kx - r.X, 2}, ColorHighlight)
	knobColor := ColorButtonHover
	if c.active == id {
		knobColor = ColorHighlight
	}
	c.list.Rect(Rect{kx, r.Y + 1, knob, r.H - 2}, knobColor)

	return next, next != value
}

func sliderValue(r Rect, x, lo, hi, step float32) float32 {
	t := (x - r.X) / r.W
	t = math32.Max(0, math32.Min(1, t))
	v := lo + t*(hi-lo)
	if step > 0 {
		v = lo + math32.Round((v-lo)/step)*step
	}
	return math32.Max(lo, math32.Min(hi, v))
}

// ProgressBar draws a bar filled to fraction with a centered label.
func (c *Context) ProgressBar(fraction, width float32, label string) {
	if !c.inPanel {
		return
	}
	r := c.place(width)
	fraction = math32.Max(0, math32.Min(1, fraction))

	c.list.Rect(r, ColorTrack)
	c.list.Outline(r, 1, ColorPanelBorder)
	if fill := (r.W - 2) * fraction; fill > 0 {
		c.list.Rect(Rect{r.X + 1, r.Y + 1, fill, r.H - 2}, ColorHighlight)
	}
	if label != "" {
		tw, th := c.list.font.Measure(label, textScale)
		c.list.Text(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, label, textScale, ColorText)
	}
}
