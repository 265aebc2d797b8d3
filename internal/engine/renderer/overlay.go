package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/renderer/shaders"
	"github.com/Faultbox/corevessel/internal/engine/shader"
)

// Overlay draws HUD draw lists on top of the frame.
type Overlay struct {
	program  *shader.Program
	vao, vbo uint32
	atlas    uint32
}

// NewOverlay compiles the HUD program and uploads the font atlas.
func NewOverlay(font *hud.Font) (*Overlay, error) {
	program, err := shader.New("hud", shaders.HUDVertexShader, shaders.HUDFragmentShader)
	if err != nil {
		return nil, err
	}
	o := &Overlay{program: program}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)

	stride := int32(hud.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	// Nearest filtering keeps the bitmap font crisp.
	img := font.Image
	gl.GenTextures(1, &o.atlas)
	gl.BindTexture(gl.TEXTURE_2D, o.atlas)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return o, nil
}

// Draw renders list over a width x height viewport.
func (o *Overlay) Draw(list *hud.DrawList, width, height int) {
	if list == nil || list.Empty() {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)

	o.program.Use()
	o.program.SetMat4("uProjection", mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
	o.program.SetInt("uAtlas", 0)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)

	o.program.SetBool("uGlyph", false)
	o.stream(list.Solid)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.atlas)
	o.program.SetBool("uGlyph", true)
	o.stream(list.Glyphs)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) stream(vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/hud.FloatsPerVertex))
}

// Close frees the overlay's GL objects.
func (o *Overlay) Close() {
	gl.DeleteTextures(1, &o.atlas)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	o.program.Delete()
}
