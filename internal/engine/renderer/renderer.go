// Package renderer draws the vessel with OpenGL 4.1 core. It implements
// scene.Backend.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
	"github.com/Faultbox/corevessel/internal/engine/renderer/shaders"
	"github.com/Faultbox/corevessel/internal/engine/scene"
	"github.com/Faultbox/corevessel/internal/engine/shader"
	"github.com/Faultbox/corevessel/internal/engine/texture"
	"github.com/Faultbox/corevessel/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Renderer owns the vessel program and every uploaded mesh.
type Renderer struct {
	config  Config
	program *shader.Program

	meshes   map[scene.MeshHandle]*gpuMesh
	next     scene.MeshHandle
	textures []texture.Handle

	// view of the current frame, for the normal matrix.
	view mgl32.Mat4

	stats FrameStats
}

// FrameStats counts the work of the last frame.
type FrameStats struct {
	DrawCalls int
	Triangles int
}

var _ scene.Backend = (*Renderer)(nil)

// New initializes GL and compiles the vessel program.
// Must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.New("vessel", shaders.VesselVertexShader, shaders.VesselFragmentShader)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		config:  cfg,
		program: program,
		meshes:  make(map[scene.MeshHandle]*gpuMesh),
		view:    mgl32.Ident4(),
	}
	logger.Debug("shader program created", zap.Uint32("program", program.ID))
	return r, nil
}

// Close frees every GL object the renderer owns.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for h, m := range r.meshes {
		m.delete()
		delete(r.meshes, h)
	}
	for _, t := range r.textures {
		texture.Delete(t)
	}
	r.textures = nil
	r.program.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport's width/height ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Clear starts a new frame.
func (r *Renderer) Clear() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Upload implements scene.Backend.
func (r *Renderer) Upload(m *mesh.Mesh) (scene.MeshHandle, error) {
	gm, err := uploadMesh(m)
	if err != nil {
		return 0, err
	}
	r.next++
	r.meshes[r.next] = gm
	logger.Debug("mesh uploaded",
		zap.String("mesh", m.Name),
		zap.Stringer("topology", m.Topology),
		zap.Int("vertices", m.VertexCount()),
		zap.Uint32("handle", uint32(r.next)))
	return r.next, nil
}

// Release implements scene.Backend.
func (r *Renderer) Release(h scene.MeshHandle) {
	gm, ok := r.meshes[h]
	if !ok {
		return
	}
	gm.delete()
	delete(r.meshes, h)
}

// BeginFrame implements scene.Backend.
func (r *Renderer) BeginFrame(u scene.FrameUniforms) {
	r.view = u.View
	r.stats = FrameStats{}

	r.program.Use()
	r.program.SetMat4("uView", u.View)
	r.program.SetMat4("uProjection", u.Projection)
	r.program.SetVec3("uLightPos", u.LightPos)
	r.program.SetInt("uTexture", 0)
}

// Draw implements scene.Backend.
func (r *Renderer) Draw(h scene.MeshHandle, mat material.Material, model mgl32.Mat4) {
	gm, ok := r.meshes[h]
	if !ok {
		logger.Warn("draw with unknown mesh", zap.Uint32("handle", uint32(h)))
		return
	}

	p := r.program
	p.SetMat4("uModel", model)
	p.SetMat3("uNormalMatrix", scene.NormalMatrix(r.view, model))
	p.SetVec4("uAmbient", mat.Ambient)
	p.SetVec4("uDiffuse", mat.Diffuse)
	p.SetVec4("uSpecular", mat.Specular)
	p.SetFloat("uShininess", mat.Shininess)
	p.SetFloat("uAlpha", mat.Alpha)
	p.SetBool("uUseTexture", mat.UseTexture)

	if mat.UseTexture {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, uint32(mat.Texture))
	}

	if mat.Transparent() {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
	}

	gm.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += gm.triangles()

	if mat.Transparent() {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	if mat.UseTexture {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

// UploadTexture uploads a decoded image. The renderer frees it on Close.
func (r *Renderer) UploadTexture(img *image.RGBA) texture.Handle {
	h := texture.Upload(img)
	r.textures = append(r.textures, h)
	return h
}

// ReadPixels returns the RGBA back buffer, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
