// Package material holds the fixed Blinn-Phong surface table of the vessel.
package material

import (
	"errors"
	"fmt"

	"github.com/Faultbox/corevessel/internal/engine/texture"
)

// ErrUnknown is returned for a material name that is not in the table.
var ErrUnknown = errors.New("unknown material")

// Name identifies an entry in the table.
type Name string

// Material names.
const (
	Core        Name = "core"
	Shards      Name = "shards"
	MetalCollar Name = "metal-collar"
	MetalCap    Name = "metal-cap"
	Glass       Name = "glass"
)

// Names lists every material in table order.
var Names = []Name{Core, Shards, MetalCollar, MetalCap, Glass}

// Material is the per-draw surface description consumed by the shader.
type Material struct {
	Name       Name
	Ambient    [4]float32
	Diffuse    [4]float32
	Specular   [4]float32
	Shininess  float32
	Alpha      float32
	UseTexture bool
	Texture    texture.Handle
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Alpha < 1
}

// TextureSlot names the texture a textured material samples.
type TextureSlot string

const (
	NoTexture    TextureSlot = ""
	GlassTexture TextureSlot = "glass"
	MetalTexture TextureSlot = "metal"
)

type entry struct {
	ambient, diffuse, specular [4]float32
	shininess                  float32
	alpha                      float32
	slot                       TextureSlot
}

var table = map[Name]entry{
	Core: {
		ambient:   [4]float32{0.2, 0.0, 0.0, 1},
		diffuse:   [4]float32{1.0, 0.4, 0.0, 1},
		specular:  [4]float32{1, 1, 1, 1},
		shininess: 20,
		alpha:     1,
	},
	Shards: {
		ambient:   [4]float32{0.15, 0.05, 0.2, 1},
		diffuse:   [4]float32{0.6, 0.2, 0.8, 1},
		specular:  [4]float32{1, 1, 1, 1},
		shininess: 40,
		alpha:     1,
	},
	MetalCollar: {
		ambient:   [4]float32{0.3, 0.3, 0.3, 1},
		diffuse:   [4]float32{0.8, 0.8, 0.8, 1},
		specular:  [4]float32{0.6, 0.6, 0.6, 1},
		shininess: 16,
		alpha:     1,
		slot:      MetalTexture,
	},
	MetalCap: {
		ambient:   [4]float32{0.18, 0.22, 0.28, 1},
		diffuse:   [4]float32{0.30, 0.36, 0.42, 1},
		specular:  [4]float32{0.60, 0.68, 0.75, 1},
		shininess: 32,
		alpha:     1,
	},
	Glass: {
		ambient:   [4]float32{0.1, 0.1, 0.15, 1},
		diffuse:   [4]float32{0.3, 0.3, 0.4, 1},
		specular:  [4]float32{1, 1, 1, 1},
		shininess: 32,
		alpha:     0.35,
		slot:      GlassTexture,
	},
}

// Slot returns the texture slot a material samples, or NoTexture.
func Slot(name Name) (TextureSlot, error) {
	e, ok := table[name]
	if !ok {
		return NoTexture, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
	return e.slot, nil
}

// For returns the material called name bound to tex. Textured entries given
// a zero handle come back untextured.
func For(name Name, tex texture.Handle) (Material, error) {
	e, ok := table[name]
	if !ok {
		return Material{}, fmt.Errorf("%q: %w", name, ErrUnknown)
	}

	m := Material{
		Name:      name,
		Ambient:   e.ambient,
		Diffuse:   e.diffuse,
		Specular:  e.specular,
		Shininess: e.shininess,
		Alpha:     e.alpha,
	}
	if e.slot != NoTexture && tex != 0 {
		m.UseTexture = true
		m.Texture = tex
	}
	m.Diffuse[3] = e.alpha
	return m, nil
}

// Library resolves every material once textures are known.
type Library struct {
	materials map[Name]Material
}

// NewLibrary builds the table against the given texture handles. Missing
// slots leave their materials untextured.
func NewLibrary(textures map[TextureSlot]texture.Handle) (*Library, error) {
	lib := &Library{materials: make(map[Name]Material, len(table))}
	for _, name := range Names {
		slot, err := Slot(name)
		if err != nil {
			return nil, err
		}
		m, err := For(name, textures[slot])
		if err != nil {
			return nil, err
		}
		lib.materials[name] = m
	}
	return lib, nil
}

// Get returns the resolved material.
func (l *Library) Get(name Name) (Material, error) {
	m, ok := l.materials[name]
	if !ok {
		return Material{}, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
	return m, nil
}
