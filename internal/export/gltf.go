// Package export writes the composed vessel to glTF 2.0.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
	"github.com/Faultbox/corevessel/internal/engine/scene"
	"github.com/Faultbox/corevessel/internal/logger"
)

// MeshSource resolves scene mesh IDs to CPU geometry. scene.MeshSet
// implements it.
type MeshSource interface {
	Mesh(id scene.MeshID) (*mesh.Mesh, bool)
}

// Document converts a composed frame into a glTF document with one node
// per object. Meshes and materials shared between objects are written once.
func Document(f scene.Frame, meshes MeshSource, lib *material.Library) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "corevessel"

	meshIndex := make(map[scene.MeshID]map[material.Name]int)
	matIndex := make(map[material.Name]int)

	for _, o := range f.Objects {
		mi, ok := matIndex[o.Material]
		if !ok {
			m, err := lib.Get(o.Material)
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", o.Name, err)
			}
			mi = len(doc.Materials)
			doc.Materials = append(doc.Materials, gltfMaterial(m))
			matIndex[o.Material] = mi
		}

		// glTF binds materials per primitive, so a mesh reused with two
		// materials becomes two glTF meshes.
		byMat := meshIndex[o.Mesh]
		if byMat == nil {
			byMat = make(map[material.Name]int)
			meshIndex[o.Mesh] = byMat
		}
		gi, ok := byMat[o.Material]
		if !ok {
			m, ok := meshes.Mesh(o.Mesh)
			if !ok {
				return nil, fmt.Errorf("object %s: no mesh %s", o.Name, o.Mesh)
			}
			gi = writeMesh(doc, m, o.Mesh.String(), mi)
			byMat[o.Material] = gi
		}

		node := &gltf.Node{Name: o.Name, Mesh: gltf.Index(gi)}
		for i, v := range o.Model {
			node.Matrix[i] = float64(v)
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	logger.Debug("gltf document built",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("materials", len(doc.Materials)))
	return doc, nil
}

func writeMesh(doc *gltf.Document, m *mesh.Mesh, name string, mat int) int {
	n := len(m.Vertices)
	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	uvs := make([][2]float32, n)
	for i, v := range m.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = v.TexCoord
	}

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
		},
		Material: gltf.Index(mat),
		Mode:     gltf.PrimitiveTriangles,
	}
	if m.Indexed() {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, m.Indices))
	} else {
		prim.Mode = gltf.PrimitiveTriangleStrip
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1
}

// gltfMaterial maps Blinn-Phong onto metallic-roughness. Roughness follows
// the usual shininess conversion sqrt(2 / (n + 2)).
func gltfMaterial(m material.Material) *gltf.Material {
	d := m.Diffuse
	metallic := 0.0
	if m.Name == material.MetalCollar || m.Name == material.MetalCap {
		metallic = 1
	}
	gm := &gltf.Material{
		Name: string(m.Name),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(d[0]), float64(d[1]), float64(d[2]), float64(m.Alpha)},
			MetallicFactor:  gltf.Float(metallic),
			RoughnessFactor: gltf.Float(float64(math32.Sqrt(2 / (m.Shininess + 2)))),
		},
		AlphaMode: gltf.AlphaOpaque,
		// The viewer draws without face culling.
		DoubleSided: true,
	}
	if m.Transparent() {
		gm.AlphaMode = gltf.AlphaBlend
	}
	return gm
}

// Save writes doc to path, binary for .glb and JSON otherwise.
func Save(doc *gltf.Document, path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
