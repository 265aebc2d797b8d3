package export

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/scene"
)

func buildFrame(t *testing.T) (scene.Frame, *scene.MeshSet, *Collector, *material.Library) {
	t.Helper()
	cfg := config.Default()
	c := NewCollector()
	meshes, err := scene.BuildMeshes(cfg.Scene, c)
	if err != nil {
		t.Fatal(err)
	}
	lib, err := material.NewLibrary(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := scene.NewState(cfg)
	f := scene.Compose(s, scene.PedestalTiers(cfg.Pedestal), lib, 16.0/9.0)
	return f, meshes, c, lib
}

func TestCollector(t *testing.T) {
	_, meshes, c, _ := buildFrame(t)
	if c.Live() != 8 {
		t.Fatalf("live = %d, want 8", c.Live())
	}
	meshes.Release()
	if c.Live() != 0 {
		t.Errorf("live after release = %d", c.Live())
	}
}

func TestDocument(t *testing.T) {
	f, meshes, _, lib := buildFrame(t)
	doc, err := Document(f, meshes, lib)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Nodes) != len(f.Objects) {
		t.Errorf("nodes = %d, want %d", len(doc.Nodes), len(f.Objects))
	}
	if len(doc.Scenes[0].Nodes) != len(f.Objects) {
		t.Errorf("scene nodes = %d", len(doc.Scenes[0].Nodes))
	}
	// the glass side is shared by the glass and both collars
	if len(doc.Meshes) != 9 {
		t.Errorf("meshes = %d, want 9", len(doc.Meshes))
	}
	if len(doc.Materials) != len(material.Names) {
		t.Errorf("materials = %d, want %d", len(doc.Materials), len(material.Names))
	}

	for _, m := range doc.Meshes {
		p := m.Primitives[0]
		switch m.Name {
		case scene.MeshCore.String():
			if p.Mode != gltf.PrimitiveTriangleStrip || p.Indices != nil {
				t.Errorf("core: mode %v indices %v, want strip without indices", p.Mode, p.Indices)
			}
		case scene.MeshShard.String():
			if p.Mode != gltf.PrimitiveTriangles || p.Indices == nil {
				t.Errorf("shard: mode %v, want indexed triangles", p.Mode)
			}
		}
	}

	last := doc.Nodes[len(doc.Nodes)-1]
	if last.Name != "glass" {
		t.Errorf("last node = %q, want glass", last.Name)
	}
	glass := doc.Materials[*doc.Meshes[*last.Mesh].Primitives[0].Material]
	if glass.AlphaMode != gltf.AlphaBlend {
		t.Errorf("glass alpha mode = %v", glass.AlphaMode)
	}
}

func TestDocumentMissingMesh(t *testing.T) {
	f, meshes, _, lib := buildFrame(t)
	meshes.Core.Release()
	if _, err := Document(f, meshes, lib); err == nil {
		t.Error("expected error for released core mesh")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	f, meshes, _, lib := buildFrame(t)
	doc, err := Document(f, meshes, lib)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"vessel.glb", "vessel.gltf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(doc, path); err != nil {
				t.Fatal(err)
			}
			back, err := gltf.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(back.Nodes) != len(doc.Nodes) {
				t.Fatalf("nodes = %d, want %d", len(back.Nodes), len(doc.Nodes))
			}

			core, _ := meshes.Mesh(scene.MeshCore)
			for _, m := range back.Meshes {
				if m.Name != scene.MeshCore.String() {
					continue
				}
				acc := back.Accessors[m.Primitives[0].Attributes[gltf.POSITION]]
				pos, err := modeler.ReadPosition(back, acc, nil)
				if err != nil {
					t.Fatal(err)
				}
				if len(pos) != core.VertexCount() {
					t.Errorf("core positions = %d, want %d", len(pos), core.VertexCount())
				}
			}
		})
	}
}
