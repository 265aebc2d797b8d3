package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Sphere builds a UV sphere as a single non-indexed triangle strip.
//
// Each stack emits a (top, bottom) vertex pair for slices+1 longitudes so the
// seam at phi = 2*pi duplicates phi = 0 and the UVs wrap cleanly. Stacks are
// joined by repeating the previous vertex once; because the seam vertices
// coincide, the joining triangles have zero area. A single stack runs pole to
// pole and has no area at all, so at least two are required.
func Sphere(radius float32, stacks, slices int) (*Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, ErrInvalidParameter)
	}
	if stacks < 2 {
		return nil, fmt.Errorf("sphere stacks %d (min 2): %w", stacks, ErrInvalidParameter)
	}
	if slices < 3 {
		return nil, fmt.Errorf("sphere slices %d (min 3): %w", slices, ErrInvalidParameter)
	}

	vertices := make([]Vertex, 0, SphereVertexCount(stacks, slices))

	for i := 0; i < stacks; i++ {
		theta1 := float32(i) * math32.Pi / float32(stacks)
		theta2 := float32(i+1) * math32.Pi / float32(stacks)

		if i > 0 {
			vertices = append(vertices, vertices[len(vertices)-1])
		}

		for j := 0; j <= slices; j++ {
			phi := float32(j) * 2 * math32.Pi / float32(slices)
			u := float32(j) / float32(slices)

			vertices = append(vertices,
				sphereVertex(radius, theta1, phi, u, float32(i)/float32(stacks)),
				sphereVertex(radius, theta2, phi, u, float32(i+1)/float32(stacks)),
			)
		}
	}

	return &Mesh{
		Name:     fmt.Sprintf("sphere-%dx%d", stacks, slices),
		Vertices: vertices,
		Topology: TriangleStrip,
		Bounds:   computeBounds(vertices),
	}, nil
}

// SphereVertexCount returns the strip length Sphere produces.
func SphereVertexCount(stacks, slices int) int {
	if stacks < 1 {
		return 0
	}
	return stacks*2*(slices+1) + (stacks - 1)
}

func sphereVertex(radius, theta, phi, u, v float32) Vertex {
	sinT, cosT := math32.Sin(theta), math32.Cos(theta)
	sinP, cosP := math32.Sin(phi), math32.Cos(phi)

	// Unit direction doubles as the normal.
	n := [3]float32{sinT * cosP, cosT, sinT * sinP}
	return Vertex{
		Position: [3]float32{radius * n[0], radius * n[1], radius * n[2]},
		Normal:   n,
		TexCoord: [2]float32{u, v},
	}
}
