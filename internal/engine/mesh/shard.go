package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShardFaceCount is the number of triangles in a shard.
const ShardFaceCount = 8

// Shard builds an octahedron stretched along Y: apexes at (0, +-height, 0)
// and an equatorial square at (+-radius, 0, 0), (0, 0, +-radius).
//
// Faces are flat shaded. Every face owns three vertices carrying the same
// face normal, so nothing is shared between faces and the index buffer is
// simply 0..23.
func Shard(height, radius float32) (*Mesh, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("shard height %v radius %v: %w", height, radius, ErrInvalidParameter)
	}

	top := mgl32.Vec3{0, height, 0}
	bottom := mgl32.Vec3{0, -height, 0}
	px := mgl32.Vec3{radius, 0, 0}
	nx := mgl32.Vec3{-radius, 0, 0}
	pz := mgl32.Vec3{0, 0, radius}
	nz := mgl32.Vec3{0, 0, -radius}

	faces := [ShardFaceCount][3]mgl32.Vec3{
		// Top pyramid
		{top, pz, px},
		{top, nx, pz},
		{top, nz, nx},
		{top, px, nz},
		// Bottom pyramid
		{bottom, px, pz},
		{bottom, pz, nx},
		{bottom, nx, nz},
		{bottom, nz, px},
	}

	vertices := make([]Vertex, 0, 3*ShardFaceCount)
	indices := make([]uint32, 0, 3*ShardFaceCount)

	for _, f := range faces {
		n := FaceNormal(f[0], f[1], f[2])
		base := uint32(len(vertices))
		for _, p := range f {
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   n,
				TexCoord: shardUV(p, height),
			})
		}
		indices = append(indices, base, base+1, base+2)
	}

	return &Mesh{
		Name:     "shard",
		Vertices: vertices,
		Indices:  indices,
		Topology: IndexedTriangles,
		Bounds:   computeBounds(vertices),
	}, nil
}

// FaceNormal returns the unit normal of the triangle (v0, v1, v2) using the
// right-hand rule on its edges. Degenerate triangles yield the zero vector.
func FaceNormal(v0, v1, v2 mgl32.Vec3) mgl32.Vec3 {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// shardUV is a cylindrical projection around Y.
func shardUV(p mgl32.Vec3, height float32) [2]float32 {
	u := 0.5 + math32.Atan2(p[2], p[0])/(2*math32.Pi)
	v := 0.5 + p[1]/(2*height)
	return [2]float32{u, v}
}
