package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Facing selects which way a tube's side normals point.
type Facing int

const (
	// Inward normals light the inside of the glass tube.
	Inward Facing = iota
	// Outward normals light a solid viewed from outside (pedestal riser).
	Outward
)

// CylinderSet is the unit cylinder (radius 1, half-height 1) split into the
// side shell and its two end-cap disks. Callers size it with the model
// transform.
type CylinderSet struct {
	Side      *Mesh
	BottomCap *Mesh
	TopCap    *Mesh
}

// Cylinder builds the inward-facing glass shell and its caps. The bottom
// cap sits at y=-1 with its normal pointing up, the top cap at y=+1 pointing
// down, so both face the inside of the vessel.
func Cylinder(slices int) (*CylinderSet, error) {
	side, err := Tube(slices, Inward)
	if err != nil {
		return nil, err
	}
	bottom, err := Disk(-1, 1, slices)
	if err != nil {
		return nil, err
	}
	top, err := Disk(1, -1, slices)
	if err != nil {
		return nil, err
	}
	return &CylinderSet{Side: side, BottomCap: bottom, TopCap: top}, nil
}

// Tube builds the open side shell of the unit cylinder. Only the normals
// depend on facing; triangle winding is the same for both.
func Tube(slices int, facing Facing) (*Mesh, error) {
	if slices < 3 {
		return nil, fmt.Errorf("cylinder slices %d (min 3): %w", slices, ErrInvalidParameter)
	}

	sign := float32(-1)
	if facing == Outward {
		sign = 1
	}

	vertices := make([]Vertex, 0, 2*(slices+1))
	for i := 0; i <= slices; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(slices)
		c, s := math32.Cos(theta), math32.Sin(theta)
		n := [3]float32{sign * c, 0, sign * s}
		u := float32(i) / float32(slices)

		vertices = append(vertices,
			Vertex{Position: [3]float32{c, -1, s}, Normal: n, TexCoord: [2]float32{u, 0}},
			Vertex{Position: [3]float32{c, 1, s}, Normal: n, TexCoord: [2]float32{u, 1}},
		)
	}

	indices := make([]uint32, 0, 6*slices)
	for j := 0; j < slices; j++ {
		i0 := uint32(2 * j)
		i1, i2, i3 := i0+1, i0+2, i0+3
		indices = append(indices, i0, i1, i2, i1, i3, i2)
	}

	name := "tube-inward"
	if facing == Outward {
		name = "tube-outward"
	}
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Topology: IndexedTriangles,
		Bounds:   computeBounds(vertices),
	}, nil
}

// Disk builds a flat fan at height y whose vertices all share the normal
// (0, normalY, 0). The fan is wound (center, i, i+1) when normalY > 0 and
// (center, i+1, i) when normalY < 0, so a disk's winding always relates to
// its declared normal the same way under one front-face convention.
func Disk(y, normalY float32, slices int) (*Mesh, error) {
	if slices < 3 {
		return nil, fmt.Errorf("disk slices %d (min 3): %w", slices, ErrInvalidParameter)
	}
	if normalY == 0 {
		return nil, fmt.Errorf("disk normal y must be non-zero: %w", ErrInvalidParameter)
	}

	n := [3]float32{0, normalY, 0}
	vertices := make([]Vertex, 0, slices+2)
	vertices = append(vertices, Vertex{
		Position: [3]float32{0, y, 0},
		Normal:   n,
		TexCoord: [2]float32{0.5, 0.5},
	})
	for k := 0; k <= slices; k++ {
		angle := 2 * math32.Pi * float32(k) / float32(slices)
		cx, cz := math32.Cos(angle), math32.Sin(angle)
		vertices = append(vertices, Vertex{
			Position: [3]float32{cx, y, cz},
			Normal:   n,
			TexCoord: [2]float32{0.5 + 0.5*cx, 0.5 + 0.5*cz},
		})
	}

	indices := make([]uint32, 0, 3*slices)
	for t := 0; t < slices; t++ {
		v1, v2 := uint32(t+1), uint32(t+2)
		if normalY > 0 {
			indices = append(indices, 0, v1, v2)
		} else {
			indices = append(indices, 0, v2, v1)
		}
	}

	return &Mesh{
		Name:     fmt.Sprintf("disk(y=%g,n=%g)", y, normalY),
		Vertices: vertices,
		Indices:  indices,
		Topology: IndexedTriangles,
		Bounds:   computeBounds(vertices),
	}, nil
}
