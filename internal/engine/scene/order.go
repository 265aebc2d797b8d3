package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawOrder returns objects with every opaque object ahead of every
// transparent one. Opaque objects keep their relative order; transparent
// objects are sorted back to front by the view-space depth of their origin.
// The input slice is not modified.
func DrawOrder(objects []Object, view mgl32.Mat4) []Object {
	out := make([]Object, 0, len(objects))
	var blended []Object
	for _, o := range objects {
		if o.Transparent {
			blended = append(blended, o)
		} else {
			out = append(out, o)
		}
	}

	sort.SliceStable(blended, func(i, j int) bool {
		return viewDepth(blended[i], view) < viewDepth(blended[j], view)
	})
	return append(out, blended...)
}

// viewDepth is the eye-space z of the object's origin. The camera looks down
// -Z, so smaller values are farther away.
func viewDepth(o Object, view mgl32.Mat4) float32 {
	origin := o.Model.Col(3)
	return view.Mul4x1(origin)[2]
}
