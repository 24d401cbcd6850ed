package batch

import (
	"sort"

	"github.com/Faultbox/trackview/internal/world"
	"github.com/Faultbox/trackview/pkg/math"
)

// FaceDepth returns the sort key of a translucent face: the negated square of
// the distance from camera to the face's plane, measured along its normal.
// Faces with fewer than three vertices get 0.
func FaceDepth(mesh *world.Mesh, face int, camera math.Vec3) float32 {
	f := mesh.Faces[face]
	if len(f.Vertices) < 3 {
		return 0
	}
	v0 := mesh.Vertices[f.Vertices[0]].Position
	v1 := mesh.Vertices[f.Vertices[1]].Position
	v2 := mesh.Vertices[f.Vertices[2]].Position

	n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	t := n.Dot(v0.Sub(camera))
	return -(t * t)
}

// DepthSorter orders translucent lists back to front. It keeps its scratch
// buffer between frames.
type DepthSorter struct {
	depths []float32
}

// byDepth moves the depth keys and the faces together.
type byDepth struct {
	faces  []FaceRef
	depths []float32
}

func (b byDepth) Len() int           { return len(b.faces) }
func (b byDepth) Less(i, j int) bool { return b.depths[i] < b.depths[j] }
func (b byDepth) Swap(i, j int) {
	b.faces[i], b.faces[j] = b.faces[j], b.faces[i]
	b.depths[i], b.depths[j] = b.depths[j], b.depths[i]
}

// Sort stable-sorts the dense list kind by ascending FaceDepth relative to
// camera and repairs every moved face's slot back-reference.
func (s *DepthSorter) Sort(r *Registry, kind ListKind, camera math.Vec3) {
	list := r.dense(kind)
	faces := list.faces
	if len(faces) < 2 {
		if len(faces) == 1 {
			mesh, face := r.Resolve(faces[0])
			faces[0].Depth = FaceDepth(mesh, face, camera)
		}
		return
	}

	if cap(s.depths) < len(faces) {
		s.depths = make([]float32, len(faces), 2*len(faces))
	}
	s.depths = s.depths[:len(faces)]
	for i, ref := range faces {
		mesh, face := r.Resolve(ref)
		s.depths[i] = FaceDepth(mesh, face, camera)
	}

	sort.Stable(byDepth{faces: faces, depths: s.depths})

	for i := range faces {
		faces[i].Depth = s.depths[i]
		r.setSlot(faces[i].Entry, faces[i].Face, i)
	}
}
