// Package world holds the object catalog: placed scenery objects, their meshes
// and materials, and the track they are positioned along.
package world

import "github.com/Faultbox/trackview/pkg/math"

// BlendMode selects how a material is composited.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// String returns the YAML name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	default:
		return "normal"
	}
}

// Material holds the properties the batch registry classifies faces by.
type Material struct {
	Color           [4]uint8 // RGBA
	Blend           BlendMode
	GlowAttenuation uint16
}

// Opaque reports whether the material's alpha channel is fully opaque.
func (m Material) Opaque() bool {
	return m.Color[3] == 255
}

// FaceFlags describes the primitive type of a face and its sidedness.
type FaceFlags uint8

const (
	FacePolygon   FaceFlags = 0
	FaceTriangles FaceFlags = 1
	FaceQuads     FaceFlags = 2
	FaceTypeMask  FaceFlags = 3
	FaceTwoSided  FaceFlags = 4
)

// Type returns the primitive type bits.
func (f FaceFlags) Type() FaceFlags {
	return f & FaceTypeMask
}

// Vertex is a single mesh vertex in world space.
type Vertex struct {
	Position math.Vec3
}

// Face references mesh vertices by index.
type Face struct {
	Vertices []int
	Material int
	Flags    FaceFlags
}

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min math.Vec3
	Max math.Vec3
}

// Union returns the smallest box that contains both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Mesh is the renderable geometry of a placed object.
type Mesh struct {
	Vertices  []Vertex
	Faces     []Face
	Materials []Material
	Bounds    *BoundingBox // optional mesh-level box
}

// FaceMaterial returns the material of face i, or an opaque white material when
// the face references none.
func (m *Mesh) FaceMaterial(i int) Material {
	idx := m.Faces[i].Material
	if idx < 0 || idx >= len(m.Materials) {
		return Material{Color: [4]uint8{255, 255, 255, 255}}
	}
	return m.Materials[idx]
}

// PlacedObject is one entry of the catalog.
type PlacedObject struct {
	Mesh *Mesh

	// Track interval over which the object may be visible. Unused when Dynamic.
	StartingDistance float64
	EndingDistance   float64

	GroupIndex int
	Dynamic    bool
	Overlay    bool // screen-space overlay, implies Dynamic

	// RendererIndex is 0 while the object is inactive, otherwise 1 + its
	// index into the batch registry's active entries.
	RendererIndex int
}

// Catalog is the flat array of placed objects for a session.
type Catalog struct {
	Track   *Track
	Objects []PlacedObject
}

// StaticCount returns the number of non-dynamic objects.
func (c *Catalog) StaticCount() int {
	n := 0
	for i := range c.Objects {
		if !c.Objects[i].Dynamic {
			n++
		}
	}
	return n
}

// Reset marks every object inactive.
func (c *Catalog) Reset() {
	for i := range c.Objects {
		c.Objects[i].RendererIndex = 0
	}
}
