package world

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/trackview/pkg/math"
)

// Validation errors returned by Load and Parse.
var (
	ErrNoTrack         = errors.New("track needs at least two points")
	ErrUnknownMesh     = errors.New("unknown mesh")
	ErrBadInterval     = errors.New("starting distance after ending distance")
	ErrVertexRange     = errors.New("face vertex index out of range")
	ErrMaterialRange   = errors.New("face material index out of range")
	ErrUnknownBlend    = errors.New("unknown blend mode")
	ErrUnknownFaceType = errors.New("unknown face type")
	ErrUnknownKind     = errors.New("unknown object kind")
	ErrBadGroup        = errors.New("negative static group index")
)

type vec3 [3]float32

func (v vec3) toVec3() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

type fileMaterial struct {
	Color [4]uint8 `yaml:"color"`
	Blend string   `yaml:"blend"`
	Glow  uint16   `yaml:"glow"`
}

type fileFace struct {
	Vertices []int  `yaml:"vertices"`
	Material int    `yaml:"material"`
	Type     string `yaml:"type"`
	TwoSided bool   `yaml:"two_sided"`
}

type fileBounds struct {
	Min vec3 `yaml:"min"`
	Max vec3 `yaml:"max"`
}

type fileMesh struct {
	Name      string         `yaml:"name"`
	Vertices  []vec3         `yaml:"vertices"`
	Faces     []fileFace     `yaml:"faces"`
	Materials []fileMaterial `yaml:"materials"`
	Bounds    *fileBounds    `yaml:"bounds"`
}

type fileObject struct {
	Mesh   string  `yaml:"mesh"`
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Group  int     `yaml:"group"`
	Kind   string  `yaml:"kind"` // static (default), dynamic, overlay
	Offset vec3    `yaml:"offset"`
}

type file struct {
	Track struct {
		Points []vec3 `yaml:"points"`
	} `yaml:"track"`
	Meshes  []fileMesh   `yaml:"meshes"`
	Objects []fileObject `yaml:"objects"`
}

// Load reads a YAML world description from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing world %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML world description.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if len(f.Track.Points) < 2 {
		return nil, ErrNoTrack
	}
	points := make([]math.Vec3, len(f.Track.Points))
	for i, p := range f.Track.Points {
		points[i] = p.toVec3()
	}

	meshes := make(map[string]*Mesh, len(f.Meshes))
	for _, fm := range f.Meshes {
		mesh, err := buildMesh(fm)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", fm.Name, err)
		}
		meshes[fm.Name] = mesh
	}

	cat := &Catalog{Track: NewTrack(points)}
	for i, fo := range f.Objects {
		mesh, ok := meshes[fo.Mesh]
		if !ok {
			return nil, fmt.Errorf("object %d: %w %q", i, ErrUnknownMesh, fo.Mesh)
		}
		obj := PlacedObject{
			Mesh:             mesh.Translated(fo.Offset.toVec3()),
			StartingDistance: fo.Start,
			EndingDistance:   fo.End,
			GroupIndex:       fo.Group,
		}
		switch fo.Kind {
		case "", "static":
			if fo.Start > fo.End {
				return nil, fmt.Errorf("object %d: %w", i, ErrBadInterval)
			}
			if fo.Group < 0 {
				return nil, fmt.Errorf("object %d: %w (%d)", i, ErrBadGroup, fo.Group)
			}
		case "dynamic":
			obj.Dynamic = true
		case "overlay":
			obj.Dynamic = true
			obj.Overlay = true
		default:
			return nil, fmt.Errorf("object %d: %w %q", i, ErrUnknownKind, fo.Kind)
		}
		cat.Objects = append(cat.Objects, obj)
	}
	return cat, nil
}

func buildMesh(fm fileMesh) (*Mesh, error) {
	mesh := &Mesh{
		Vertices:  make([]Vertex, len(fm.Vertices)),
		Faces:     make([]Face, len(fm.Faces)),
		Materials: make([]Material, len(fm.Materials)),
	}
	for i, v := range fm.Vertices {
		mesh.Vertices[i] = Vertex{Position: v.toVec3()}
	}

	for i, m := range fm.Materials {
		mat := Material{Color: m.Color, GlowAttenuation: m.Glow}
		switch m.Blend {
		case "", "normal":
			mat.Blend = BlendNormal
		case "additive":
			mat.Blend = BlendAdditive
		default:
			return nil, fmt.Errorf("material %d: %w %q", i, ErrUnknownBlend, m.Blend)
		}
		mesh.Materials[i] = mat
	}

	for i, ff := range fm.Faces {
		face := Face{Vertices: ff.Vertices, Material: ff.Material}
		switch ff.Type {
		case "", "polygon":
			face.Flags = FacePolygon
		case "triangles":
			face.Flags = FaceTriangles
		case "quads":
			face.Flags = FaceQuads
		default:
			return nil, fmt.Errorf("face %d: %w %q", i, ErrUnknownFaceType, ff.Type)
		}
		if ff.TwoSided {
			face.Flags |= FaceTwoSided
		}
		for _, vi := range ff.Vertices {
			if vi < 0 || vi >= len(mesh.Vertices) {
				return nil, fmt.Errorf("face %d: %w (%d)", i, ErrVertexRange, vi)
			}
		}
		if len(mesh.Materials) > 0 && (ff.Material < 0 || ff.Material >= len(mesh.Materials)) {
			return nil, fmt.Errorf("face %d: %w (%d)", i, ErrMaterialRange, ff.Material)
		}
		mesh.Faces[i] = face
	}

	if fm.Bounds != nil {
		mesh.Bounds = &BoundingBox{Min: fm.Bounds.Min.toVec3(), Max: fm.Bounds.Max.toVec3()}
	}
	return mesh, nil
}

// Translated returns a copy of the mesh with every vertex and the bounds moved
// by offset. Faces and materials are shared with the original.
func (m *Mesh) Translated(offset math.Vec3) *Mesh {
	out := &Mesh{
		Vertices:  make([]Vertex, len(m.Vertices)),
		Faces:     m.Faces,
		Materials: m.Materials,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = Vertex{Position: v.Position.Add(offset)}
	}
	if m.Bounds != nil {
		out.Bounds = &BoundingBox{Min: m.Bounds.Min.Add(offset), Max: m.Bounds.Max.Add(offset)}
	}
	return out
}
