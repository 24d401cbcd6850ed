package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleWorld = `
track:
  points: [[0, 0, 0], [0, 0, 1000]]

meshes:
  - name: sign
    vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
    materials:
      - color: [255, 255, 255, 255]
      - color: [255, 0, 0, 128]
        blend: additive
        glow: 10
    faces:
      - vertices: [0, 1, 2, 3]
        material: 0
        type: quads
      - vertices: [0, 1, 2]
        material: 1
        type: triangles
        two_sided: true
    bounds:
      min: [0, 0, 0]
      max: [1, 1, 0]

objects:
  - mesh: sign
    start: 0
    end: 100
    group: 2
    offset: [5, 0, 50]
  - mesh: sign
    kind: dynamic
  - mesh: sign
    kind: overlay
`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleWorld))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got := len(cat.Objects); got != 3 {
		t.Fatalf("len(Objects) = %d, want 3", got)
	}
	if got := cat.Track.Length(); got != 1000 {
		t.Errorf("Track.Length() = %v, want 1000", got)
	}

	obj := cat.Objects[0]
	if obj.StartingDistance != 0 || obj.EndingDistance != 100 || obj.GroupIndex != 2 {
		t.Errorf("object 0 = %+v, want interval [0,100] group 2", obj)
	}
	if obj.Dynamic {
		t.Error("object 0 should be static")
	}
	if got := obj.Mesh.Vertices[1].Position; got.X != 6 || got.Z != 50 {
		t.Errorf("offset vertex = %v, want (6, 0, 50)", got)
	}
	if got := obj.Mesh.Bounds.Min; got.X != 5 || got.Z != 50 {
		t.Errorf("offset bounds min = %v, want (5, 0, 50)", got)
	}

	if !cat.Objects[1].Dynamic || cat.Objects[1].Overlay {
		t.Error("object 1 should be dynamic, not overlay")
	}
	if !cat.Objects[2].Dynamic || !cat.Objects[2].Overlay {
		t.Error("object 2 should be an overlay")
	}
	if got := cat.StaticCount(); got != 1 {
		t.Errorf("StaticCount() = %d, want 1", got)
	}

	mesh := obj.Mesh
	if mesh.Faces[0].Flags.Type() != FaceQuads {
		t.Errorf("face 0 type = %v, want quads", mesh.Faces[0].Flags.Type())
	}
	if mesh.Faces[1].Flags&FaceTwoSided == 0 {
		t.Error("face 1 should be two-sided")
	}
	mat := mesh.FaceMaterial(1)
	if mat.Blend != BlendAdditive || mat.GlowAttenuation != 10 || mat.Opaque() {
		t.Errorf("face 1 material = %+v", mat)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no track",
			yaml: "track:\n  points: [[0, 0, 0]]\n",
			want: ErrNoTrack,
		},
		{
			name: "unknown mesh",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nobjects:\n  - mesh: nope\n",
			want: ErrUnknownMesh,
		},
		{
			name: "bad interval",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nmeshes:\n  - name: m\nobjects:\n  - mesh: m\n    start: 10\n    end: 5\n",
			want: ErrBadInterval,
		},
		{
			name: "negative group",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nmeshes:\n  - name: m\nobjects:\n  - mesh: m\n    group: -1\n",
			want: ErrBadGroup,
		},
		{
			name: "vertex range",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nmeshes:\n  - name: m\n    vertices: [[0,0,0]]\n    faces:\n      - vertices: [0, 1, 2]\n",
			want: ErrVertexRange,
		},
		{
			name: "unknown blend",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nmeshes:\n  - name: m\n    materials:\n      - blend: multiply\n",
			want: ErrUnknownBlend,
		},
		{
			name: "unknown kind",
			yaml: "track:\n  points: [[0,0,0],[0,0,1]]\nmeshes:\n  - name: m\nobjects:\n  - mesh: m\n    kind: ghost\n",
			want: ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/world.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(sampleWorld), 0644); err != nil {
		t.Fatalf("failed to write world: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cat.Objects) != 3 {
		t.Errorf("len(Objects) = %d, want 3", len(cat.Objects))
	}
}
