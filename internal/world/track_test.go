package world

import (
	"testing"

	"github.com/Faultbox/trackview/pkg/math"
)

func TestTrackPositionAt(t *testing.T) {
	track := NewTrack([]math.Vec3{{Z: 0}, {Z: 100}, {X: 100, Z: 100}})

	tests := []struct {
		name string
		at   float64
		want math.Vec3
	}{
		{"start", 0, math.Vec3{Z: 0}},
		{"before start", -10, math.Vec3{Z: 0}},
		{"first segment", 50, math.Vec3{Z: 50}},
		{"corner", 100, math.Vec3{Z: 100}},
		{"second segment", 150, math.Vec3{X: 50, Z: 100}},
		{"past end", 500, math.Vec3{X: 100, Z: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := track.PositionAt(tt.at); got != tt.want {
				t.Errorf("PositionAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}

	if got := track.Length(); got != 200 {
		t.Errorf("Length() = %v, want 200", got)
	}
	if got := track.DirectionAt(150); got != (math.Vec3{X: 1}) {
		t.Errorf("DirectionAt(150) = %v, want (1, 0, 0)", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenerateConfig()
	cfg.Objects = 50

	a := Generate(cfg)
	b := Generate(cfg)

	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("object counts differ: %d vs %d", len(a.Objects), len(b.Objects))
	}
	for i := range a.Objects {
		if a.Objects[i].StartingDistance != b.Objects[i].StartingDistance {
			t.Fatalf("object %d differs between runs", i)
		}
	}
	if got := a.StaticCount(); got != 50 {
		t.Errorf("StaticCount() = %d, want 50", got)
	}
	for i, obj := range a.Objects {
		if !obj.Dynamic && obj.StartingDistance > obj.EndingDistance {
			t.Errorf("object %d has inverted interval", i)
		}
		if len(obj.Mesh.Faces) != 6 {
			t.Errorf("object %d has %d faces, want 6", i, len(obj.Mesh.Faces))
		}
	}
}
