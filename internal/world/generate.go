package world

import (
	"math/rand"

	"github.com/Faultbox/trackview/pkg/math"
)

// GenerateConfig controls the procedural demo world.
type GenerateConfig struct {
	Objects     int     // static scenery objects
	Length      float64 // track length
	MaxSpan     float64 // longest visibility interval of an object
	GroupLength float64 // track length covered by one static group
	Seed        int64
}

// DefaultGenerateConfig returns settings for a few kilometres of scenery.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Objects:     2000,
		Length:      5000,
		MaxSpan:     250,
		GroupLength: 500,
		Seed:        1,
	}
}

var (
	opaqueGrey  = Material{Color: [4]uint8{160, 160, 150, 255}}
	opaqueGreen = Material{Color: [4]uint8{60, 140, 60, 255}}
	glass       = Material{Color: [4]uint8{180, 200, 255, 96}}
	lamp        = Material{Color: [4]uint8{255, 220, 120, 255}, Blend: BlendAdditive}
	glowSign    = Material{Color: [4]uint8{255, 80, 80, 255}, GlowAttenuation: 0x1234}
)

// Generate builds a deterministic catalog with static scenery along a gently
// curving track, one dynamic object and one overlay object at the end.
func Generate(cfg GenerateConfig) *Catalog {
	rng := rand.New(rand.NewSource(cfg.Seed))

	const segments = 16
	points := make([]math.Vec3, segments+1)
	for i := range points {
		z := float32(cfg.Length) * float32(i) / segments
		x := 40 * float32(i%4) * float32(rng.Float64()-0.5)
		points[i] = math.Vec3{X: x, Z: z}
	}
	cat := &Catalog{Track: NewTrack(points)}
	length := cat.Track.Length()

	groupLength := cfg.GroupLength
	if groupLength <= 0 {
		groupLength = length + 1
	}

	for i := 0; i < cfg.Objects; i++ {
		at := rng.Float64() * length
		side := float32(1)
		if rng.Intn(2) == 0 {
			side = -1
		}
		base := cat.Track.PositionAt(at).Add(math.Vec3{X: side * (6 + 20*float32(rng.Float64()))})
		size := 1 + 4*float32(rng.Float64())

		var mats []Material
		switch r := rng.Intn(10); {
		case r < 6:
			mats = []Material{opaqueGrey, opaqueGreen}
		case r < 8:
			mats = []Material{opaqueGrey, glass}
		case r < 9:
			mats = []Material{opaqueGrey, lamp}
		default:
			mats = []Material{opaqueGrey, glowSign}
		}

		span := cfg.MaxSpan * (0.25 + 0.75*rng.Float64())
		cat.Objects = append(cat.Objects, PlacedObject{
			Mesh:             Box(base, size, mats),
			StartingDistance: at - span,
			EndingDistance:   at + span/4,
			GroupIndex:       int(at / groupLength),
		})
	}

	cat.Objects = append(cat.Objects,
		PlacedObject{Mesh: Box(math.Vec3{}, 3, []Material{opaqueGrey, glass}), Dynamic: true},
		// Overlays live in camera space: a small panel low and right of the view.
		PlacedObject{Mesh: Box(math.Vec3{X: 0.8, Y: -0.9, Z: -3}, 0.5, []Material{opaqueGreen, glass}), Dynamic: true, Overlay: true},
	)
	return cat
}

// Box returns an axis-aligned cube of edge size standing on base. The top and
// bottom faces use the first material, the sides the second.
func Box(base math.Vec3, size float32, mats []Material) *Mesh {
	h := size / 2
	corners := [8]math.Vec3{
		{X: -h, Y: 0, Z: -h}, {X: h, Y: 0, Z: -h}, {X: h, Y: 0, Z: h}, {X: -h, Y: 0, Z: h},
		{X: -h, Y: size, Z: -h}, {X: h, Y: size, Z: -h}, {X: h, Y: size, Z: h}, {X: -h, Y: size, Z: h},
	}
	mesh := &Mesh{Materials: mats}
	for _, c := range corners {
		mesh.Vertices = append(mesh.Vertices, Vertex{Position: base.Add(c)})
	}

	side := 0
	if len(mats) > 1 {
		side = 1
	}
	quads := []struct {
		v   []int
		mat int
	}{
		{[]int{0, 3, 2, 1}, 0},
		{[]int{4, 5, 6, 7}, 0},
		{[]int{0, 1, 5, 4}, side},
		{[]int{1, 2, 6, 5}, side},
		{[]int{2, 3, 7, 6}, side},
		{[]int{3, 0, 4, 7}, side},
	}
	for _, q := range quads {
		mesh.Faces = append(mesh.Faces, Face{Vertices: q.v, Material: q.mat, Flags: FaceQuads})
	}
	mesh.Bounds = &BoundingBox{Min: base.Add(corners[0]), Max: base.Add(corners[6])}
	return mesh
}
