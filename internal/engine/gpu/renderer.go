// Package gpu emits draw calls for the batch registry's classification lists
// using OpenGL 4.1 core.
package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/engine/batch"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/world"
	"github.com/Faultbox/trackview/pkg/math"
)

// vertex is the interleaved layout uploaded to the GPU.
type vertex struct {
	Position [3]float32
	Color    [4]float32
}

const vertexSize = int32(unsafe.Sizeof(vertex{}))

// run is a span of consecutive draws sharing one blend mode.
type run struct {
	blend       world.BlendMode
	first, last int // draw range [first, last)
}

// drawBuffer holds one VAO/VBO pair and the per-face fan ranges inside it.
type drawBuffer struct {
	vao, vbo uint32
	first    []int32
	count    []int32
	runs     []run
}

func newDrawBuffer() drawBuffer {
	var b drawBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Color
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return b
}

func (b *drawBuffer) upload(vertices []vertex, usage uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexSize), unsafe.Pointer(&vertices[0]), usage)
}

func (b *drawBuffer) reset() {
	b.first = b.first[:0]
	b.count = b.count[:0]
	b.runs = b.runs[:0]
}

func (b *drawBuffer) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
}

// BatchRenderer draws the registry lists. Static groups are re-uploaded only
// when dirty; dense lists are streamed every frame.
type BatchRenderer struct {
	program     uint32
	locViewProj int32

	groups  []drawBuffer
	dense   [4]drawBuffer // dynamic opaque, dynamic alpha, overlay opaque, overlay alpha
	scratch []vertex

	log *zap.Logger
}

var denseKinds = [4]batch.ListKind{
	batch.ListDynamicOpaque,
	batch.ListDynamicAlpha,
	batch.ListOverlayOpaque,
	batch.ListOverlayAlpha,
}

// NewBatchRenderer initializes OpenGL and compiles the batch shader.
// It must be called after the GL context is current.
func NewBatchRenderer() (*BatchRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	br := &BatchRenderer{log: logger.Named("gpu")}
	br.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := compileProgram(batchVertexShader, batchFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("batch shader: %w", err)
	}
	br.program = program
	br.locViewProj = gl.GetUniformLocation(program, gl.Str("uViewProj\x00"))

	for i := range br.dense {
		br.dense[i] = newDrawBuffer()
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.55, 0.7, 0.85, 1.0)
	return br, nil
}

// appendFace appends the fan of one mesh face to b and the scratch buffer.
func (br *BatchRenderer) appendFace(b *drawBuffer, mesh *world.Mesh, face int) {
	f := mesh.Faces[face]
	if len(f.Vertices) < 3 {
		return
	}
	mat := mesh.FaceMaterial(face)
	color := [4]float32{
		float32(mat.Color[0]) / 255,
		float32(mat.Color[1]) / 255,
		float32(mat.Color[2]) / 255,
		float32(mat.Color[3]) / 255,
	}

	b.first = append(b.first, int32(len(br.scratch)))
	b.count = append(b.count, int32(len(f.Vertices)))
	for _, vi := range f.Vertices {
		p := mesh.Vertices[vi].Position
		br.scratch = append(br.scratch, vertex{Position: [3]float32{p.X, p.Y, p.Z}, Color: color})
	}

	draw := len(b.count) - 1
	if n := len(b.runs); n > 0 && b.runs[n-1].blend == mat.Blend {
		b.runs[n-1].last = draw + 1
	} else {
		b.runs = append(b.runs, run{blend: mat.Blend, first: draw, last: draw + 1})
	}
}

// uploadGroups re-uploads every dirty static group and clears its flag.
func (br *BatchRenderer) uploadGroups(reg *batch.Registry) {
	groups := reg.Groups()
	for len(br.groups) < len(groups) {
		br.groups = append(br.groups, newDrawBuffer())
	}

	for g, group := range groups {
		if group == nil || !group.Dirty {
			continue
		}
		b := &br.groups[g]
		b.reset()
		br.scratch = br.scratch[:0]
		for slot := 0; slot < group.Faces.Len(); slot++ {
			ref, ok := group.Faces.At(slot)
			if !ok {
				continue
			}
			mesh, face := reg.Resolve(ref)
			br.appendFace(b, mesh, face)
		}
		b.upload(br.scratch, gl.STATIC_DRAW)
		reg.MarkUploaded(g)
		br.log.Debug("static group uploaded",
			zap.Int("group", g),
			zap.Int("slots", group.Faces.Len()),
			zap.Int("holes", group.Faces.Holes()),
		)
	}
}

// streamDense rebuilds the buffer of one dense list in its current order.
func (br *BatchRenderer) streamDense(reg *batch.Registry, i int) {
	b := &br.dense[i]
	b.reset()
	br.scratch = br.scratch[:0]
	for _, ref := range reg.List(denseKinds[i]).Faces() {
		mesh, face := reg.Resolve(ref)
		br.appendFace(b, mesh, face)
	}
	b.upload(br.scratch, gl.STREAM_DRAW)
}

func (b *drawBuffer) draw(blended bool) {
	if len(b.count) == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	for _, r := range b.runs {
		if blended {
			if r.blend == world.BlendAdditive {
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
			} else {
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			}
		}
		n := int32(r.last - r.first)
		gl.MultiDrawArrays(gl.TRIANGLE_FAN, &b.first[r.first], &b.count[r.first], n)
	}
}

// Render draws one frame. World geometry uses proj*view; overlays are in
// camera space and use proj alone, drawn over a cleared depth buffer.
func (br *BatchRenderer) Render(reg *batch.Registry, proj, view math.Mat4) {
	br.uploadGroups(reg)
	for i := range br.dense {
		br.streamDense(reg, i)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(br.program)

	viewProj := proj.Mul(view)
	gl.UniformMatrix4fv(br.locViewProj, 1, false, viewProj.Ptr())

	// Opaque world
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for g := range br.groups {
		br.groups[g].draw(false)
	}
	br.dense[0].draw(false)

	// Translucent world, already sorted back to front
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	br.dense[1].draw(true)

	// Overlays
	gl.DepthMask(true)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.UniformMatrix4fv(br.locViewProj, 1, false, proj.Ptr())
	gl.Disable(gl.BLEND)
	br.dense[2].draw(false)
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	br.dense[3].draw(true)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// Resize updates the viewport after the drawable changed size.
func (br *BatchRenderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Destroy releases all GPU resources.
func (br *BatchRenderer) Destroy() {
	for i := range br.groups {
		br.groups[i].destroy()
	}
	for i := range br.dense {
		br.dense[i].destroy()
	}
	if br.program != 0 {
		gl.DeleteProgram(br.program)
		br.program = 0
	}
}
