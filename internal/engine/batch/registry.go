// Package batch keeps render-ready classification lists in sync with the set
// of active objects, and depth-sorts the translucent lists.
package batch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/world"
)

// RenderKind selects how an object is drawn.
type RenderKind uint8

const (
	RenderStatic RenderKind = iota
	RenderDynamic
	RenderOverlay
)

func (k RenderKind) String() string {
	switch k {
	case RenderStatic:
		return "static"
	case RenderDynamic:
		return "dynamic"
	case RenderOverlay:
		return "overlay"
	}
	return fmt.Sprintf("RenderKind(%d)", uint8(k))
}

// ListKind identifies one of the five classification lists.
type ListKind uint8

const (
	ListStaticOpaque ListKind = iota
	ListDynamicOpaque
	ListDynamicAlpha
	ListOverlayOpaque
	ListOverlayAlpha

	listKindCount
)

func (k ListKind) String() string {
	switch k {
	case ListStaticOpaque:
		return "static-opaque"
	case ListDynamicOpaque:
		return "dynamic-opaque"
	case ListDynamicAlpha:
		return "dynamic-alpha"
	case ListOverlayOpaque:
		return "overlay-opaque"
	case ListOverlayAlpha:
		return "overlay-alpha"
	}
	return fmt.Sprintf("ListKind(%d)", uint8(k))
}

// FaceSlot is the position of one face of an active entry.
type FaceSlot struct {
	List ListKind
	Slot int
}

// ActiveEntry is the bookkeeping for one shown object.
type ActiveEntry struct {
	Object int
	Kind   RenderKind
	Faces  []FaceSlot // indexed by mesh face
}

// StaticGroup holds the static opaque faces of one catalog group.
type StaticGroup struct {
	Faces TombstonedSlotList
	// Bounds mirrors the slots: the mesh-level box of the object owning each
	// slot, when its mesh has one.
	Bounds []world.BoundingBox
	// Dirty is set on every change and cleared by the uploader.
	Dirty bool
}

// Registry owns the classification lists and the active entries.
type Registry struct {
	catalog *world.Catalog
	entries []ActiveEntry

	groups        []*StaticGroup
	dynamicOpaque DenseSlotList
	dynamicAlpha  DenseSlotList
	overlayOpaque DenseSlotList
	overlayAlpha  DenseSlotList

	overlayAlphaRestricted bool
}

// NewRegistry creates an empty registry over catalog.
func NewRegistry(catalog *world.Catalog) *Registry {
	return &Registry{catalog: catalog}
}

// SetOverlayAlphaRestriction switches whether overlay faces are forced into
// the overlay alpha list, as camera modes with a 3D restriction require.
// Changing it re-adds every active object.
func (r *Registry) SetOverlayAlphaRestriction(on bool) {
	if r.overlayAlphaRestricted == on {
		return
	}
	r.overlayAlphaRestricted = on
	r.ReAddObjects()
}

// OverlayAlphaRestricted reports the current restriction.
func (r *Registry) OverlayAlphaRestricted() bool {
	return r.overlayAlphaRestricted
}

func (r *Registry) needsAlpha(kind RenderKind, mat world.Material) bool {
	switch {
	case kind == RenderOverlay && r.overlayAlphaRestricted:
		return true
	case !mat.Opaque():
		return true
	case mat.Blend == world.BlendAdditive:
		return true
	case mat.GlowAttenuation != 0:
		return true
	}
	return false
}

func chooseList(kind RenderKind, alpha bool) ListKind {
	switch kind {
	case RenderStatic:
		if alpha {
			return ListDynamicAlpha
		}
		return ListStaticOpaque
	case RenderDynamic:
		if alpha {
			return ListDynamicAlpha
		}
		return ListDynamicOpaque
	case RenderOverlay:
		if alpha {
			return ListOverlayAlpha
		}
		return ListOverlayOpaque
	}
	panic(fmt.Sprintf("batch: unknown render kind %d", kind))
}

// dense returns the dense list for kind. Any other kind is a broken invariant.
func (r *Registry) dense(kind ListKind) *DenseSlotList {
	switch kind {
	case ListDynamicOpaque:
		return &r.dynamicOpaque
	case ListDynamicAlpha:
		return &r.dynamicAlpha
	case ListOverlayOpaque:
		return &r.overlayOpaque
	case ListOverlayAlpha:
		return &r.overlayAlpha
	}
	panic(fmt.Sprintf("batch: %v is not a dense list", kind))
}

// list returns the list holding a face of object obj classified as kind.
func (r *Registry) list(kind ListKind, obj *world.PlacedObject) SlotList {
	if kind == ListStaticOpaque {
		return &r.groups[obj.GroupIndex].Faces
	}
	return r.dense(kind)
}

// group returns the static group g, creating it and growing the group array
// on first use.
func (r *Registry) group(g int) *StaticGroup {
	if g >= len(r.groups) {
		grown := make([]*StaticGroup, g+1, max(g+1, 2*len(r.groups)))
		copy(grown, r.groups)
		r.groups = grown
	}
	if r.groups[g] == nil {
		r.groups[g] = &StaticGroup{}
		logger.Debug("static group created", zap.Int("group", g))
	}
	return r.groups[g]
}

// ShowObject activates an object and classifies each of its faces into a
// list. Already active objects and objects without a mesh are left alone.
func (r *Registry) ShowObject(objectIndex int, kind RenderKind) {
	obj := &r.catalog.Objects[objectIndex]
	if obj.RendererIndex != 0 || obj.Mesh == nil {
		return
	}

	e := len(r.entries)
	mesh := obj.Mesh
	entry := ActiveEntry{
		Object: objectIndex,
		Kind:   kind,
		Faces:  make([]FaceSlot, len(mesh.Faces)),
	}

	for i := range mesh.Faces {
		lk := chooseList(kind, r.needsAlpha(kind, mesh.FaceMaterial(i)))
		ref := FaceRef{Entry: e, Face: i}

		var slot int
		switch lk {
		case ListStaticOpaque:
			g := r.group(obj.GroupIndex)
			slot = g.Faces.Insert(ref)
			g.Dirty = true
			if mesh.Bounds != nil {
				for len(g.Bounds) <= slot {
					g.Bounds = append(g.Bounds, world.BoundingBox{})
				}
				g.Bounds[slot] = *mesh.Bounds
			}
		case ListDynamicOpaque, ListDynamicAlpha, ListOverlayOpaque, ListOverlayAlpha:
			slot = r.dense(lk).Insert(ref)
		default:
			panic(fmt.Sprintf("batch: unknown list kind %d", lk))
		}
		entry.Faces[i] = FaceSlot{List: lk, Slot: slot}
	}

	r.entries = append(r.entries, entry)
	obj.RendererIndex = e + 1
}

// HideObject deactivates an object and removes its faces from their lists.
// Inactive objects are left alone.
func (r *Registry) HideObject(objectIndex int) {
	obj := &r.catalog.Objects[objectIndex]
	if obj.RendererIndex == 0 {
		return
	}
	e := obj.RendererIndex - 1

	// A swap-remove can move a later face of this same entry, so each slot is
	// re-read after the previous removal.
	for i := range r.entries[e].Faces {
		fs := r.entries[e].Faces[i]
		switch fs.List {
		case ListStaticOpaque:
			g := r.groups[obj.GroupIndex]
			g.Faces.Remove(fs.Slot)
			g.Dirty = true
		case ListDynamicOpaque, ListDynamicAlpha, ListOverlayOpaque, ListOverlayAlpha:
			if moved, ok := r.dense(fs.List).Remove(fs.Slot); ok {
				r.setSlot(moved.Entry, moved.Face, fs.Slot)
			}
		default:
			panic(fmt.Sprintf("batch: unknown list kind %d", fs.List))
		}
	}

	last := len(r.entries) - 1
	if e != last {
		r.entries[e] = r.entries[last]
		moved := &r.entries[e]
		movedObj := &r.catalog.Objects[moved.Object]
		for _, fs := range moved.Faces {
			r.list(fs.List, movedObj).retarget(fs.Slot, e)
		}
		movedObj.RendererIndex = e + 1
	}
	r.entries[last] = ActiveEntry{}
	r.entries = r.entries[:last]
	obj.RendererIndex = 0
}

// ReAddObjects hides and re-shows every active object in its current order,
// re-running classification. It is meant for infrequent global changes.
func (r *Registry) ReAddObjects() {
	type shown struct {
		object int
		kind   RenderKind
	}
	snapshot := make([]shown, len(r.entries))
	for i, e := range r.entries {
		snapshot[i] = shown{e.Object, e.Kind}
	}

	for _, s := range snapshot {
		r.HideObject(s.object)
	}
	for _, s := range snapshot {
		r.ShowObject(s.object, s.kind)
	}
	logger.Info("re-added active objects", zap.Int("objects", len(snapshot)))
}

// setSlot rewrites the slot back-reference of one face.
func (r *Registry) setSlot(entry, face, slot int) {
	fs := &r.entries[entry].Faces[face]
	fs.Slot = slot
	if debugChecks {
		obj := &r.catalog.Objects[r.entries[entry].Object]
		ref, ok := r.list(fs.List, obj).At(slot)
		if !ok || ref.Entry != entry || ref.Face != face {
			panic(fmt.Sprintf("batch: %v slot %d does not hold entry %d face %d", fs.List, slot, entry, face))
		}
	}
}

// EntryCount returns the number of active entries.
func (r *Registry) EntryCount() int {
	return len(r.entries)
}

// Entry returns active entry i. Its Faces slice must not be modified.
func (r *Registry) Entry(i int) ActiveEntry {
	return r.entries[i]
}

// Groups returns the static opaque groups, indexed by catalog group. Entries
// for groups never used are nil.
func (r *Registry) Groups() []*StaticGroup {
	return r.groups
}

// MarkUploaded clears the dirty flag of group g after the uploader consumed it.
func (r *Registry) MarkUploaded(g int) {
	if g < len(r.groups) && r.groups[g] != nil {
		r.groups[g].Dirty = false
	}
}

// List returns one of the four dense lists for iteration.
func (r *Registry) List(kind ListKind) *DenseSlotList {
	return r.dense(kind)
}

// Resolve returns the mesh and face index a list reference points at.
func (r *Registry) Resolve(ref FaceRef) (*world.Mesh, int) {
	return r.catalog.Objects[r.entries[ref.Entry].Object].Mesh, ref.Face
}
