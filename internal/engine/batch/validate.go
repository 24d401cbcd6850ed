package batch

import "fmt"

// Stats summarizes the registry contents.
type Stats struct {
	Entries      int
	StaticGroups int
	StaticHoles  int
	Faces        [listKindCount]int
}

// Stats counts faces per list kind.
func (r *Registry) Stats() Stats {
	s := Stats{Entries: len(r.entries)}
	for _, g := range r.groups {
		if g == nil {
			continue
		}
		s.StaticGroups++
		s.StaticHoles += g.Faces.Holes()
		s.Faces[ListStaticOpaque] += g.Faces.Occupied()
	}
	for k := ListDynamicOpaque; k < listKindCount; k++ {
		s.Faces[k] = r.dense(k).Len()
	}
	return s
}

// TotalFaces returns the face count across all lists.
func (s Stats) TotalFaces() int {
	n := 0
	for _, c := range s.Faces {
		n += c
	}
	return n
}

// Validate checks both directions of every back-reference and returns the
// first inconsistency found.
func (r *Registry) Validate() error {
	for e, entry := range r.entries {
		obj := &r.catalog.Objects[entry.Object]
		if obj.RendererIndex != e+1 {
			return fmt.Errorf("entry %d: object %d has renderer index %d", e, entry.Object, obj.RendererIndex)
		}
		if obj.Mesh == nil || len(entry.Faces) != len(obj.Mesh.Faces) {
			return fmt.Errorf("entry %d: face count does not match mesh", e)
		}
		for i, fs := range entry.Faces {
			ref, ok := r.list(fs.List, obj).At(fs.Slot)
			if !ok || ref.Entry != e || ref.Face != i {
				return fmt.Errorf("entry %d face %d: %v slot %d holds %+v", e, i, fs.List, fs.Slot, ref)
			}
		}
	}

	for i := range r.catalog.Objects {
		ri := r.catalog.Objects[i].RendererIndex
		if ri == 0 {
			continue
		}
		if ri > len(r.entries) || r.entries[ri-1].Object != i {
			return fmt.Errorf("object %d: renderer index %d does not point back", i, ri)
		}
	}

	check := func(kind ListKind, l SlotList) error {
		for slot := 0; slot < l.Len(); slot++ {
			ref, ok := l.At(slot)
			if !ok {
				continue
			}
			if ref.Entry < 0 || ref.Entry >= len(r.entries) {
				return fmt.Errorf("%v slot %d: entry %d out of range", kind, slot, ref.Entry)
			}
			faces := r.entries[ref.Entry].Faces
			if ref.Face < 0 || ref.Face >= len(faces) || faces[ref.Face] != (FaceSlot{List: kind, Slot: slot}) {
				return fmt.Errorf("%v slot %d: entry %d face %d points elsewhere", kind, slot, ref.Entry, ref.Face)
			}
		}
		return nil
	}
	for _, g := range r.groups {
		if g == nil {
			continue
		}
		if err := check(ListStaticOpaque, &g.Faces); err != nil {
			return err
		}
	}
	for k := ListDynamicOpaque; k < listKindCount; k++ {
		if err := check(k, r.dense(k)); err != nil {
			return err
		}
	}
	return nil
}
