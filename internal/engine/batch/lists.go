package batch

// FaceRef locates one mesh face of an active entry inside a classification list.
type FaceRef struct {
	Entry int     // index into the registry's active entries
	Face  int     // face index within the object's mesh
	Depth float32 // last value computed by the depth sorter
}

// emptyEntry marks a tombstoned slot.
const emptyEntry = -1

// SlotList is a classification list of face slots.
type SlotList interface {
	// Insert stores ref and returns its slot.
	Insert(ref FaceRef) int
	// Remove frees slot. When another face was moved into the freed slot it is
	// returned with ok set, and the caller must repair that face's back-reference.
	Remove(slot int) (moved FaceRef, ok bool)
	// At returns the face held by slot, or false for an empty slot.
	At(slot int) (FaceRef, bool)
	// Len returns the number of slots, empty ones included.
	Len() int

	retarget(slot, entry int)
}

// DenseSlotList never holds empty slots. Removal swaps the last face into the
// freed slot.
type DenseSlotList struct {
	faces []FaceRef
}

// Insert appends ref.
func (l *DenseSlotList) Insert(ref FaceRef) int {
	l.faces = append(l.faces, ref)
	return len(l.faces) - 1
}

// Remove swap-removes slot.
func (l *DenseSlotList) Remove(slot int) (FaceRef, bool) {
	last := len(l.faces) - 1
	moved := false
	if slot != last {
		l.faces[slot] = l.faces[last]
		moved = true
	}
	l.faces[last] = FaceRef{}
	l.faces = l.faces[:last]
	if !moved {
		return FaceRef{}, false
	}
	return l.faces[slot], true
}

// At returns the face in slot.
func (l *DenseSlotList) At(slot int) (FaceRef, bool) {
	if slot < 0 || slot >= len(l.faces) {
		return FaceRef{}, false
	}
	return l.faces[slot], true
}

// Len returns the face count.
func (l *DenseSlotList) Len() int {
	return len(l.faces)
}

// Faces returns the list contents in draw order. The slice is owned by the
// list and must not be modified.
func (l *DenseSlotList) Faces() []FaceRef {
	return l.faces
}

func (l *DenseSlotList) retarget(slot, entry int) {
	l.faces[slot].Entry = entry
}

// TombstonedSlotList keeps slot positions stable: removal leaves an empty slot
// behind and the list only shrinks while its trailing slots are empty.
// Insertion fills the lowest empty slot first.
type TombstonedSlotList struct {
	slots     []FaceRef
	holes     int
	firstHole int // lowest empty slot, or len(slots) when there is none
}

// Insert fills the lowest empty slot, or appends.
func (l *TombstonedSlotList) Insert(ref FaceRef) int {
	if l.holes == 0 {
		l.slots = append(l.slots, ref)
		l.firstHole = len(l.slots)
		return len(l.slots) - 1
	}

	slot := l.firstHole
	l.slots[slot] = ref
	l.holes--
	l.firstHole = len(l.slots)
	if l.holes > 0 {
		for i := slot + 1; i < len(l.slots); i++ {
			if l.slots[i].Entry == emptyEntry {
				l.firstHole = i
				break
			}
		}
	}
	return slot
}

// Remove tombstones slot. It never moves another face.
func (l *TombstonedSlotList) Remove(slot int) (FaceRef, bool) {
	l.slots[slot] = FaceRef{Entry: emptyEntry}
	l.holes++
	if slot < l.firstHole {
		l.firstHole = slot
	}

	n := len(l.slots)
	for n > 0 && l.slots[n-1].Entry == emptyEntry {
		n--
		l.holes--
	}
	l.slots = l.slots[:n]
	if l.firstHole > n {
		l.firstHole = n
	}
	return FaceRef{}, false
}

// At returns the face in slot, or false when the slot is empty.
func (l *TombstonedSlotList) At(slot int) (FaceRef, bool) {
	if slot < 0 || slot >= len(l.slots) || l.slots[slot].Entry == emptyEntry {
		return FaceRef{}, false
	}
	return l.slots[slot], true
}

// Len returns the slot count, empty slots included.
func (l *TombstonedSlotList) Len() int {
	return len(l.slots)
}

// Holes returns the number of empty slots below Len.
func (l *TombstonedSlotList) Holes() int {
	return l.holes
}

// Occupied returns the number of faces held.
func (l *TombstonedSlotList) Occupied() int {
	return len(l.slots) - l.holes
}

func (l *TombstonedSlotList) retarget(slot, entry int) {
	l.slots[slot].Entry = entry
}
