package batch

import "testing"

func TestDenseSlotListRemove(t *testing.T) {
	var l DenseSlotList
	for i := 0; i < 4; i++ {
		if got := l.Insert(FaceRef{Entry: i}); got != i {
			t.Fatalf("Insert() = %d, want %d", got, i)
		}
	}

	moved, ok := l.Remove(1)
	if !ok || moved.Entry != 3 {
		t.Errorf("Remove(1) = %+v, %v, want entry 3 moved", moved, ok)
	}
	if got, _ := l.At(1); got.Entry != 3 {
		t.Errorf("At(1).Entry = %d, want 3", got.Entry)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}

	if _, ok := l.Remove(2); ok {
		t.Error("removing the last slot should not move anything")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestTombstonedSlotList(t *testing.T) {
	var l TombstonedSlotList
	for i := 0; i < 4; i++ {
		l.Insert(FaceRef{Entry: i})
	}

	l.Remove(1)
	if l.Len() != 4 || l.Holes() != 1 || l.Occupied() != 3 {
		t.Errorf("after Remove(1): Len=%d Holes=%d Occupied=%d, want 4/1/3", l.Len(), l.Holes(), l.Occupied())
	}
	if _, ok := l.At(1); ok {
		t.Error("slot 1 should be empty")
	}
	if got, _ := l.At(2); got.Entry != 2 {
		t.Errorf("slot 2 moved: got entry %d", got.Entry)
	}

	l.Remove(0)
	if got := l.Insert(FaceRef{Entry: 10}); got != 0 {
		t.Errorf("Insert() reused slot %d, want lowest hole 0", got)
	}
	if got := l.Insert(FaceRef{Entry: 11}); got != 1 {
		t.Errorf("Insert() reused slot %d, want 1", got)
	}
	if got := l.Insert(FaceRef{Entry: 12}); got != 4 {
		t.Errorf("Insert() = %d, want append at 4", got)
	}

	// Emptying a middle slot keeps the length; emptying the tail shrinks
	// through every trailing hole.
	l.Remove(3)
	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
	l.Remove(4)
	if l.Len() != 3 || l.Holes() != 0 {
		t.Errorf("after tail removal: Len=%d Holes=%d, want 3/0", l.Len(), l.Holes())
	}

	for _, s := range []int{2, 0, 1} {
		l.Remove(s)
	}
	if l.Len() != 0 || l.Holes() != 0 {
		t.Errorf("after removing all: Len=%d Holes=%d, want 0/0", l.Len(), l.Holes())
	}
	if got := l.Insert(FaceRef{Entry: 20}); got != 0 {
		t.Errorf("Insert() into empty list = %d, want 0", got)
	}
}
