package silo

import "testing"

type testVec struct{ X, Y float64 }

func TestComponentColumnAssignGetRemove(t *testing.T) {
	col := newComponentColumn[testVec](0, "vec")

	col.assign(1, testVec{X: 1})
	col.assign(2, testVec{X: 2})
	col.assign(3, testVec{X: 3})

	if col.len() != 3 {
		t.Fatalf("expected len 3, got %d", col.len())
	}

	ptr, ok := col.get(2)
	if !ok || ptr.X != 2 {
		t.Fatalf("expected entity 2 -> X=2, got (%v, %v)", ptr, ok)
	}

	if !col.remove(1) {
		t.Fatalf("expected remove(1) to succeed")
	}
	if col.has(1) {
		t.Fatalf("expected entity 1 gone after remove")
	}
	if col.len() != 2 {
		t.Fatalf("expected len 2 after remove, got %d", col.len())
	}

	// Entity 3 should have been swapped into slot 0 (or wherever 1 was).
	ptr3, ok := col.get(3)
	if !ok || ptr3.X != 3 {
		t.Fatalf("expected entity 3 intact after swap-remove, got (%v, %v)", ptr3, ok)
	}
}

func TestComponentColumnAssignOverwritesInPlace(t *testing.T) {
	col := newComponentColumn[testVec](0, "vec")
	col.assign(1, testVec{X: 1})
	col.assign(1, testVec{X: 99})

	if col.len() != 1 {
		t.Fatalf("expected assign to the same entity to overwrite, not append; len=%d", col.len())
	}
	ptr, _ := col.get(1)
	if ptr.X != 99 {
		t.Fatalf("expected overwritten value 99, got %v", ptr.X)
	}
}

func TestComponentColumnWillResize(t *testing.T) {
	col := newComponentColumn[testVec](0, "vec")
	if !col.willResize() {
		t.Fatalf("expected empty column (nil slice, 0 cap) to report willResize")
	}
	col.data = make([]testVec, 0, 2)
	col.assign(1, testVec{})
	if col.willResize() {
		t.Fatalf("expected room for one more before resize")
	}
	col.assign(2, testVec{})
	if !col.willResize() {
		t.Fatalf("expected column at capacity to report willResize")
	}
}

func TestComponentColumnIterate(t *testing.T) {
	col := newComponentColumn[testVec](0, "vec")
	col.assign(10, testVec{X: 1})
	col.assign(20, testVec{X: 2})

	seen := map[EntityID]float64{}
	for e, v := range col.iterate() {
		seen[e] = v.X
	}
	if len(seen) != 2 || seen[10] != 1 || seen[20] != 2 {
		t.Fatalf("unexpected iterate result: %v", seen)
	}
}

func TestComponentColumnHooksFireOnRemove(t *testing.T) {
	var removedWith float64
	col := newComponentColumn[testVec](0, "vec")
	col.hooks.OnRemoved = func(v *testVec, e EntityID, cmd *Commands) error {
		removedWith = v.X
		return nil
	}
	col.assign(1, testVec{X: 42})
	if err := col.removeErased(1, nil, nil); err != nil {
		t.Fatalf("removeErased: %v", err)
	}
	if removedWith != 42 {
		t.Fatalf("expected on_removed to see X=42, got %v", removedWith)
	}
	if col.has(1) {
		t.Fatalf("expected entity removed after removeErased")
	}
}
