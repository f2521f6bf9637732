package silo

import "testing"

func TestGiveIsNotVisibleUntilFlush(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 8)
	cmd := w.Commands()

	e, err := cmd.Spawn()
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := Give(cmd, e, pos, position{X: 1}); err != nil {
		t.Fatalf("Give: %v", err)
	}

	if cmd.HasComponent(e, pos) {
		t.Fatalf("expected component not visible before flush")
	}

	w.changeQueue.flush(w)

	if !cmd.HasComponent(e, pos) {
		t.Fatalf("expected component visible after flush")
	}
}

func TestGiveRunsOnAddedSynchronously(t *testing.T) {
	b := NewWorldBuilder(Config{MaxEntities: 8, OnEntityOverflow: OverflowCrash})
	var onAddedCalls int
	pos := RegisterComponentWithHooks(b, "position", ComponentHooks[position]{
		OnAdded: func(c *position, e EntityID, cmd *Commands) error {
			onAddedCalls++
			c.X = 100
			return nil
		},
	})
	w, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cmd := w.Commands()
	e, _ := cmd.Spawn()

	if err := Give(cmd, e, pos, position{X: 1}); err != nil {
		t.Fatalf("Give: %v", err)
	}
	if onAddedCalls != 1 {
		t.Fatalf("expected on_added to fire synchronously once, got %d", onAddedCalls)
	}

	w.changeQueue.flush(w)
	spec := NewQuery().Required(pos)
	cursor := w.Query(spec)
	if !cursor.Next() {
		t.Fatalf("expected entity to match after flush")
	}
	if pos.Get(cursor).X != 100 {
		t.Fatalf("expected on_added mutation to stick, got %v", pos.Get(cursor).X)
	}
}

func TestDespawnRecursesIntoChildren(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 8)
	cmd := w.Commands()

	parent, _ := cmd.SpawnWith(With(pos, position{}))
	child, _ := cmd.SpawnWith(With(pos, position{}))
	if err := cmd.SetParent(child, parent); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	if err := cmd.Despawn(parent); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	w.changeQueue.flush(w)

	if w.entities.isLive(parent) {
		t.Fatalf("expected parent despawned")
	}
	if w.entities.isLive(child) {
		t.Fatalf("expected child despawned along with parent")
	}
}

func TestDespawnFiresDestroyCallback(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 8)
	cmd := w.Commands()
	e, _ := cmd.SpawnWith(With(pos, position{}))

	var fired bool
	if err := cmd.OnDestroy(e, func(id EntityID) { fired = true }); err != nil {
		t.Fatalf("OnDestroy: %v", err)
	}
	cmd.Despawn(e)
	w.changeQueue.flush(w)

	if !fired {
		t.Fatalf("expected destroy callback to fire")
	}
}

func TestRemoveComponentFiresOnRemoved(t *testing.T) {
	b := NewWorldBuilder(Config{MaxEntities: 8, OnEntityOverflow: OverflowCrash})
	var removed bool
	pos := RegisterComponentWithHooks(b, "position", ComponentHooks[position]{
		OnRemoved: func(c *position, e EntityID, cmd *Commands) error {
			removed = true
			return nil
		},
	})
	w, _ := b.Build()
	cmd := w.Commands()
	e, _ := cmd.SpawnWith(With(pos, position{}))
	w.changeQueue.flush(w)

	if err := cmd.RemoveComponent(e, pos); err != nil {
		t.Fatalf("RemoveComponent: %v", err)
	}
	w.changeQueue.flush(w)

	if !removed {
		t.Fatalf("expected on_removed to fire")
	}
	if cmd.HasComponent(e, pos) {
		t.Fatalf("expected component gone after remove")
	}
}

func TestRemoveComponentMissingLogsWarningNoError(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 8)
	cmd := w.Commands()
	e, _ := cmd.Spawn()
	w.changeQueue.flush(w)

	if err := cmd.RemoveComponent(e, pos); err != nil {
		t.Fatalf("RemoveComponent on missing component should queue cleanly: %v", err)
	}
	w.changeQueue.flush(w)
}

func TestOverflowOverwriteFiresOnRemovedForReclaimedComponents(t *testing.T) {
	b := NewWorldBuilder(Config{MaxEntities: 1, OnEntityOverflow: OverflowOverwriteLast})
	var removed bool
	pos := RegisterComponentWithHooks(b, "position", ComponentHooks[position]{
		OnRemoved: func(c *position, e EntityID, cmd *Commands) error {
			removed = true
			return nil
		},
	})
	w, _ := b.Build()
	cmd := w.Commands()

	first, _ := cmd.SpawnWith(With(pos, position{X: 1}))
	w.changeQueue.flush(w)

	second, err := cmd.Spawn()
	if err != nil {
		t.Fatalf("overflow spawn: %v", err)
	}
	if second != first {
		t.Fatalf("expected overwrite_last to reclaim same slot %d, got %d", first, second)
	}
	if !removed {
		t.Fatalf("expected on_removed to fire for reclaimed component")
	}
	if cmd.HasComponent(second, pos) {
		t.Fatalf("expected reclaimed entity to start with no components")
	}
}
