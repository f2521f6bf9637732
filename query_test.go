package silo

import "testing"

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type tag struct{}

func buildTestWorld(t *testing.T, max uint32) (*World, ComponentType[position], ComponentType[velocity], ComponentType[tag]) {
	t.Helper()
	b := NewWorldBuilder(Config{MaxEntities: max, OnEntityOverflow: OverflowCrash})
	pos := RegisterComponent[position](b, "position")
	vel := RegisterComponent[velocity](b, "velocity")
	tg := RegisterComponent[tag](b, "tag")
	w, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return w, pos, vel, tg
}

func TestQueryRequiredFiltersByComponent(t *testing.T) {
	w, pos, vel, _ := buildTestWorld(t, 8)
	cmd := w.Commands()

	both, _ := cmd.SpawnWith(With(pos, position{X: 1}), With(vel, velocity{X: 1}))
	onlyPos, _ := cmd.SpawnWith(With(pos, position{X: 2}))
	w.changeQueue.flush(w)

	spec := NewQuery().Required(pos, vel)
	cursor := w.Query(spec)

	var found []EntityID
	for cursor.Next() {
		found = append(found, cursor.Entity())
	}
	if len(found) != 1 || found[0] != both {
		t.Fatalf("expected only %d to match Required(pos,vel), got %v (onlyPos=%d)", both, found, onlyPos)
	}
}

func TestQueryWithoutExcludes(t *testing.T) {
	w, pos, _, tg := buildTestWorld(t, 8)
	cmd := w.Commands()

	plain, _ := cmd.SpawnWith(With(pos, position{}))
	tagged, _ := cmd.SpawnWith(With(pos, position{}), With(tg, tag{}))
	w.changeQueue.flush(w)

	spec := NewQuery().Required(pos).Without(tg)
	cursor := w.Query(spec)

	var found []EntityID
	for cursor.Next() {
		found = append(found, cursor.Entity())
	}
	if len(found) != 1 || found[0] != plain {
		t.Fatalf("expected only untagged %d, got %v (tagged=%d)", plain, found, tagged)
	}
}

func TestQueryOptionalReturnsFalseWhenAbsent(t *testing.T) {
	w, pos, vel, _ := buildTestWorld(t, 8)
	cmd := w.Commands()
	cmd.SpawnWith(With(pos, position{X: 5}))
	w.changeQueue.flush(w)

	spec := NewQuery().Required(pos).Optional(vel)
	cursor := w.Query(spec)
	if !cursor.Next() {
		t.Fatalf("expected one match")
	}
	if _, ok := vel.GetOptional(cursor); ok {
		t.Fatalf("expected GetOptional to report absent velocity")
	}
	p := pos.Get(cursor)
	if p.X != 5 {
		t.Fatalf("expected X=5, got %v", p.X)
	}
}

func TestQueryEmptyWithNoEntityIsError(t *testing.T) {
	w, _, _, _ := buildTestWorld(t, 4)
	spec := NewQuery()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for empty query with no Entities()")
		}
	}()
	w.Query(spec)
}

func TestQueryDuplicateTypeIsError(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 4)
	spec := NewQuery().Required(pos).Optional(pos)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for duplicate query type")
		}
	}()
	w.Query(spec)
}

func TestQueryGetOnUndeclaredTypePanics(t *testing.T) {
	w, pos, vel, _ := buildTestWorld(t, 4)
	cmd := w.Commands()
	cmd.SpawnWith(With(pos, position{}))
	w.changeQueue.flush(w)

	spec := NewQuery().Required(pos)
	cursor := w.Query(spec)
	cursor.Next()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic accessing undeclared velocity component")
		}
	}()
	vel.Get(cursor)
}

func TestQueryEntitiesOnlyWithNoRequired(t *testing.T) {
	w, pos, _, _ := buildTestWorld(t, 4)
	cmd := w.Commands()
	a, _ := cmd.Spawn()
	b, _ := cmd.SpawnWith(With(pos, position{}))
	w.changeQueue.flush(w)

	cursor := w.Query(NewQuery().Entities())
	var found []EntityID
	for cursor.Next() {
		found = append(found, cursor.Entity())
	}
	if len(found) != 2 {
		t.Fatalf("expected both entities %d,%d, got %v", a, b, found)
	}
}
