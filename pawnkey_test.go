package rollback

import (
	"testing"

	"github.com/google/uuid"
)

func TestPawnKeyStateAndEntityAreDisjoint(t *testing.T) {
	// A state id and an entity UUID that could superficially "collide" if
	// the tag were dropped must still compare and hash unequal.
	entityID := uuid.UUID{7}
	state := StatePawn(7)
	entity := EntityPawn(entityID)

	if state == entity {
		t.Fatal("State(7) and Entity(uuid with first byte 7) must not be equal")
	}

	m := map[PawnKey]int{state: 1, entity: 2}
	if len(m) != 2 {
		t.Fatalf("map should have 2 distinct keys, got %d", len(m))
	}
	if m[state] != 1 || m[entity] != 2 {
		t.Fatalf("map values mixed up: %+v", m)
	}
}

func TestPawnKeyAccessors(t *testing.T) {
	sp := StatePawn(42)
	if !sp.IsState() || sp.IsEntity() {
		t.Fatal("StatePawn should report IsState() true, IsEntity() false")
	}
	if sp.StateId() != 42 {
		t.Fatalf("StateId() = %d, want 42", sp.StateId())
	}

	id := uuid.New()
	ep := EntityPawn(id)
	if !ep.IsEntity() || ep.IsState() {
		t.Fatal("EntityPawn should report IsEntity() true, IsState() false")
	}
	if ep.EntityId() != id {
		t.Fatalf("EntityId() = %v, want %v", ep.EntityId(), id)
	}
}

func TestPawnKeyEqualityIsStructural(t *testing.T) {
	a := StatePawn(1)
	b := StatePawn(1)
	if a != b {
		t.Fatal("two PawnKeys built from the same StateId should be equal")
	}
}
