package rollback

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// StateId identifies a predicted pure-state object (one arm of PawnKey).
type StateId uint64

// EntityId identifies a predicted entity (the other arm of PawnKey).
// Entities in this domain are addressed by UUID rather than a sequential
// integer, following the pack's convention for world-level objects.
type EntityId = uuid.UUID

type pawnKind uint8

const (
	pawnKindState pawnKind = iota
	pawnKindEntity
)

// PawnKey discriminates between a state-pawn and an entity-pawn. It is a
// plain comparable struct rather than an interface sum type: Go map keys
// must be comparable, and boxing the two cases behind an interface would
// both lose that property and cost an allocation on every lookup. The kind
// discriminator keeps the two cases disjoint even when StateId and EntityId
// payloads happen to coincide numerically — State(7) and Entity(7) hash and
// compare unequal, because kind differs and EntityId is a 16-byte UUID
// occupying a field StateId never touches.
type PawnKey struct {
	kind   pawnKind
	state  StateId
	entity EntityId
}

// StatePawn builds a PawnKey identifying a pure-state object.
func StatePawn(id StateId) PawnKey {
	return PawnKey{kind: pawnKindState, state: id}
}

// EntityPawn builds a PawnKey identifying an entity.
func EntityPawn(id EntityId) PawnKey {
	return PawnKey{kind: pawnKindEntity, entity: id}
}

// IsState reports whether this key addresses a state-pawn.
func (k PawnKey) IsState() bool {
	return k.kind == pawnKindState
}

// IsEntity reports whether this key addresses an entity-pawn.
func (k PawnKey) IsEntity() bool {
	return k.kind == pawnKindEntity
}

// StateId returns the wrapped state identifier. Only meaningful when
// IsState() is true.
func (k PawnKey) StateId() StateId {
	return k.state
}

// EntityId returns the wrapped entity identifier. Only meaningful when
// IsEntity() is true.
func (k PawnKey) EntityId() EntityId {
	return k.entity
}

// String renders a human-readable form, useful in demo/diagnostic output.
func (k PawnKey) String() string {
	if k.IsEntity() {
		return "entity:" + k.entity.String()
	}
	return "state:" + strconv.FormatUint(uint64(k.state), 10)
}

// EncodeMsgpack implements msgpack.CustomEncoder. PawnKey's fields are
// unexported, so the library's default reflection-based struct encoding
// would see nothing to encode; this writes the discriminator and both
// payloads explicitly so SnapshotRecorder can round-trip a PawnKey.
func (k PawnKey) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeUint8(uint8(k.kind)); err != nil {
		return err
	}
	if err := enc.EncodeUint64(uint64(k.state)); err != nil {
		return err
	}
	entityBytes := k.entity
	return enc.EncodeBytes(entityBytes[:])
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of
// EncodeMsgpack.
func (k *PawnKey) DecodeMsgpack(dec *msgpack.Decoder) error {
	kind, err := dec.DecodeUint8()
	if err != nil {
		return err
	}
	state, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	entityBytes, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	k.kind = pawnKind(kind)
	k.state = StateId(state)
	copy(k.entity[:], entityBytes)
	return nil
}
