package rollback

// Command is an opaque, cloneable handle to an immutable input record: the
// inputs the local player produced at some tick. The receiver never
// inspects a Command's contents, only stores and replays it — mirroring
// effect.go's Effect[T, A], a per-game payload type the core is generic
// over rather than aware of.
//
// Implementations are expected to be cheap to clone (a value type, or a
// pointer to immutable data) since the same Command may sit in the
// incoming queue, a pawn's history, and the replay queue simultaneously.
type Command interface {
	// Clone returns an independent handle to the same logical input record.
	// For an immutable implementation this may simply return the receiver
	// itself.
	Clone() Command
}
