package rollback

// StateManager is the narrow pawn-reset contract the receiver requires from
// its collaborator. Both methods are expected to be
// side-effecting and synchronous: they revert the predicted state of the
// identified pawn to the most recently received authoritative snapshot, and
// return nothing. The receiver holds no reference to a StateManager between
// calls — it is only borrowed for the duration of ProcessCommandReplay,
// mirroring how the Trackable collaborator in schema.go is never retained
// by the code that operates on it.
type StateManager interface {
	// PawnReset reverts the predicted state of the state-pawn identified by
	// id to the latest authoritative baseline.
	PawnReset(id StateId)

	// PawnResetEntity reverts the predicted state of the entity-pawn
	// identified by id to the latest authoritative baseline.
	PawnResetEntity(id EntityId)
}

// resetPawn dispatches to the correct StateManager method based on the
// PawnKey's variant, keeping that two-way switch in one place instead of
// repeating it at every call site in the receiver.
func resetPawn(sm StateManager, p PawnKey) {
	if p.IsEntity() {
		sm.PawnResetEntity(p.EntityId())
		return
	}
	sm.PawnReset(p.StateId())
}
