package rollback

// QueuedCommand is a single (tick, pawn, command) triple as it flows through
// the incoming and replay queues.
type QueuedCommand struct {
	Tick Tick
	Pawn PawnKey
	Cmd  Command
}

// CommandReceiver queues newly generated local commands for immediate local
// execution, retains a bounded per-pawn history of emitted commands,
// detects when server state diverges from predicted state, and
// deterministically replays historical commands over a reset predicted
// state so that predicted state reconverges with authoritative state.
//
// The whole type is intentionally lock-free: it assumes a single-threaded,
// cooperative scheduling model with no internal synchronization, unlike
// every other mutable type in this package's teacher (tracked_session.go
// guards every field behind sync.RWMutex). All methods are meant to be
// driven from one simulation thread, and ProcessCommandReplay must not be
// called concurrently with any other method.
type CommandReceiver struct {
	historyCapacity int

	incoming []QueuedCommand
	history  map[PawnKey]*SequenceBuffer[Command]
	replays  []QueuedCommand
	trigger  map[PawnKey]Tick
}

// NewCommandReceiver creates an empty receiver. historyCapacity is the
// per-pawn window size; DefaultHistoryCapacity is used if
// historyCapacity <= 0.
func NewCommandReceiver(historyCapacity int) *CommandReceiver {
	if historyCapacity <= 0 {
		historyCapacity = DefaultHistoryCapacity
	}
	return &CommandReceiver{
		historyCapacity: historyCapacity,
		history:         make(map[PawnKey]*SequenceBuffer[Command]),
		trigger:         make(map[PawnKey]Tick),
	}
}

// PawnInit starts tracking p: history[p] becomes an empty buffer. Called
// when the server assigns the client ownership of an object/entity. If p is
// already tracked its history is reset — PawnInit is not cumulative.
func (r *CommandReceiver) PawnInit(p PawnKey) {
	r.history[p] = NewSequenceBuffer[Command](r.historyCapacity)
}

// PawnCleanup stops tracking p: its history buffer and any pending replay
// trigger are removed. Commands already placed on incoming/replays for p
// are left in place; the host is responsible for filtering them if it no
// longer cares about p. Called on ownership loss.
func (r *CommandReceiver) PawnCleanup(p PawnKey) {
	delete(r.history, p)
	delete(r.trigger, p)
}

// QueueCommand appends (tick, p, cmd) to the incoming queue for immediate
// local application, and, if p is tracked, also retains it in p's history.
// If p is untracked the command is still queued but not retained — this
// supports transient commands emitted just before an ownership change, so
// the host never loses a frame of input across an ownership transition.
func (r *CommandReceiver) QueueCommand(tick Tick, p PawnKey, cmd Command) {
	r.incoming = append(r.incoming, QueuedCommand{Tick: tick, Pawn: p, Cmd: cmd})
	if h, ok := r.history[p]; ok {
		h.Insert(tick, cmd)
	}
}

// PopCommand dequeues the front of the incoming queue in strict FIFO order.
func (r *CommandReceiver) PopCommand() (QueuedCommand, bool) {
	return popFront(&r.incoming)
}

// PopCommandReplay dequeues the front of the replay queue in strict FIFO
// order. Replay tick order equals the ascending tick order in which
// commands were appended by ProcessCommandReplay.
func (r *CommandReceiver) PopCommandReplay() (QueuedCommand, bool) {
	return popFront(&r.replays)
}

func popFront(q *[]QueuedCommand) (QueuedCommand, bool) {
	if len(*q) == 0 {
		return QueuedCommand{}, false
	}
	front := (*q)[0]
	*q = (*q)[1:]
	return front, true
}

// ReplayCommands records a replay request for pawn p starting at
// historyTick. If a prior pending trigger exists for p, the effective
// trigger becomes the earlier of the two ticks under wrapping comparison,
// so a later divergence report never hides an earlier one. Called by the
// network layer when an authoritative update contradicts the client's
// prediction at historyTick.
func (r *CommandReceiver) ReplayCommands(historyTick Tick, p PawnKey) {
	if existing, ok := r.trigger[p]; ok {
		r.trigger[p] = EarlierTrigger(existing, historyTick)
		return
	}
	r.trigger[p] = historyTick
}

// ProcessCommandReplay is the reconciliation pass, run once per tick after
// network events are drained and before command application. For each
// pending (pawn, h) trigger it resets the pawn's
// predicted state via sm, then — if the pawn is still tracked — re-enqueues
// every history entry in [h, history.sequenceNum] onto replays in ascending
// tick order. Both incoming and replays are cleared (anything already
// queued would double-apply) once per pass, just before the first tracked
// pawn's entries are appended. Untracked pawns and empty histories still get
// their state reset but contribute no replayed commands. If trigger is
// empty the whole pass is a no-op and leaves incoming/replays untouched.
func (r *CommandReceiver) ProcessCommandReplay(sm StateManager) {
	if len(r.trigger) == 0 {
		return
	}

	// incoming/replays are cleared exactly once for the whole pass, not per
	// pawn: clearing them inside the per-pawn loop would wipe out replay
	// entries a previously processed pawn in this same pass already
	// appended. The clear only happens if at least one triggered pawn is
	// still tracked — an untracked pawn's trigger resets its state but must
	// not disturb queues that belong to other, unrelated pawns.
	cleared := false
	for p, h := range r.trigger {
		resetPawn(sm, p)

		hist, tracked := r.history[p]
		if !tracked {
			continue
		}

		if !cleared {
			r.incoming = r.incoming[:0]
			r.replays = r.replays[:0]
			cleared = true
		}

		for _, entry := range hist.Iter(false) {
			if After(h, entry.Tick) {
				continue // older than the requested replay start
			}
			r.replays = append(r.replays, QueuedCommand{Tick: entry.Tick, Pawn: p, Cmd: entry.Value})
		}
	}

	clear(r.trigger)
}

// CommandHistoryCount returns the number of entries currently held for p, or
// 0 if p is untracked. Always <= the configured history capacity.
func (r *CommandReceiver) CommandHistoryCount(p PawnKey) int {
	h, ok := r.history[p]
	if !ok {
		return 0
	}
	return h.GetEntriesCount()
}

// CommandHistoryIter returns p's retained history as ascending (reverse
// false) or descending (reverse true) tick-ordered entries. Returns nil if
// p is untracked.
func (r *CommandReceiver) CommandHistoryIter(p PawnKey, reverse bool) []Entry[Command] {
	h, ok := r.history[p]
	if !ok {
		return nil
	}
	return h.Iter(reverse)
}

// RemoveHistoryUntil forgets entries in p's history strictly older than t.
// No effect if p is untracked. Called when the server acknowledges ticks up
// to t for p, so those commands will no longer need replaying.
func (r *CommandReceiver) RemoveHistoryUntil(t Tick, p PawnKey) {
	if h, ok := r.history[p]; ok {
		h.RemoveUntil(t)
	}
}

// AckAll forgets history entries older than until for every currently
// tracked pawn in one call. Sugar over repeated RemoveHistoryUntil calls,
// for the common case of the network layer acknowledging a tick globally
// rather than per pawn — grounded on tracked_session.go's AckSeq/
// GetPendingSince pair, which forgets acknowledged state in bulk on the
// server-authoritative side of the same problem.
func (r *CommandReceiver) AckAll(until Tick) {
	for p := range r.history {
		r.RemoveHistoryUntil(until, p)
	}
}

// Tracked reports whether p currently has a history buffer, i.e. whether
// PawnInit has been called for it without a matching PawnCleanup.
func (r *CommandReceiver) Tracked(p PawnKey) bool {
	_, ok := r.history[p]
	return ok
}

// PendingReplayCount returns the number of pending replay triggers.
func (r *CommandReceiver) PendingReplayCount() int {
	return len(r.trigger)
}
