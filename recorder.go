package rollback

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// CommandSnapshot is one retained history entry captured for postmortem
// replay debugging: which pawn, which tick, and the command payload as the
// bytes produced by the encode function passed to Capture. This mirrors DiffRecord's shape in replay.go, whose Data
// field is likewise pre-encoded bytes rather than a live object graph —
// recording an opaque Command interface value needs the same "encode now,
// let the caller decode with a known concrete type later" approach.
type CommandSnapshot struct {
	Pawn PawnKey `msgpack:"pawn"`
	Tick Tick    `msgpack:"tick"`
	Data []byte  `msgpack:"data"`
}

// SnapshotRecorder captures a CommandReceiver's retained history to bytes
// and restores it later. Purely diagnostic tooling: nothing on the
// receiver's hot path calls into this type — it just lets a developer dump
// history to disk and reload it in a test.
type SnapshotRecorder struct{}

// NewSnapshotRecorder creates a SnapshotRecorder.
func NewSnapshotRecorder() *SnapshotRecorder {
	return &SnapshotRecorder{}
}

// Capture encodes every retained history entry across all tracked pawns in
// r, using encode to turn each Command into bytes. Pending replay triggers
// and the incoming/replay queues are not part of the snapshot: they are
// transient per-tick state, whereas history is the durable record retained
// across ticks.
func (rec *SnapshotRecorder) Capture(r *CommandReceiver, encode func(Command) ([]byte, error)) ([]byte, error) {
	var snapshots []CommandSnapshot
	for pawn, hist := range r.history {
		for _, entry := range hist.Iter(false) {
			data, err := encode(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("rollback: encode command at tick %d for %s: %w", entry.Tick, pawn, err)
			}
			snapshots = append(snapshots, CommandSnapshot{Pawn: pawn, Tick: entry.Tick, Data: data})
		}
	}

	out, err := msgpack.Marshal(snapshots)
	if err != nil {
		return nil, fmt.Errorf("rollback: marshal snapshot: %w", err)
	}
	return out, nil
}

// Restore decodes a snapshot produced by Capture and replays it into r: for
// every pawn present in the snapshot it calls PawnInit (if not already
// tracked) and re-inserts each entry into that pawn's history via decode.
// Restore never touches incoming, replays, or pending triggers.
func (rec *SnapshotRecorder) Restore(r *CommandReceiver, data []byte, decode func([]byte) (Command, error)) error {
	var snapshots []CommandSnapshot
	if err := msgpack.Unmarshal(data, &snapshots); err != nil {
		return fmt.Errorf("rollback: unmarshal snapshot: %w", err)
	}

	for _, snap := range snapshots {
		if !r.Tracked(snap.Pawn) {
			r.PawnInit(snap.Pawn)
		}
		cmd, err := decode(snap.Data)
		if err != nil {
			return fmt.Errorf("rollback: decode command at tick %d for %s: %w", snap.Tick, snap.Pawn, err)
		}
		r.history[snap.Pawn].Insert(snap.Tick, cmd)
	}
	return nil
}
