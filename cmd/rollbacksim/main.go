// rollbacksim is a small demo binary that wires a CommandReceiver to a toy
// StateManager and walks through a simple replay scenario, printing the
// resulting replay queue. It exists to let the library's behavior be
// watched running, the way example/main.go and ehrlich-b-wingthing's
// cmd/wt demonstrate their respective libraries end to end — it is not
// part of the library's public contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mxkacsa/rollback"
)

// inputCommand is the simplest possible Command implementation: an
// immutable value type, cheap to clone by returning itself.
type inputCommand struct {
	Move string
}

func (c inputCommand) Clone() rollback.Command { return c }

// loggingStateManager is a StateManager that just prints which pawn it
// reset, standing in for "snap predicted state back to the authoritative
// baseline" without an actual game world behind it.
type loggingStateManager struct{}

func (loggingStateManager) PawnReset(id rollback.StateId) {
	fmt.Printf("pawn_reset state=%d\n", id)
}

func (loggingStateManager) PawnResetEntity(id rollback.EntityId) {
	fmt.Printf("pawn_reset entity=%s\n", id)
}

func newRunCmd() *cobra.Command {
	var historyCapacity int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a simple prediction-rollback scenario and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			runSimpleReplayScenario(historyCapacity)
			return nil
		},
	}
	cmd.Flags().IntVar(&historyCapacity, "history-capacity", rollback.DefaultHistoryCapacity, "per-pawn command history window size")
	return cmd
}

func runSimpleReplayScenario(historyCapacity int) {
	receiver := rollback.NewCommandReceiver(historyCapacity)
	sm := loggingStateManager{}
	pawn := rollback.StatePawn(1)

	receiver.PawnInit(pawn)
	receiver.QueueCommand(10, pawn, inputCommand{Move: "A"})
	receiver.QueueCommand(11, pawn, inputCommand{Move: "B"})
	receiver.QueueCommand(12, pawn, inputCommand{Move: "C"})

	for {
		qc, ok := receiver.PopCommand()
		if !ok {
			break
		}
		fmt.Printf("apply tick=%d pawn=%s cmd=%v\n", qc.Tick, qc.Pawn, qc.Cmd)
	}

	fmt.Println("network reports divergence at tick 11")
	receiver.ReplayCommands(11, pawn)
	receiver.ProcessCommandReplay(sm)

	for {
		qc, ok := receiver.PopCommandReplay()
		if !ok {
			break
		}
		fmt.Printf("replay tick=%d pawn=%s cmd=%v\n", qc.Tick, qc.Pawn, qc.Cmd)
	}
}

func main() {
	root := &cobra.Command{
		Use:   "rollbacksim",
		Short: "Demo harness for the command prediction/rollback core",
	}
	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
