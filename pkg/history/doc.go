// Package history provides linear undo/redo over annotation graph states and
// the Editor that owns the current graph.
//
// # States
//
// A [Manager] holds the current [sentence.Graph], a stack of serialized
// snapshots and a depth counter. Depth 0 means the current graph is the
// latest edited state; depth d > 0 means the editor has stepped back d
// entries.
//
//	m := history.NewManager(g)
//	_ = m.SaveSnapshot()        // before an edit
//	word.Value = "dogs"         // the edit
//	_ = m.Undo()                // m.Graph() reads "dog" again
//	_ = m.Redo()                // and "dogs" once more
//
// Saving a snapshot while stepped back discards the redo branch.
//
// # Reset
//
// [Manager.Reset] clears the graph and history and raises a resetting flag.
// Listeners registered with [Manager.OnReset] see the rising edge after the
// clear has happened. The falling edge is posted to the manager's
// [Scheduler] and fires on the host's next tick, so an observer reacting to
// the rise always sees the cleared state first.
//
// # Concurrency
//
// Manager and Editor are single-writer: callers serialize access. Only
// [TaskQueue] may be posted to from other goroutines.
package history
