package history

import (
	"fmt"

	"github.com/charmbracelet/log"

	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/observability"
	"github.com/matzehuels/sentree/pkg/sentence"
)

// Manager keeps the current graph and a linear undo/redo history of
// serialized snapshots. The zero value is not usable; call NewManager.
//
// Manager is not safe for concurrent use without external synchronization.
type Manager struct {
	graph  *sentence.Graph
	states [][]byte
	depth  int
	limit  int

	resetting bool
	resetGen  int
	listeners []func(resetting bool)

	sched  Scheduler
	logger *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of stored snapshots; the oldest are dropped
// first. Zero means unlimited. Positive limits below 2 are raised to 2 so
// that undo can always hold the in-progress state and one prior state.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 && n < 2 {
			n = 2
		}
		m.limit = n
	}
}

// WithScheduler sets where the falling edge of Reset is posted. The default
// is a private TaskQueue, reachable through Manager.Scheduler.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithLogger sets the logger for debug output. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a manager whose current graph is g, or an empty graph
// if g is nil. The history starts empty.
func NewManager(g *sentence.Graph, opts ...Option) *Manager {
	if g == nil {
		g = sentence.New()
	}
	m := &Manager{
		graph:  g,
		sched:  NewTaskQueue(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Graph returns the current graph.
func (m *Manager) Graph() *sentence.Graph { return m.graph }

// SetGraph replaces the current graph without touching the history. A nil g
// installs an empty graph.
func (m *Manager) SetGraph(g *sentence.Graph) {
	if g == nil {
		g = sentence.New()
	}
	m.graph = g
}

// Len returns the number of stored snapshots.
func (m *Manager) Len() int { return len(m.states) }

// Depth returns how many entries the editor has stepped back from the latest
// state. Zero means no undo is in effect.
func (m *Manager) Depth() int { return m.depth }

// Scheduler returns the scheduler that receives the falling edge of Reset.
func (m *Manager) Scheduler() Scheduler { return m.sched }

// SaveSnapshot records the current graph. If the editor had stepped back,
// the redo branch is discarded first.
func (m *Manager) SaveSnapshot() error {
	data, err := sio.Marshal(m.graph)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if m.depth > 0 {
		m.states = m.states[:len(m.states)-m.depth]
		m.depth = 0
	}
	m.states = append(m.states, data)
	if m.limit > 0 && len(m.states) > m.limit {
		m.states = append([][]byte(nil), m.states[len(m.states)-m.limit:]...)
	}

	m.logger.Debug("saved snapshot", "history", len(m.states), "bytes", len(data))
	observability.History().OnSnapshot(len(m.states), len(data))
	return nil
}

// CanUndo reports whether an earlier state is available.
func (m *Manager) CanUndo() bool {
	return len(m.states) > 0 && m.depth != len(m.states)
}

// CanRedo reports whether a later state is available.
func (m *Manager) CanRedo() bool {
	return len(m.states) > 0 && m.depth > 1
}

// Undo steps back one state. The first undo after an edit saves the
// in-progress graph so that Redo can return to it. Undo is a no-op when
// CanUndo is false.
func (m *Manager) Undo() error {
	if !m.CanUndo() {
		return nil
	}
	if m.depth == 0 {
		if err := m.SaveSnapshot(); err != nil {
			return err
		}
		m.depth++
	}
	if err := m.restore(len(m.states) - m.depth - 1); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	m.depth++

	m.logger.Debug("undo", "depth", m.depth, "history", len(m.states))
	observability.History().OnUndo(m.depth)
	return nil
}

// Redo steps forward one state. Redo is a no-op when CanRedo is false.
func (m *Manager) Redo() error {
	if !m.CanRedo() {
		return nil
	}
	if err := m.restore(len(m.states) - m.depth + 1); err != nil {
		return fmt.Errorf("redo: %w", err)
	}
	m.depth--

	m.logger.Debug("redo", "depth", m.depth, "history", len(m.states))
	observability.History().OnRedo(m.depth)
	return nil
}

func (m *Manager) restore(i int) error {
	g, err := sio.Unmarshal(m.states[i])
	if err != nil {
		return fmt.Errorf("restore snapshot %d: %w", i, err)
	}
	m.graph = g
	return nil
}

// OnReset registers fn to be called on each edge of the reset signal: true
// right after Reset clears the state, false on the following scheduler tick.
func (m *Manager) OnReset(fn func(resetting bool)) {
	m.listeners = append(m.listeners, fn)
}

// Resetting reports whether a reset is in progress, i.e. Reset has run but
// the scheduler has not yet delivered its follow-up task.
func (m *Manager) Resetting() bool { return m.resetting }

// Reset installs an empty graph and clears the history. Listeners see the
// rising edge once the clear is done; the falling edge is posted to the
// scheduler. When Reset runs again before the tick, only the last posted
// task lowers the flag.
func (m *Manager) Reset() {
	m.graph = sentence.New()
	m.states = nil
	m.depth = 0
	m.resetting = true
	m.resetGen++
	gen := m.resetGen

	m.logger.Debug("reset")
	m.signal(true)

	m.sched.Post(func() {
		if gen != m.resetGen || !m.resetting {
			return
		}
		m.resetting = false
		m.signal(false)
	})
}

func (m *Manager) signal(resetting bool) {
	observability.History().OnReset(resetting)
	for _, fn := range m.listeners {
		fn(resetting)
	}
}
