package history

import (
	"fmt"

	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/sentence"
)

// Editor is the command surface offered to the editing UI: it owns the
// current graph through its Manager and funnels every structural change
// through the layer ordering and history APIs.
//
// Preferences are carried for the UI and never inspected.
//
// Editor is not safe for concurrent use without external synchronization.
type Editor struct {
	*Manager
	prefs map[string]any
}

// NewEditor returns an editor holding an empty graph.
func NewEditor(prefs map[string]any, opts ...Option) *Editor {
	if prefs == nil {
		prefs = map[string]any{}
	}
	return &Editor{Manager: NewManager(nil, opts...), prefs: prefs}
}

// Preferences returns the opaque preference map given to NewEditor.
func (e *Editor) Preferences() map[string]any { return e.prefs }

// SetLayers installs g as the current graph.
func (e *Editor) SetLayers(g *sentence.Graph) { e.SetGraph(g) }

// ImportLayers rebuilds a graph from doc and installs it. References to
// identifiers missing from doc resolve to null and are logged as warnings.
// On error the current graph is left in place.
func (e *Editor) ImportLayers(doc sio.Document) error {
	g, dangling, err := sio.DeserializeWithReport(doc)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for _, ref := range dangling {
		e.logger.Warn("dropped dangling reference", "owner", ref.Owner, "field", ref.Field, "target", ref.Target)
	}
	e.SetGraph(g)
	e.logger.Debug("imported layers", "layers", g.LayerCount(), "words", g.WordCount())
	return nil
}

// ExportLayers serializes the current graph.
func (e *Editor) ExportLayers() sio.Document {
	return sio.Serialize(e.Graph())
}

// InsertLayerAtIndex places a new layer in the current graph.
func (e *Editor) InsertLayerAtIndex(l *sentence.Layer, target int) error {
	return e.Graph().InsertLayerAtIndex(l, target)
}

// MoveLayerToIndex relocates a layer of the current graph.
func (e *Editor) MoveLayerToIndex(layerID string, target int) error {
	return e.Graph().MoveLayerToIndex(layerID, target)
}

// Apply saves a snapshot and then runs edit against the current graph, so
// that a single Undo reverts everything edit changed. If edit fails the
// snapshot is kept; Undo restores the state from before the call.
func (e *Editor) Apply(edit func(g *sentence.Graph) error) error {
	if err := e.SaveSnapshot(); err != nil {
		return err
	}
	return edit(e.Graph())
}
