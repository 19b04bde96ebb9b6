package sentence

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidID is returned when a word or layer has an empty identifier.
	ErrInvalidID = errors.New("identifier must not be empty")

	// ErrDuplicateID is returned when a word or layer identifier is already
	// present in the graph. Identifiers are unique across words and layers.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrUnknownLayer is returned when a layer ID does not resolve.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrUnknownWord is returned when a word ID does not resolve.
	ErrUnknownWord = errors.New("unknown word")

	// ErrLayerNotEmpty is returned when a layer handed to the graph already
	// lists words. Words enter a layer through AddWord.
	ErrLayerNotEmpty = errors.New("layer already has words")

	// ErrLinkCycle is returned when a prev/next link would close a cycle, or
	// by Validate when the reading chain contains one.
	ErrLinkCycle = errors.New("word chain contains a cycle")

	// ErrAsymmetricLink is returned by Validate when a.NextWord is b but
	// b.PrevWord is not a (or the reverse).
	ErrAsymmetricLink = errors.New("asymmetric prev/next link")

	// ErrDanglingReference is returned by Validate when a relation names an
	// identifier that is not in the graph.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrOwnership is returned by Validate when a word's Layer does not list
	// the word, or a layer lists a word owned by another layer.
	ErrOwnership = errors.New("word ownership mismatch")

	// ErrInvalidParent is returned when a layer is nested beneath one of its
	// own words.
	ErrInvalidParent = errors.New("layer parent must be a word of another layer")

	// ErrParentCycle is returned when following parent words leads back to
	// the starting layer.
	ErrParentCycle = errors.New("layer nesting contains a cycle")

	// ErrOrderNotDense is returned by Validate when layer orders are not a
	// permutation of 0..N-1 or the collection is not sorted by order.
	ErrOrderNotDense = errors.New("layer orders are not dense")

	// ErrOrderOutOfRange is returned by MoveLayerToIndex and
	// InsertLayerAtIndex for a target outside the valid slot range.
	ErrOrderOutOfRange = errors.New("order index out of range")
)

// Graph owns the words and layers of one annotation and the ordered layer
// collection. The zero value is not usable; call New.
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	layers     []*Layer
	layerIndex map[string]*Layer
	words      map[string]*Word
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		layerIndex: make(map[string]*Layer),
		words:      make(map[string]*Word),
	}
}

// Layers returns the layer collection sorted by order. The slice is a copy;
// the layers are shared with the graph.
func (g *Graph) Layers() []*Layer { return slices.Clone(g.layers) }

// Clone returns a deep copy of g. The copy shares no layers or words with g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		layers:     make([]*Layer, len(g.layers)),
		layerIndex: make(map[string]*Layer, len(g.layerIndex)),
		words:      make(map[string]*Word, len(g.words)),
	}
	for i, l := range g.layers {
		cl := *l
		if l.Order != nil {
			v := *l.Order
			cl.Order = &v
		}
		cl.Words = slices.Clone(l.Words)
		c.layers[i] = &cl
		c.layerIndex[cl.ID] = &cl
	}
	for id, w := range g.words {
		cw := *w
		c.words[id] = &cw
	}
	return c
}

// LayerCount returns the number of layers in the collection.
func (g *Graph) LayerCount() int { return len(g.layers) }

// WordCount returns the number of words owned by the graph.
func (g *Graph) WordCount() int { return len(g.words) }

// Layer returns the layer with the given ID.
func (g *Graph) Layer(id string) (*Layer, bool) {
	l, ok := g.layerIndex[id]
	return l, ok
}

// Word returns the word with the given ID.
func (g *Graph) Word(id string) (*Word, bool) {
	w, ok := g.words[id]
	return w, ok
}

// Words returns the words of a layer in reading order, or nil if the layer
// does not exist.
func (g *Graph) Words(layerID string) []*Word {
	l, ok := g.layerIndex[layerID]
	if !ok {
		return nil
	}
	out := make([]*Word, 0, len(l.Words))
	for _, id := range l.Words {
		if w, ok := g.words[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// ParentLayer returns the layer that owns l's parent word, or nil for a
// top-level layer or an unresolved parent.
func (g *Graph) ParentLayer(l *Layer) *Layer {
	if l.Parent == "" {
		return nil
	}
	w, ok := g.words[l.Parent]
	if !ok {
		return nil
	}
	return g.layerIndex[w.Layer]
}

// Nested returns the layers whose parent is the given word, in order.
func (g *Graph) Nested(wordID string) []*Layer {
	var out []*Layer
	for _, l := range g.layers {
		if l.Parent == wordID {
			out = append(out, l)
		}
	}
	return out
}

// AppendLayer adds l at the end of the collection without touching any
// order. It is meant for rebuilding a graph from stored state; editing code
// places layers with InsertLayerAtIndex.
func (g *Graph) AppendLayer(l *Layer) error {
	if err := g.checkNewLayer(l); err != nil {
		return err
	}
	g.layers = append(g.layers, l)
	g.layerIndex[l.ID] = l
	return nil
}

func (g *Graph) checkNewLayer(l *Layer) error {
	if l.ID == "" {
		return ErrInvalidID
	}
	if g.hasID(l.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, l.ID)
	}
	if len(l.Words) > 0 {
		return ErrLayerNotEmpty
	}
	return nil
}

func (g *Graph) hasID(id string) bool {
	_, isLayer := g.layerIndex[id]
	_, isWord := g.words[id]
	return isLayer || isWord
}

// AddWord appends w to the end of a layer and sets its back-reference.
func (g *Graph) AddWord(layerID string, w *Word) error {
	l, ok := g.layerIndex[layerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, layerID)
	}
	if w.ID == "" {
		return ErrInvalidID
	}
	if g.hasID(w.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, w.ID)
	}
	w.Layer = l.ID
	l.Words = append(l.Words, w.ID)
	g.words[w.ID] = w
	return nil
}

// RemoveWord detaches a word from the graph. Its chain neighbours are joined,
// relations pointing at it are cleared, and layers nested beneath it become
// top-level.
func (g *Graph) RemoveWord(id string) error {
	w, ok := g.words[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWord, id)
	}

	prev, hasPrev := g.words[w.PrevWord]
	next, hasNext := g.words[w.NextWord]
	switch {
	case hasPrev && hasNext:
		prev.NextWord, next.PrevWord = next.ID, prev.ID
	case hasPrev:
		prev.NextWord = ""
	case hasNext:
		next.PrevWord = ""
	}

	for _, other := range g.words {
		for _, r := range other.Relations() {
			if *r.Target == id {
				*r.Target = ""
			}
		}
	}
	for _, l := range g.layers {
		if l.Parent == id {
			l.Parent = ""
		}
	}
	if l, ok := g.layerIndex[w.Layer]; ok {
		l.Words = slices.DeleteFunc(l.Words, func(s string) bool { return s == id })
	}
	delete(g.words, id)
	return nil
}

// RemoveLayer removes a layer and all of its words, then renumbers the
// remaining layers so their orders stay dense.
func (g *Graph) RemoveLayer(id string) error {
	l, ok := g.layerIndex[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	for _, wid := range slices.Clone(l.Words) {
		if err := g.RemoveWord(wid); err != nil {
			return err
		}
	}
	g.layers = slices.DeleteFunc(g.layers, func(o *Layer) bool { return o == l })
	delete(g.layerIndex, id)
	g.Normalize()
	return nil
}

// Link makes next follow prev in the reading chain. Existing links on either
// side are broken so the chain stays symmetric.
func (g *Graph) Link(prevID, nextID string) error {
	prev, ok := g.words[prevID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWord, prevID)
	}
	next, ok := g.words[nextID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWord, nextID)
	}
	if prevID == nextID || g.reaches(nextID, prevID) {
		return fmt.Errorf("%w: %s -> %s", ErrLinkCycle, prevID, nextID)
	}

	if old, ok := g.words[prev.NextWord]; ok {
		old.PrevWord = ""
	}
	if old, ok := g.words[next.PrevWord]; ok {
		old.NextWord = ""
	}
	prev.NextWord = nextID
	next.PrevWord = prevID
	return nil
}

// Unlink breaks the link between a word and the word that follows it.
func (g *Graph) Unlink(id string) error {
	w, ok := g.words[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWord, id)
	}
	if next, ok := g.words[w.NextWord]; ok {
		next.PrevWord = ""
	}
	w.NextWord = ""
	return nil
}

// reaches reports whether walking NextWord from the word from arrives at to.
func (g *Graph) reaches(from, to string) bool {
	for steps, id := 0, from; id != "" && steps <= len(g.words); steps++ {
		if id == to {
			return true
		}
		w, ok := g.words[id]
		if !ok {
			return false
		}
		id = w.NextWord
	}
	return false
}

// Depth returns the number of layers above the given layer, following each
// parent word to the layer that owns it. Top-level layers have depth 0.
func (g *Graph) Depth(layerID string) (int, error) {
	l, ok := g.layerIndex[layerID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLayer, layerID)
	}
	seen := map[string]bool{}
	depth := 0
	for l.Parent != "" {
		if seen[l.ID] {
			return 0, fmt.Errorf("%w: at layer %s", ErrParentCycle, l.ID)
		}
		seen[l.ID] = true
		w, ok := g.words[l.Parent]
		if !ok {
			return 0, fmt.Errorf("%w: layer %s parent %s", ErrDanglingReference, l.ID, l.Parent)
		}
		if l, ok = g.layerIndex[w.Layer]; !ok {
			return 0, fmt.Errorf("%w: word %s layer %s", ErrDanglingReference, w.ID, w.Layer)
		}
		depth++
	}
	return depth, nil
}
