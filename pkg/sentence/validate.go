package sentence

import "fmt"

// Validate checks graph integrity and returns nil if valid. It verifies:
//
//  1. Every word is listed by exactly the layer its Layer field names
//  2. Every relation and layer parent resolves to a word in the graph
//  3. Prev/next links are symmetric and the reading chain is acyclic
//  4. No layer is nested beneath its own word, and nesting is acyclic
//  5. Layer orders are a permutation of 0..N-1 matching collection order
//
// The first violation found is returned, wrapped with the offending IDs.
func (g *Graph) Validate() error {
	checks := []func() error{
		g.validateOwnership,
		g.validateReferences,
		g.validateChain,
		g.validateNesting,
		g.validateOrder,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) validateOwnership() error {
	listed := make(map[string]string, len(g.words))
	for _, l := range g.layers {
		for _, id := range l.Words {
			w, ok := g.words[id]
			if !ok {
				return fmt.Errorf("%w: layer %s lists %s", ErrDanglingReference, l.ID, id)
			}
			if owner, dup := listed[id]; dup {
				return fmt.Errorf("%w: word %s listed by %s and %s", ErrOwnership, id, owner, l.ID)
			}
			if w.Layer != l.ID {
				return fmt.Errorf("%w: word %s owned by %s but listed by %s", ErrOwnership, id, w.Layer, l.ID)
			}
			listed[id] = l.ID
		}
	}
	for id, w := range g.words {
		if _, ok := listed[id]; !ok {
			return fmt.Errorf("%w: word %s not listed by layer %s", ErrOwnership, id, w.Layer)
		}
	}
	return nil
}

func (g *Graph) validateReferences() error {
	for _, w := range g.words {
		for _, r := range w.Relations() {
			if *r.Target == "" {
				continue
			}
			if _, ok := g.words[*r.Target]; !ok {
				return fmt.Errorf("%w: word %s %s -> %s", ErrDanglingReference, w.ID, r.Name, *r.Target)
			}
		}
	}
	for _, l := range g.layers {
		if l.Parent == "" {
			continue
		}
		if _, ok := g.words[l.Parent]; !ok {
			return fmt.Errorf("%w: layer %s parent -> %s", ErrDanglingReference, l.ID, l.Parent)
		}
	}
	return nil
}

func (g *Graph) validateChain() error {
	for _, w := range g.words {
		if w.NextWord != "" && g.words[w.NextWord].PrevWord != w.ID {
			return fmt.Errorf("%w: %s -> %s", ErrAsymmetricLink, w.ID, w.NextWord)
		}
		if w.PrevWord != "" && g.words[w.PrevWord].NextWord != w.ID {
			return fmt.Errorf("%w: %s <- %s", ErrAsymmetricLink, w.ID, w.PrevWord)
		}
	}

	// With symmetric links every acyclic chain has a head. Words not reached
	// from any head sit on a cycle.
	visited := 0
	for _, w := range g.words {
		if w.PrevWord != "" {
			continue
		}
		for id := w.ID; id != ""; id = g.words[id].NextWord {
			visited++
		}
	}
	if visited != len(g.words) {
		return ErrLinkCycle
	}
	return nil
}

func (g *Graph) validateNesting() error {
	for _, l := range g.layers {
		if l.Parent == "" {
			continue
		}
		if g.words[l.Parent].Layer == l.ID {
			return fmt.Errorf("%w: layer %s", ErrInvalidParent, l.ID)
		}
		if _, err := g.Depth(l.ID); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) validateOrder() error {
	for i, l := range g.layers {
		v, ok := l.OrderValue()
		if !ok {
			return fmt.Errorf("%w: layer %s is unplaced", ErrOrderNotDense, l.ID)
		}
		if v != i {
			return fmt.Errorf("%w: layer %s at position %d has order %d", ErrOrderNotDense, l.ID, i, v)
		}
	}
	return nil
}
