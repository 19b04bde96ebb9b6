package sentence

import (
	"cmp"
	"fmt"
	"slices"
)

// InsertLayerAtIndex places a new layer at position target, shifting the
// layers at target and after it one slot to the right. Any order already set
// on l is discarded. Valid targets are 0..N where N is the number of placed
// layers.
func (g *Graph) InsertLayerAtIndex(l *Layer, target int) error {
	if err := g.checkNewLayer(l); err != nil {
		return err
	}
	l.Order = nil
	if err := g.checkTarget(l, target); err != nil {
		return err
	}
	g.moveToIndex(l, target)
	g.layers = append(g.layers, l)
	g.layerIndex[l.ID] = l
	g.Sort()
	return nil
}

// MoveLayerToIndex relocates a layer to position target. Layers between the
// old and new position shift by one to close the gap. An unplaced layer is
// placed as if inserted.
//
// Returns ErrOrderOutOfRange for a target outside 0..N-1 (0..N when the
// layer is unplaced), leaving every order untouched.
func (g *Graph) MoveLayerToIndex(id string, target int) error {
	l, ok := g.layerIndex[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	if err := g.checkTarget(l, target); err != nil {
		return err
	}
	g.moveToIndex(l, target)
	g.Sort()
	return nil
}

func (g *Graph) checkTarget(l *Layer, target int) error {
	limit := g.placedCount()
	if _, placed := l.OrderValue(); placed {
		limit--
	}
	if target < 0 || target > limit {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOrderOutOfRange, target, limit)
	}
	return nil
}

// moveToIndex shifts the orders of the other layers and assigns target to l.
// An unplaced layer opens a slot among [target, placed); a layer moving left
// pushes [target, old) right; a layer moving right pulls (old, target] left.
func (g *Graph) moveToIndex(l *Layer, target int) {
	old, placed := l.OrderValue()
	if placed && old == target {
		return
	}

	if !placed || old > target {
		upper := g.placedCount()
		if placed {
			upper = old
		}
		for _, o := range g.layers {
			if v, ok := o.OrderValue(); ok && o != l && v >= target && v < upper {
				o.setOrder(v + 1)
			}
		}
	} else {
		for _, o := range g.layers {
			if v, ok := o.OrderValue(); ok && o != l && v > old && v <= target {
				o.setOrder(v - 1)
			}
		}
	}
	l.setOrder(target)
}

func (g *Graph) placedCount() int {
	n := 0
	for _, l := range g.layers {
		if l.Order != nil {
			n++
		}
	}
	return n
}

// Sort reorders the collection by layer order. Unplaced layers sort last and
// keep their relative position. Orders themselves are not changed.
func (g *Graph) Sort() {
	slices.SortStableFunc(g.layers, compareOrder)
}

func compareOrder(a, b *Layer) int {
	av, aok := a.OrderValue()
	bv, bok := b.OrderValue()
	switch {
	case aok && bok:
		return cmp.Compare(av, bv)
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}

// Normalize renumbers every layer 0..N-1 following collection order, placing
// unplaced layers at the end. It restores density after removals or after
// loading a document with gaps.
func (g *Graph) Normalize() {
	g.Sort()
	for i, l := range g.layers {
		l.setOrder(i)
	}
}
