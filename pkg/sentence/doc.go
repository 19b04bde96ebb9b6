// Package sentence provides the annotation graph behind the sentence
// diagramming editor.
//
// # Overview
//
// A sentence is split into [Word] tokens that are grouped into [Layer]s
// (a sentence, a clause, a phrase). Words cross-reference each other through
// grammatical relations (head term, verbal subject, verbal direct object) and
// form a doubly linked reading chain through PrevWord/NextWord. A layer may be
// nested beneath a word of another layer through its Parent field.
//
// # Arena
//
// All words and layers are owned by a [Graph] and keyed by identifier. Every
// relation is stored as an identifier and resolved through the graph:
//
//	g := sentence.New()
//	clause := sentence.NewLayer()
//	if err := g.InsertLayerAtIndex(clause, 0); err != nil {
//	    return err
//	}
//	dog := sentence.NewWord("dog")
//	runs := sentence.NewWord("runs")
//	_ = g.AddWord(clause.ID, dog)
//	_ = g.AddWord(clause.ID, runs)
//	_ = g.Link(dog.ID, runs.ID)
//	runs.VerbalSubject = dog.ID
//
// Holding identifiers rather than pointers means back-references (a word to
// its layer, a layer to its parent word) never form ownership cycles, and the
// flat document form in package io maps one-to-one onto the arena.
//
// # Ordering
//
// Every layer in the collection carries a dense integer Order. Use
// [Graph.InsertLayerAtIndex] and [Graph.MoveLayerToIndex] to place layers;
// both shift their siblings so the orders stay a permutation of 0..N-1 and
// keep [Graph.Layers] sorted by order.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Callers serialize access.
package sentence
