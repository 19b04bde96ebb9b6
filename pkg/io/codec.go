package io

import (
	"errors"
	"fmt"

	"github.com/matzehuels/sentree/pkg/sentence"
)

// ErrDanglingReference is returned by [DeserializeStrict] when a relation
// names an identifier that does not appear in the document.
var ErrDanglingReference = errors.New("dangling reference")

// DanglingRef describes one relation that could not be resolved during
// deserialization.
type DanglingRef struct {
	Owner  string // ID of the word or layer holding the reference
	Field  string // relation name, e.g. "headTerm" or "parent"
	Target string // the identifier that did not resolve
}

func (r DanglingRef) String() string {
	return fmt.Sprintf("%s.%s -> %s", r.Owner, r.Field, r.Target)
}

// Serialize converts a graph into its flat document form. Layers appear in
// collection order and words in reading order; every relation is written as
// the referenced identifier, or nil when unset.
//
// Serialize does not modify g. Structurally identical graphs produce equal
// documents, and therefore byte-identical output from [Marshal].
func Serialize(g *sentence.Graph) Document {
	layers := g.Layers()
	doc := make(Document, len(layers))
	for i, l := range layers {
		rec := LayerRecord{
			ID:            l.ID,
			Type:          l.Type,
			CompanionText: ref(l.CompanionText),
			IsSelected:    l.IsSelected,
			Parent:        ref(l.Parent),
			Words:         make([]WordRecord, 0, len(l.Words)),
		}
		if v, ok := l.OrderValue(); ok {
			rec.Order = &v
		}
		for _, w := range g.Words(l.ID) {
			rec.Words = append(rec.Words, serializeWord(w))
		}
		doc[i] = rec
	}
	return doc
}

func serializeWord(w *sentence.Word) WordRecord {
	return WordRecord{
		ID:                 w.ID,
		POS:                ref(w.POS),
		Value:              w.Value,
		Layer:              w.Layer,
		IsSelected:         w.IsSelected,
		IsHighlighted:      w.IsHighlighted,
		HighlightColor:     w.HighlightColor,
		PrevWord:           ref(w.PrevWord),
		NextWord:           ref(w.NextWord),
		VerbalSubject:      ref(w.VerbalSubject),
		VerbalDirectObject: ref(w.VerbalDirectObject),
		HeadTerm:           ref(w.HeadTerm),
	}
}

// Deserialize rebuilds a live graph from a document.
//
// Reconstruction runs in two passes. The first creates every layer and word
// with its scalar fields, leaving relations holding the raw identifiers read
// from the document. The second resolves each relation against the words
// created in the first pass; an identifier with no matching word resolves to
// the empty (null) relation and reconstruction continues.
//
// Deserialize returns an error only when the document cannot form a graph at
// all: an empty or duplicated identifier. Use [DeserializeStrict] to reject
// dangling references, or [DeserializeWithReport] to list them.
func Deserialize(doc Document) (*sentence.Graph, error) {
	g, _, err := DeserializeWithReport(doc)
	return g, err
}

// DeserializeStrict is like [Deserialize] but fails with
// [ErrDanglingReference] if any relation does not resolve.
func DeserializeStrict(doc Document) (*sentence.Graph, error) {
	g, dangling, err := DeserializeWithReport(doc)
	if err != nil {
		return nil, err
	}
	if len(dangling) > 0 {
		return nil, fmt.Errorf("%w: %s (and %d more)", ErrDanglingReference, dangling[0], len(dangling)-1)
	}
	return g, nil
}

// DeserializeWithReport is like [Deserialize] and also returns every
// reference that resolved to null because its target was missing.
func DeserializeWithReport(doc Document) (*sentence.Graph, []DanglingRef, error) {
	g := sentence.New()

	for _, lr := range doc {
		l := &sentence.Layer{
			ID:            lr.ID,
			Type:          lr.Type,
			CompanionText: deref(lr.CompanionText),
			IsSelected:    lr.IsSelected,
			Parent:        deref(lr.Parent),
		}
		if lr.Order != nil {
			v := *lr.Order
			l.Order = &v
		}
		if err := g.AppendLayer(l); err != nil {
			return nil, nil, fmt.Errorf("layer %s: %w", lr.ID, err)
		}
		for _, wr := range lr.Words {
			if err := g.AddWord(l.ID, deserializeWord(wr)); err != nil {
				return nil, nil, fmt.Errorf("word %s: %w", wr.ID, err)
			}
		}
	}

	var dangling []DanglingRef
	resolve := func(owner, field string, target *string) {
		if *target == "" {
			return
		}
		if _, ok := g.Word(*target); !ok {
			dangling = append(dangling, DanglingRef{Owner: owner, Field: field, Target: *target})
			*target = ""
		}
	}
	for _, l := range g.Layers() {
		resolve(l.ID, "parent", &l.Parent)
		for _, w := range g.Words(l.ID) {
			for _, r := range w.Relations() {
				resolve(w.ID, r.Name, r.Target)
			}
		}
	}

	g.Sort()
	return g, dangling, nil
}

func deserializeWord(wr WordRecord) *sentence.Word {
	return &sentence.Word{
		ID:                 wr.ID,
		POS:                deref(wr.POS),
		Value:              wr.Value,
		IsSelected:         wr.IsSelected,
		IsHighlighted:      wr.IsHighlighted,
		HighlightColor:     wr.HighlightColor,
		PrevWord:           deref(wr.PrevWord),
		NextWord:           deref(wr.NextWord),
		VerbalSubject:      deref(wr.VerbalSubject),
		VerbalDirectObject: deref(wr.VerbalDirectObject),
		HeadTerm:           deref(wr.HeadTerm),
	}
}
