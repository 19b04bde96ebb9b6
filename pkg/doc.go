// Package pkg provides the core libraries for Sentree sentence annotation.
//
// # Overview
//
// Sentree models a sentence as an ordered collection of layers (sentences,
// clauses, phrases, associations), each holding words linked into a reading
// chain. Words carry grammatical relations to other words, and layers may
// hang beneath a word to expand it. The pkg directory is organized into
// three areas:
//
//  1. [sentence] - Domain model (words, layers, ordering, validation)
//  2. [io], [history] - Serialization and the undo/redo editor
//  3. [store], [errors], [observability] - Persistence and ambient plumbing
//
// # Architecture
//
// The typical data flow through Sentree:
//
//	JSON / TOML document
//	         ↓
//	    [io] package (Deserialize: two-pass id resolution)
//	         ↓
//	    [sentence] package (Graph: layers, words, dense order)
//	         ↓
//	    [history] package (Editor: edits, snapshots, undo/redo)
//	         ↓
//	    [io] Serialize → file or [store]
//
// # Quick Start
//
// Load a document, move a layer and undo the move:
//
//	import (
//	    "github.com/matzehuels/sentree/pkg/history"
//	    sio "github.com/matzehuels/sentree/pkg/io"
//	)
//
//	doc, _ := sio.ReadFile("sentence.json")
//	e := history.NewEditor(nil)
//	_ = e.ImportLayers(doc)
//
//	_ = e.SaveSnapshot()
//	_ = e.MoveLayerToIndex("clause-2", 0)
//	_ = e.Undo()
//
//	_ = sio.WriteFile(e.ExportLayers(), "sentence.toml")
//
// # Main Packages
//
// [sentence] - The arena graph. Relations are identifiers resolved through
// the graph, so documents round-trip without pointer cycles. Layer order is
// kept dense by [sentence.Graph.InsertLayerAtIndex] and
// [sentence.Graph.MoveLayerToIndex].
//
// [io] - Flat document form, JSON and TOML codecs, and deterministic
// snapshots via [io.Marshal].
//
// [history] - Linear undo/redo over serialized snapshots, the two-phase
// reset signal, and the Editor command surface.
//
// [store] - File, redis and null backends for keeping documents under keys.
//
// [errors] - Coded errors for the CLI boundary; [errors.Classify] maps
// sentinel errors of the other packages to codes.
//
// [observability] - Hooks for history and store events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/sentence/...     # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [sentence]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/sentence
// [io]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/io
// [history]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/history
// [store]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sentree/pkg/observability
package pkg
