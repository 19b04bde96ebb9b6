// Package io converts annotation graphs to and from their flat document
// form, and encodes documents as JSON or TOML.
//
// # Overview
//
// A live [sentence.Graph] keeps every relation as an identifier resolved
// through the graph. A [Document] is the same information laid out as plain
// records, suitable for storage, transport and undo history:
//
//	[
//	  {
//	    "id": "l1", "order": 0, "companionText": null,
//	    "isSelected": false, "parent": null,
//	    "words": [
//	      {"id": "w1", "pos": "noun", "value": "dog", "layer": "l1",
//	       "prevWord": null, "nextWord": "w2", "headTerm": null,
//	       "verbalSubject": null, "verbalDirectObject": null, ...}
//	    ]
//	  }
//	]
//
// # Serialize and Deserialize
//
// [Serialize] walks the layer collection in order and writes each
// relation as an identifier. [Deserialize] rebuilds the graph in two passes:
// create every entity, then resolve every relation. A word's owning layer is
// the layer record that encloses it; the "layer" field of a word record is
// written for readers of the document and ignored on input.
//
// Round trip: for any graph without dangling references,
// Deserialize(Serialize(g)) has the same identifiers, scalar values and
// relations as g.
//
// # Dangling References
//
// A relation naming an identifier absent from the document resolves to null
// and deserialization continues. [DeserializeWithReport] lists every such
// reference and [DeserializeStrict] turns the first into an error.
//
// # Encodings
//
// [Marshal] produces compact, deterministic JSON for snapshots.
// [ReadJSON]/[WriteJSON] and [ImportJSON]/[ExportJSON] work on readers and
// files; [ReadTOML]/[WriteTOML] offer a TOML rendition where null fields are
// omitted. [ReadFile] and [WriteFile] pick the encoding from the extension.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the same
// graph, but not with concurrent modifications to it.
package io
