package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sentree/pkg/sentence"
)

// Unmarshal decodes JSON produced by [Marshal] and rebuilds the graph with
// [Deserialize].
func Unmarshal(data []byte) (*sentence.Graph, error) {
	doc, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Deserialize(doc)
}

// ReadJSON decodes a JSON document from r.
//
// The input must be a JSON array of layer records:
//
//	[
//	  {"id": "l1", "order": 0, "parent": null, "words": [
//	    {"id": "w1", "value": "dog", "layer": "l1", "nextWord": "w2"},
//	    {"id": "w2", "value": "runs", "layer": "l1", "prevWord": "w1",
//	     "verbalSubject": "w1"}
//	  ]}
//	]
//
// ReadJSON only checks the encoding. References are resolved by
// [Deserialize]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ImportJSON reads a JSON document from the file at path.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
