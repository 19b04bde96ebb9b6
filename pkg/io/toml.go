package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlDocument wraps the layer list because a TOML document must be a table.
// Layers become [[layers]] and their words [[layers.words]]; null relations
// are left out because the encoder skips nil pointers.
type tomlDocument struct {
	Layers []LayerRecord `toml:"layers"`
}

// WriteTOML encodes a document as TOML and writes it to w.
func WriteTOML(doc Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(tomlDocument{Layers: doc}); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// ReadTOML decodes a TOML document from r. Missing relation keys decode as
// nil, matching JSON null.
func ReadTOML(r io.Reader) (Document, error) {
	var data tomlDocument
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return Document(data.Layers), nil
}

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadFile reads a document from path in the encoding implied by its
// extension.
func ReadFile(path string) (Document, error) {
	if FormatFromPath(path) == FormatJSON {
		return ImportJSON(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadTOML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile writes a document to path in the encoding implied by its
// extension.
func WriteFile(doc Document, path string) error {
	if FormatFromPath(path) == FormatJSON {
		return ExportJSON(doc, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTOML(doc, f)
}
