package io

// Document is the flat, identifier-keyed form of an annotation graph: the
// layer collection in order, each layer carrying its words in reading order.
// It holds no pointers into a live graph and is safe to copy, store and send.
type Document []LayerRecord

// LayerRecord is the stored form of a layer. Parent is the ID of the word the
// layer hangs beneath, or nil for a top-level layer.
type LayerRecord struct {
	ID            string       `json:"id" toml:"id"`
	Order         *int         `json:"order" toml:"order"`
	Type          string       `json:"type,omitempty" toml:"type,omitempty"`
	CompanionText *string      `json:"companionText" toml:"companionText"`
	IsSelected    bool         `json:"isSelected" toml:"isSelected"`
	Parent        *string      `json:"parent" toml:"parent"`
	Words         []WordRecord `json:"words" toml:"words"`
}

// WordRecord is the stored form of a word. Every relation is the ID of
// another word in the same document, or nil.
type WordRecord struct {
	ID             string  `json:"id" toml:"id"`
	POS            *string `json:"pos" toml:"pos"`
	Value          string  `json:"value" toml:"value"`
	Layer          string  `json:"layer" toml:"layer"`
	IsSelected     bool    `json:"isSelected" toml:"isSelected"`
	IsHighlighted  bool    `json:"isHighlighted" toml:"isHighlighted"`
	HighlightColor string  `json:"highlightColor" toml:"highlightColor"`

	PrevWord           *string `json:"prevWord" toml:"prevWord"`
	NextWord           *string `json:"nextWord" toml:"nextWord"`
	VerbalSubject      *string `json:"verbalSubject" toml:"verbalSubject"`
	VerbalDirectObject *string `json:"verbalDirectObject" toml:"verbalDirectObject"`
	HeadTerm           *string `json:"headTerm" toml:"headTerm"`
}

// WordCount returns the total number of word records in the document.
func (d Document) WordCount() int {
	n := 0
	for _, l := range d {
		n += len(l.Words)
	}
	return n
}

// ref converts an identifier field to its nullable stored form.
func ref(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// deref converts a nullable stored identifier back to the arena form.
func deref(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
