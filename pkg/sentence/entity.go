package sentence

import "github.com/google/uuid"

// DefaultHighlightColor is the highlight color given to new words.
const DefaultHighlightColor = "#FDD835"

// Layer types recognized by the editor. The field is a free-form tag and
// other values are stored as-is.
const (
	LayerTypeSentence    = "sentence"
	LayerTypeClause      = "clause"
	LayerTypePhrase      = "phrase"
	LayerTypeAssociation = "association"
)

// IDFunc generates entity identifiers. It defaults to UUID v7 strings and
// may be replaced in tests with a deterministic generator.
var IDFunc = newID

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Word is a single annotated token.
//
// Relation fields hold the identifier of another word in the same graph, or
// the empty string when unset. POS and the grammatical roles are opaque
// labels assigned by the editing surface.
type Word struct {
	ID    string
	POS   string
	Value string
	Layer string // owning layer ID, set by Graph.AddWord

	IsSelected     bool
	IsHighlighted  bool
	HighlightColor string

	PrevWord string
	NextWord string

	VerbalSubject      string
	VerbalDirectObject string

	HeadTerm string
}

// NewWord returns an unattached word with a fresh identifier.
func NewWord(value string) *Word {
	return &Word{
		ID:             IDFunc(),
		Value:          value,
		HighlightColor: DefaultHighlightColor,
	}
}

// Relations returns the word's relation fields keyed by name, in a fixed
// order. Empty relations are included.
func (w *Word) Relations() []Relation {
	return []Relation{
		{Name: "prevWord", Target: &w.PrevWord},
		{Name: "nextWord", Target: &w.NextWord},
		{Name: "headTerm", Target: &w.HeadTerm},
		{Name: "verbalSubject", Target: &w.VerbalSubject},
		{Name: "verbalDirectObject", Target: &w.VerbalDirectObject},
	}
}

// Relation names one identifier-valued field of a word.
type Relation struct {
	Name   string
	Target *string
}

// Layer is an ordered group of words, optionally nested beneath a word of
// another layer.
//
// The zero Order (nil) means the layer has not been placed yet.
type Layer struct {
	ID            string
	Order         *int
	Type          string
	CompanionText string
	IsSelected    bool

	Parent string   // word ID, empty for a top-level layer
	Words  []string // word IDs in reading order
}

// NewLayer returns an unplaced, empty layer with a fresh identifier.
func NewLayer() *Layer {
	return &Layer{ID: IDFunc()}
}

// OrderValue returns the layer's order and whether it has been placed.
func (l *Layer) OrderValue() (int, bool) {
	if l.Order == nil {
		return 0, false
	}
	return *l.Order, true
}

func (l *Layer) setOrder(i int) {
	l.Order = &i
}

// IsTopLevel reports whether the layer is not nested beneath a word.
func (l *Layer) IsTopLevel() bool { return l.Parent == "" }
