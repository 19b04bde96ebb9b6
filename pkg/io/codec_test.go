package io

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sentree/pkg/sentence"
)

// sampleGraph builds "The dog chased cats" with a nested phrase beneath the
// verb and every relation kind set at least once.
func sampleGraph(t *testing.T) *sentence.Graph {
	t.Helper()
	g := sentence.New()
	clause := &sentence.Layer{ID: "clause", Type: sentence.LayerTypeClause, CompanionText: "main clause"}
	require.NoError(t, g.InsertLayerAtIndex(clause, 0))

	words := []*sentence.Word{
		{ID: "the", Value: "The", POS: "article", HighlightColor: sentence.DefaultHighlightColor},
		{ID: "dog", Value: "dog", POS: "noun", IsHighlighted: true, HighlightColor: "#00FF00"},
		{ID: "chased", Value: "chased", POS: "verb", IsSelected: true},
		{ID: "cats", Value: "cats", POS: "noun"},
	}
	for i, w := range words {
		require.NoError(t, g.AddWord(clause.ID, w))
		if i > 0 {
			require.NoError(t, g.Link(words[i-1].ID, w.ID))
		}
	}
	words[0].HeadTerm = "dog"
	words[2].VerbalSubject = "dog"
	words[2].VerbalDirectObject = "cats"

	phrase := &sentence.Layer{ID: "phrase", Type: sentence.LayerTypePhrase, Parent: "chased", IsSelected: true}
	require.NoError(t, g.InsertLayerAtIndex(phrase, 1))
	require.NoError(t, g.AddWord(phrase.ID, &sentence.Word{ID: "quickly", Value: "quickly", POS: "adverb", HeadTerm: "chased"}))

	require.NoError(t, g.Validate())
	return g
}

func assertGraphsEqual(t *testing.T, want, got *sentence.Graph) {
	t.Helper()
	require.Equal(t, want.LayerCount(), got.LayerCount())
	require.Equal(t, want.WordCount(), got.WordCount())
	for i, wl := range want.Layers() {
		gl := got.Layers()[i]
		assert.Equal(t, *wl, *gl, "layer %s", wl.ID)
		for _, ww := range want.Words(wl.ID) {
			gw, ok := got.Word(ww.ID)
			require.True(t, ok, "word %s", ww.ID)
			assert.Equal(t, *ww, *gw, "word %s", ww.ID)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)
	doc := Serialize(g)

	got, err := Deserialize(doc)
	require.NoError(t, err)
	assertGraphsEqual(t, g, got)
	require.NoError(t, got.Validate())
	assert.Equal(t, doc, Serialize(got))
}

func TestSerializeDoesNotMutate(t *testing.T) {
	g := sampleGraph(t)
	before, err := Marshal(g)
	require.NoError(t, err)

	doc := Serialize(g)
	*doc[0].Order = 99
	doc[0].Words[0].Value = "changed"

	after, err := Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := Marshal(sampleGraph(t))
	require.NoError(t, err)
	b, err := Marshal(sampleGraph(t))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))

	g, err := Unmarshal(a)
	require.NoError(t, err)
	c, err := Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(c))
}

func TestSerializeFields(t *testing.T) {
	doc := Serialize(sampleGraph(t))
	require.Len(t, doc, 2)

	clause := doc[0]
	assert.Equal(t, "clause", clause.ID)
	assert.Equal(t, 0, *clause.Order)
	assert.Nil(t, clause.Parent)
	assert.Equal(t, "main clause", *clause.CompanionText)
	require.Len(t, clause.Words, 4)

	the := clause.Words[0]
	assert.Nil(t, the.PrevWord)
	assert.Equal(t, "dog", *the.NextWord)
	assert.Equal(t, "dog", *the.HeadTerm)
	assert.Equal(t, "clause", the.Layer)

	chased := clause.Words[2]
	assert.Equal(t, "dog", *chased.VerbalSubject)
	assert.Equal(t, "cats", *chased.VerbalDirectObject)

	phrase := doc[1]
	assert.Equal(t, "chased", *phrase.Parent)
	assert.Nil(t, phrase.CompanionText)
	assert.Equal(t, 5, doc.WordCount())
}

func TestDeserializeDangling(t *testing.T) {
	ghost := "ghost"
	doc := Serialize(sampleGraph(t))
	doc[0].Words[0].HeadTerm = &ghost
	doc[1].Parent = &ghost

	g, dangling, err := DeserializeWithReport(doc)
	require.NoError(t, err)
	assert.Len(t, dangling, 2)

	the, _ := g.Word("the")
	assert.Empty(t, the.HeadTerm)
	phrase, _ := g.Layer("phrase")
	assert.True(t, phrase.IsTopLevel())
	require.NoError(t, g.Validate())

	_, err = DeserializeStrict(doc)
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "empty layer id",
			doc:     Document{{ID: ""}},
			wantErr: sentence.ErrInvalidID,
		},
		{
			name:    "duplicate layer",
			doc:     Document{{ID: "a"}, {ID: "a"}},
			wantErr: sentence.ErrDuplicateID,
		},
		{
			name:    "duplicate word",
			doc:     Document{{ID: "a", Words: []WordRecord{{ID: "w"}, {ID: "w"}}}},
			wantErr: sentence.ErrDuplicateID,
		},
		{
			name:    "word id collides with layer",
			doc:     Document{{ID: "a", Words: []WordRecord{{ID: "a"}}}},
			wantErr: sentence.ErrDuplicateID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.doc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeserializeEmpty(t *testing.T) {
	g, err := Deserialize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.LayerCount())
	assert.Empty(t, Serialize(g))
}

func TestDeserializeSortsByOrder(t *testing.T) {
	zero, one := 0, 1
	g, err := Deserialize(Document{{ID: "b", Order: &one}, {ID: "a", Order: &zero}})
	require.NoError(t, err)
	assert.Equal(t, "a", g.Layers()[0].ID)
	require.NoError(t, g.Validate())
}

func TestJSONFile(t *testing.T) {
	doc := Serialize(sampleGraph(t))
	path := filepath.Join(t.TempDir(), "doc.json")

	require.NoError(t, ExportJSON(doc, path))
	got, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadJSONNulls(t *testing.T) {
	input := `[{"id":"l","order":0,"parent":null,"words":[
		{"id":"a","value":"dog","layer":"l","nextWord":"b","pos":null},
		{"id":"b","value":"runs","layer":"l","prevWord":"a","verbalSubject":"a"}]}]`
	doc, err := ReadJSON(bytes.NewBufferString(input))
	require.NoError(t, err)

	g, err := DeserializeStrict(doc)
	require.NoError(t, err)
	runs, _ := g.Word("b")
	assert.Equal(t, "a", runs.VerbalSubject)
	require.NoError(t, g.Validate())

	_, err = ReadJSON(bytes.NewBufferString(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestTOMLRoundTrip(t *testing.T) {
	doc := Serialize(sampleGraph(t))

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(doc, &buf))
	assert.Contains(t, buf.String(), "[[layers]]")
	assert.Contains(t, buf.String(), "[[layers.words]]")

	got, err := ReadTOML(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestFileFormats(t *testing.T) {
	doc := Serialize(sampleGraph(t))
	dir := t.TempDir()
	for _, name := range []string{"doc.json", "doc.toml", "DOC.TOML"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(doc, path))
		got, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, doc, got, name)
	}
	assert.Equal(t, FormatTOML, FormatFromPath("a.toml"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.txt"))
}

func TestExampleDocument(t *testing.T) {
	doc, err := ReadFile(filepath.Join("..", "..", "examples", "chased.json"))
	require.NoError(t, err)

	g, err := DeserializeStrict(doc)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	manner, ok := g.Layer("manner")
	require.True(t, ok)
	depth, err := g.Depth(manner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
	assert.Equal(t, doc, Serialize(g))
}
