package legalai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

func coerceJSON(t *testing.T, raw string) *doctree.Node {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return Coerce(v)
}

func TestCoerce_ArrayBecomesDocContent(t *testing.T) {
	n := coerceJSON(t, `[{"type":"paragraph","content":[{"type":"text","text":"a"}]}]`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.Len(t, n.Content, 1)
	assert.Equal(t, doctree.TypeParagraph, n.Content[0].Type)
	assert.Equal(t, "a", doctree.ExtractText(n))
}

func TestCoerce_ContentWithoutType(t *testing.T) {
	n := coerceJSON(t, `{"content":[{"type":"paragraph"}]}`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.Len(t, n.Content, 1)
	assert.Equal(t, doctree.TypeParagraph, n.Content[0].Type)
}

func TestCoerce_BareObjectGetsWrapped(t *testing.T) {
	n := coerceJSON(t, `{"text":"orphan"}`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.Len(t, n.Content, 1)
	assert.Equal(t, "orphan", n.Content[0].Text)
}

func TestCoerce_WrongRootTypeKeepsContent(t *testing.T) {
	n := coerceJSON(t, `{"type":"paragraph","content":[{"type":"text","text":"x"}]}`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	assert.Equal(t, "x", doctree.ExtractText(n))
}

func TestCoerce_WrongRootTypeWithoutContentWrapsNode(t *testing.T) {
	n := coerceJSON(t, `{"type":"text","text":"loose"}`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.Len(t, n.Content, 1)
	assert.Equal(t, doctree.TypeText, n.Content[0].Type)
	assert.Equal(t, "loose", n.Content[0].Text)
}

func TestCoerce_WellFormedDocPassesThrough(t *testing.T) {
	n := coerceJSON(t, `{"type":"doc","content":[{"type":"paragraph","attrs":{"textAlign":"left"}}]}`)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.Len(t, n.Content, 1)
	assert.Equal(t, "left", n.Content[0].Attrs["textAlign"])
}

func TestCoerce_NilBecomesEmptyDoc(t *testing.T) {
	n := Coerce(nil)
	require.Equal(t, doctree.TypeDoc, n.Type)
	require.NotNil(t, n.Content)
	assert.Empty(t, n.Content)
}

func TestCoerce_Idempotent(t *testing.T) {
	inputs := []string{
		`[{"type":"paragraph"}]`,
		`{"content":[]}`,
		`{"type":"heading","content":[{"type":"text","text":"t"}]}`,
		`{"type":"doc","content":[]}`,
	}
	for _, raw := range inputs {
		var v any
		require.NoError(t, json.Unmarshal([]byte(raw), &v))
		once := Coerce(v)

		b, err := json.Marshal(once)
		require.NoError(t, err)
		var again any
		require.NoError(t, json.Unmarshal(b, &again))
		twice := Coerce(again)

		b2, err := json.Marshal(twice)
		require.NoError(t, err)
		assert.JSONEq(t, string(b), string(b2), "input %s", raw)
	}
}

func TestCoerce_RootAlwaysSerializesContentArray(t *testing.T) {
	b, err := json.Marshal(Coerce(nil))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"doc","content":[]}`, string(b))
}

func TestCoerceNode(t *testing.T) {
	assert.Equal(t, doctree.TypeDoc, CoerceNode(nil).Type)

	para := doctree.Paragraph(doctree.TextLeaf("p"))
	wrapped := CoerceNode(para)
	require.Equal(t, doctree.TypeDoc, wrapped.Type)
	require.Len(t, wrapped.Content, 1)
	assert.Same(t, para, wrapped.Content[0])

	d := doctree.Doc(para)
	assert.Same(t, d, CoerceNode(d))
}
