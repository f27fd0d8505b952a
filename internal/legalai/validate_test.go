package legalai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

func textDoc(s string) *doctree.Node {
	return doctree.Doc(doctree.Paragraph(doctree.TextLeaf(s)))
}

func TestValidate_WellFormedResponse(t *testing.T) {
	v := Validate(textDoc("after"), textDoc("before"))
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func TestValidate_NilResponse(t *testing.T) {
	v := Validate(nil, textDoc("before"))
	require.False(t, v.IsValid)
	assert.Contains(t, v.Errors[0], "not a valid JSON object")
}

func TestValidate_UnknownTypeWarns(t *testing.T) {
	resp := &doctree.Node{Type: "heading", Content: []*doctree.Node{}}
	v := Validate(resp, textDoc("before"))
	assert.True(t, v.IsValid)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "standard editor node")
}

func TestValidate_ContentLossWarns(t *testing.T) {
	v := Validate(doctree.Doc(), textDoc("the original clause"))
	assert.True(t, v.IsValid)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "lost all content")
}

func TestValidate_EmptyOriginalNoLossWarning(t *testing.T) {
	v := Validate(doctree.Doc(), doctree.Doc())
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Warnings)
}

func TestConfidence_Weights(t *testing.T) {
	frag := textDoc("original")

	// Bare node: base score only.
	assert.InDelta(t, 0.5, Confidence(EditRequest{Command: "summarize", Fragment: frag}, &doctree.Node{}), 1e-9)

	// Typed but empty: +0.2.
	assert.InDelta(t, 0.7, Confidence(EditRequest{Command: "summarize", Fragment: frag}, doctree.Doc()), 1e-9)

	// Typed with text: +0.2 +0.2.
	assert.InDelta(t, 0.9, Confidence(EditRequest{Command: "summarize", Fragment: frag}, textDoc("revised")), 1e-9)

	// Rephrase command with changed text: +0.1 more, clamped at 1.0.
	assert.InDelta(t, 1.0, Confidence(EditRequest{Command: "Please Rephrase this", Fragment: frag}, textDoc("revised")), 1e-9)

	// Rephrase command with unchanged text earns no rephrase bonus.
	assert.InDelta(t, 0.9, Confidence(EditRequest{Command: "rephrase", Fragment: frag}, textDoc("original")), 1e-9)

	// Case-only differences count as unchanged.
	assert.InDelta(t, 0.9, Confidence(EditRequest{Command: "rephrase", Fragment: frag}, textDoc("ORIGINAL")), 1e-9)
}

func TestConfidence_MonotoneUnderImprovements(t *testing.T) {
	frag := textDoc("original")
	req := EditRequest{Command: "rephrase", Fragment: frag}

	scores := []float64{
		Confidence(req, &doctree.Node{}),
		Confidence(req, doctree.Doc()),
		Confidence(req, textDoc("revised")),
	}
	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i], scores[i-1])
	}
}

func TestDiffChanges(t *testing.T) {
	before := textDoc("alpha")

	changes := DiffChanges(before, textDoc("beta"))
	require.Len(t, changes, 1)
	assert.Equal(t, "Text content modified", changes[0])

	same := DiffChanges(before, textDoc("alpha"))
	require.NotNil(t, same)
	assert.Empty(t, same)
}

func TestDiffChanges_AttrOnlyChangeReportsNothing(t *testing.T) {
	before := textDoc("alpha")
	after := doctree.Doc(&doctree.Node{
		Type:    doctree.TypeParagraph,
		Attrs:   map[string]any{"textAlign": "right"},
		Content: []*doctree.Node{doctree.TextLeaf("alpha")},
	})
	assert.Empty(t, DiffChanges(before, after))
}
