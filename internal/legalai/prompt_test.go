package legalai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

func TestBuildPrompt_Sections(t *testing.T) {
	req := EditRequest{
		Fragment:        textDoc("The party of the first part"),
		Command:         "rephrase",
		DocumentContext: "Master services agreement, section 4",
		DocumentType:    DocTypeContract,
	}

	prompt, err := BuildPrompt(DefaultSystemRole, req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, DefaultSystemRole.Role))
	assert.Contains(t, prompt, "Rules:\n- ")
	assert.Contains(t, prompt, "Document Type: CONTRACT")
	assert.Contains(t, prompt, "Document Context: Master services agreement, section 4")
	assert.Contains(t, prompt, `User Command: "rephrase"`)
	assert.Contains(t, prompt, "Original JSON Content:\n")
	assert.Contains(t, prompt, `"The party of the first part"`)
	assert.True(t, strings.HasSuffix(prompt, outputReminder))
}

func TestBuildPrompt_SectionOrder(t *testing.T) {
	req := EditRequest{
		Fragment:     textDoc("x"),
		Command:      "simplify",
		DocumentType: DocTypeBrief,
	}
	prompt, err := BuildPrompt(DefaultSystemRole, req)
	require.NoError(t, err)

	typeIdx := strings.Index(prompt, "Document Type:")
	cmdIdx := strings.Index(prompt, "User Command:")
	jsonIdx := strings.Index(prompt, "Original JSON Content:")
	reminderIdx := strings.Index(prompt, "CRITICAL REQUIREMENTS")
	require.True(t, typeIdx > 0 && cmdIdx > typeIdx && jsonIdx > cmdIdx && reminderIdx > jsonIdx)
}

func TestBuildPrompt_OptionalSectionsOmitted(t *testing.T) {
	prompt, err := BuildPrompt(DefaultSystemRole, EditRequest{Fragment: textDoc("x"), Command: "simplify"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Document Type:")
	assert.NotContains(t, prompt, "Document Context:")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := EditRequest{
		Fragment: doctree.Doc(
			doctree.Paragraph(doctree.TextLeaf("a")),
			doctree.Paragraph(doctree.TextLeaf("b")),
		),
		Command:      "summarize",
		DocumentType: DocTypeMotion,
	}
	first, err := BuildPrompt(DefaultSystemRole, req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := BuildPrompt(DefaultSystemRole, req)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestBuildPrompt_FragmentNotHTMLEscaped(t *testing.T) {
	req := EditRequest{
		Fragment: textDoc(`payment > $1,000 & < $5,000`),
		Command:  "strengthen",
	}
	prompt, err := BuildPrompt(DefaultSystemRole, req)
	require.NoError(t, err)
	assert.Contains(t, prompt, `payment > $1,000 & < $5,000`)
	assert.NotContains(t, prompt, `>`)
}
