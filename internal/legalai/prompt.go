package legalai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SystemRole is the fixed instruction set the model operates under. It is an
// immutable process-wide value, not derived from any request.
type SystemRole struct {
	Role         string
	Rules        []string
	OutputFormat string
}

// DefaultSystemRole is the legal-editing mandate used for every edit.
var DefaultSystemRole = SystemRole{
	Role: "You are an AI legal assistant working for a law firm's document editor. " +
		"Your responsibility is to modify ProseMirror JSON fragments according to the lawyer's command.",
	Rules: []string{
		"Always preserve the original legal meaning, obligations, and enforceability",
		"Use formal, professional legal language (contracts, agreements, briefs)",
		"Do not add creative or speculative information",
		"Only restructure, rephrase, or summarize within the legal context",
		"Return strictly valid JSON conforming to the provided schema",
		"Output only the modified JSON object, nothing else",
		"CRITICAL: Return ONLY valid JSON - no markdown, no explanations, no code blocks",
		`MANDATORY: Always start your response with {"type": "doc", "content": [`,
		"MANDATORY: Always end your response with ]}",
		"MANDATORY: Include 'content': [...] array with the modified content",
		"Ensure all JSON syntax is correct (proper commas, brackets, quotes)",
		"Do not truncate or cut off the JSON response",
		"Complete the entire JSON object before ending",
		"Maintain proper legal formatting and structure",
		"Preserve all legal citations and references",
		"Keep all numerical values, dates, and legal terms accurate",
	},
	OutputFormat: "Valid ProseMirror JSON object",
}

// BuildPrompt assembles the full model prompt. Deterministic for identical
// input: role, rules, optional type/context, quoted command, the original
// fragment as indented JSON, then the output-format reminder.
func BuildPrompt(role SystemRole, req EditRequest) (string, error) {
	fragJSON, err := marshalIndentNoEscape(req.Fragment)
	if err != nil {
		return "", fmt.Errorf("marshal fragment: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(role.Role)
	sb.WriteString("\n\nRules:\n")
	for _, rule := range role.Rules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}

	if req.DocumentType != "" {
		sb.WriteString("\nDocument Type: ")
		sb.WriteString(strings.ToUpper(string(req.DocumentType)))
		sb.WriteString("\n")
	}
	if req.DocumentContext != "" {
		sb.WriteString("\nDocument Context: ")
		sb.WriteString(req.DocumentContext)
		sb.WriteString("\n")
	}

	sb.WriteString("\nUser Command: ")
	sb.WriteString(fmt.Sprintf("%q", req.Command))
	sb.WriteString("\n\nOriginal JSON Content:\n")
	sb.WriteString(fragJSON)
	sb.WriteString("\n\n")
	sb.WriteString(outputReminder)

	return sb.String(), nil
}

const outputReminder = `Please modify the above JSON content according to the user command while following all the rules.

CRITICAL REQUIREMENTS - MUST FOLLOW EXACTLY:
1. Return ONLY a complete, valid JSON object
2. The JSON must start with { and end with }
3. MANDATORY: Include "type": "doc" as the first field
4. MANDATORY: Include "content": [...] array with the modified content
5. Do NOT include any markdown formatting (no code blocks)
6. Do NOT include any explanations or text outside the JSON
7. The response must be parseable JSON that can be directly used in the editor

REQUIRED JSON STRUCTURE - COPY THIS EXACT FORMAT:
{
  "type": "doc",
  "content": [
    ...your modified content here, keeping all the original structure and formatting...
  ]
}

EXAMPLE - If the original content was a paragraph, your response should look like:
{
  "type": "doc",
  "content": [
    {
      "type": "paragraph",
      "attrs": { "lineHeight": "1.5", "textAlign": "left" },
      "content": [
        {
          "type": "text",
          "text": "Your modified legal text here",
          "marks": []
        }
      ]
    }
  ]
}

REMINDER: Your response MUST start with {"type": "doc", "content": [ and end with ]}. Do not deviate from this format.`

// marshalIndentNoEscape renders v as indented JSON without escaping <, >, &,
// so the model sees the fragment exactly as the editor stores it.
func marshalIndentNoEscape(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
