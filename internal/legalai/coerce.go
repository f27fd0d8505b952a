package legalai

import (
	"encoding/json"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// Coerce forces any parsed JSON value into the canonical editor root: an
// object of type "doc" whose content is an array. It is total over its
// input domain, including nil, and idempotent.
func Coerce(v any) *doctree.Node {
	shaped := ensureRoot(coerceShape(v), v)
	b, err := json.Marshal(shaped)
	if err != nil {
		return doctree.Doc()
	}
	var n doctree.Node
	if err := json.Unmarshal(b, &n); err != nil {
		return doctree.Doc()
	}
	if n.Content == nil {
		n.Content = []*doctree.Node{}
	}
	return &n
}

// coerceShape applies the shape rules in order. Only the first matching
// rule fires; anything it misses the final safety net catches.
func coerceShape(v any) map[string]any {
	switch val := v.(type) {
	case []any:
		return map[string]any{"type": doctree.TypeDoc, "content": val}
	case map[string]any:
		_, hasType := val["type"]
		_, hasContent := val["content"]
		switch {
		case hasContent && !hasType:
			return map[string]any{"type": doctree.TypeDoc, "content": val["content"]}
		case !hasType && !hasContent:
			return map[string]any{"type": doctree.TypeDoc, "content": []any{val}}
		case val["type"] != doctree.TypeDoc:
			if c, ok := val["content"]; ok && c != nil {
				return map[string]any{"type": doctree.TypeDoc, "content": c}
			}
			return map[string]any{"type": doctree.TypeDoc, "content": []any{val}}
		default:
			return val
		}
	default:
		return nil
	}
}

// ensureRoot is the final safety net: whatever path shaping took, the
// result must be a "doc" whose content is an array.
func ensureRoot(shaped map[string]any, orig any) map[string]any {
	if shaped != nil {
		if t, _ := shaped["type"].(string); t == doctree.TypeDoc {
			if _, ok := shaped["content"].([]any); ok {
				return shaped
			}
		}
	}
	var content []any
	if shaped != nil {
		if c, ok := shaped["content"].([]any); ok {
			content = c
		}
	}
	if content == nil {
		switch {
		case orig == nil:
			content = []any{}
		default:
			if arr, ok := orig.([]any); ok {
				content = arr
			} else {
				content = []any{orig}
			}
		}
	}
	return map[string]any{"type": doctree.TypeDoc, "content": content}
}

// CoerceNode wraps an already-typed node under a document root when it is
// not one. Used on the rephrase fallback path where the spliced fragment
// may be a bare paragraph.
func CoerceNode(n *doctree.Node) *doctree.Node {
	if n == nil {
		return doctree.Doc()
	}
	if n.Type == doctree.TypeDoc {
		if n.Content == nil {
			n.Content = []*doctree.Node{}
		}
		return n
	}
	return doctree.Doc(n)
}
