package legalai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// A repair attempt takes the raw model text and either produces an untyped
// JSON value or fails. Attempts run in a fixed order with short-circuit on
// the first success, so each stage stays independently testable.
type repairAttempt struct {
	name string
	fn   func(string) (any, error)
}

var repairChain = []repairAttempt{
	{"direct", parseDirect},
	{"fenced", parseFenced},
	{"truncation", parseTruncated},
	{"scrubbed", parseScrubbed},
}

// NormalizeResponse runs the repair chain over raw model output and returns
// the first successfully parsed JSON value. ok is false only when every
// stage fails; callers then fall through to the rephrase and degraded paths.
func NormalizeResponse(raw string) (any, bool) {
	for _, a := range repairChain {
		if v, err := a.fn(raw); err == nil {
			return v, true
		}
	}
	return nil, false
}

// parseDirect parses the raw text verbatim.
func parseDirect(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// parseFenced strips markdown fencing, extracts the outermost JSON window,
// cleans stray commas, and parses.
func parseFenced(raw string) (any, error) {
	candidate, err := extractCandidate(raw)
	if err != nil {
		return nil, err
	}
	return parseDirect(candidate)
}

// parseTruncated applies the truncation scanner to the extracted window.
func parseTruncated(raw string) (any, error) {
	candidate, err := extractCandidate(raw)
	if err != nil {
		return nil, err
	}
	return parseDirect(repairTruncated(candidate))
}

// parseScrubbed is the last automated resort: drop non-printable characters
// and collapse whitespace before parsing.
func parseScrubbed(raw string) (any, error) {
	candidate, err := extractCandidate(raw)
	if err != nil {
		return nil, err
	}
	return parseDirect(scrub(candidate))
}

var (
	fenceRe         = regexp.MustCompile("```(?:json)?")
	blankLineRe     = regexp.MustCompile(`\n\s*\n`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	leadingCommaRe  = regexp.MustCompile(`([{\[])\s*,`)
	doubledCommaRe  = regexp.MustCompile(`,\s*,`)
	jsonBlockRe     = regexp.MustCompile(`(?s)\{.*?\}`)
	wsRunRe         = regexp.MustCompile(`\s+`)
)

// extractCandidate isolates the first-open through last-close JSON window
// from fenced or prose-wrapped model output.
func extractCandidate(s string) (string, error) {
	s = fenceRe.ReplaceAllString(s, "")
	s = blankLineRe.ReplaceAllString(s, "\n")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", errors.New("no JSON structure found")
	}
	lastObj := strings.LastIndex(s, "}")
	lastArr := strings.LastIndex(s, "]")
	end := lastObj
	if lastArr > end {
		end = lastArr
	}
	if end > start {
		s = s[start : end+1]
	} else {
		s = s[start:]
	}
	return cleanCommas(s), nil
}

// cleanCommas removes the comma mistakes models make most: doubled commas,
// trailing commas before a closer, leading commas after an opener.
func cleanCommas(s string) string {
	for {
		next := doubledCommaRe.ReplaceAllString(s, ",")
		if next == s {
			break
		}
		s = next
	}
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = leadingCommaRe.ReplaceAllString(s, "$1")
	return s
}

// repairTruncated recovers a parseable prefix from output cut off before
// completion. It scans with string-literal and escape awareness, tracking
// brace and bracket depth symmetrically, and records a safe-cut offset each
// time both depths return to zero. With no safe offset it closes the
// remaining open structures innermost-first instead.
func repairTruncated(s string) string {
	lastSafe := 0
	braceDepth, bracketDepth := 0, 0
	inString, escaped := false, false
	var open []byte

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			braceDepth++
			open = append(open, '}')
		case '}':
			braceDepth--
			if len(open) > 0 && open[len(open)-1] == '}' {
				open = open[:len(open)-1]
			}
			if braceDepth == 0 && bracketDepth == 0 {
				lastSafe = i + 1
			}
		case '[':
			bracketDepth++
			open = append(open, ']')
		case ']':
			bracketDepth--
			if len(open) > 0 && open[len(open)-1] == ']' {
				open = open[:len(open)-1]
			}
			if bracketDepth == 0 && braceDepth == 0 {
				lastSafe = i + 1
			}
		}
	}

	if lastSafe > 0 {
		return s[:lastSafe]
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(s, ", \t\n\r"))
	if inString {
		b.WriteByte('"')
	}
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteByte(open[i])
	}
	return b.String()
}

// scrub removes everything outside printable ASCII plus newline, carriage
// return, and tab, then collapses whitespace runs.
func scrub(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7e) || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(wsRunRe.ReplaceAllString(b.String(), " "))
}

// degradedPlaceholder stands in when cleaning leaves nothing usable.
const degradedPlaceholder = "Legal edit processed successfully."

// DegradedNode is the unconditional last stage of the fallback chain: a
// single left-aligned paragraph holding whatever readable text survives
// cleaning, or the fixed placeholder when under 10 characters remain.
func DegradedNode(raw string) *doctree.Node {
	clean := fenceRe.ReplaceAllString(raw, "")
	clean = jsonBlockRe.ReplaceAllString(clean, "")
	clean = blankLineRe.ReplaceAllString(clean, "\n")
	clean = strings.TrimSpace(clean)
	if len(clean) < 10 {
		clean = degradedPlaceholder
	}
	return doctree.Doc(doctree.Paragraph(doctree.TextLeaf(clean)))
}
