package legalai

import (
	"math"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// Validation is the outcome of structural checks on a coerced response.
// Errors make the response unusable; warnings ship with it.
type Validation struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

var editorNodeTypes = map[string]bool{
	doctree.TypeDoc:       true,
	doctree.TypeParagraph: true,
	doctree.TypeText:      true,
}

// Validate checks a model response against the original fragment. Unknown
// root types and total content loss are warnings; a missing content
// structure is an error.
func Validate(resp, original *doctree.Node) Validation {
	var errs, warns []string
	if resp == nil {
		errs = append(errs, "response is not a valid JSON object")
		return Validation{IsValid: false, Errors: errs}
	}

	if resp.Type != "" && !editorNodeTypes[resp.Type] {
		warns = append(warns, "response type may not be a standard editor node")
	}
	if resp.Content == nil && resp.Type != doctree.TypeText {
		errs = append(errs, "response must contain a content structure")
	}
	if len(doctree.ExtractText(original)) > 0 && len(doctree.ExtractText(resp)) == 0 {
		warns = append(warns, "response appears to have lost all content")
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// Confidence scores a response with fixed additive weights. The weights are
// tuning constants carried for behavioral stability, not calibrated
// probabilities.
func Confidence(req EditRequest, resp *doctree.Node) float64 {
	score := 0.5
	if resp != nil && resp.Type != "" {
		score += 0.2
	}
	respText := doctree.ExtractText(resp)
	if len(respText) > 0 {
		score += 0.2
	}
	if strings.Contains(strings.ToLower(req.Command), "rephrase") &&
		!strings.EqualFold(respText, doctree.ExtractText(req.Fragment)) {
		score += 0.1
	}
	return math.Min(score, 1.0)
}

// DiffChanges is a deliberately coarse changelog: one entry when extracted
// text differs, none otherwise. Attribute and mark changes with identical
// text report no change.
func DiffChanges(original, resp *doctree.Node) []string {
	if doctree.ExtractText(original) != doctree.ExtractText(resp) {
		return []string{"Text content modified"}
	}
	return []string{}
}
