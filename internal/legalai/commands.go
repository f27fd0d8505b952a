package legalai

// Command describes one entry in the fixed edit-command catalog surfaced to
// clients. The ID is what arrives back in EditRequest.Command, possibly
// embedded in longer free-form instructions.
type Command struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

var commandCatalog = []Command{
	{
		ID:          "rephrase",
		Label:       "Rephrase Clause",
		Description: "Rephrase this clause in formal legal language",
		Example:     "Rephrase this clause in formal contract language",
	},
	{
		ID:          "add_bullet",
		Label:       "Add Bullet Point",
		Description: "Add a bullet point with specific legal content",
		Example:     "Add a bullet point on jurisdictional limitations",
	},
	{
		ID:          "summarize",
		Label:       "Summarize Section",
		Description: "Summarize this section for client briefing",
		Example:     "Summarize this section for client briefing",
	},
	{
		ID:          "remove_redundant",
		Label:       "Remove Redundancy",
		Description: "Remove redundant legal terms",
		Example:     "Remove redundant legal terms",
	},
	{
		ID:          "strengthen",
		Label:       "Strengthen Language",
		Description: "Strengthen the legal language",
		Example:     "Strengthen the enforceability language",
	},
	{
		ID:          "simplify",
		Label:       "Simplify Language",
		Description: "Simplify complex legal language",
		Example:     "Simplify this clause for better readability",
	},
}

// Commands returns the catalog. Callers get a copy so the fixed set cannot
// be mutated through the returned slice.
func Commands() []Command {
	out := make([]Command, len(commandCatalog))
	copy(out, commandCatalog)
	return out
}
