package domain

// Suggestion is a proposed, non-binding remediation for a conflict.
// Suggestions are regenerated on every detection run while the conflict is
// active; applying one is the caller's responsibility.
type Suggestion struct {
	ID          string
	ConflictID  string
	Kind        SuggestionKind
	Title       string
	Description string
	Impact      Impact
	Rank        int
}
