package mutate

import "navtree/internal/model"

type Outcome string

const (
	OutcomeNone       Outcome = "none"
	OutcomeReordered  Outcome = "reordered"
	OutcomeReparented Outcome = "reparented"
	OutcomeAdded      Outcome = "added"
	OutcomeEdited     Outcome = "edited"
	OutcomeDeleted    Outcome = "deleted"
)

// Result carries the menu produced by a mutation. Menu is always a complete
// replacement; callers swap it in wholesale.
type Result struct {
	Menu    model.Menu
	Outcome Outcome
	ItemID  string

	// From and To are the source and destination containers of a move.
	From string
	To   string

	RemovedIDs []string
}

func (r Result) Changed() bool { return r.Outcome != OutcomeNone }

// Message is the user-facing confirmation for the outcome.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeReordered:
		return "Order updated"
	case OutcomeReparented:
		return "Moved to new parent"
	case OutcomeAdded:
		return "Item added"
	case OutcomeEdited:
		return "Item updated"
	case OutcomeDeleted:
		return "Item deleted"
	default:
		return ""
	}
}

// Payload is the event-log representation of the result.
func (r Result) Payload() map[string]any {
	p := map[string]any{
		"outcome": string(r.Outcome),
		"itemId":  r.ItemID,
	}
	if r.From != "" {
		p["from"] = r.From
	}
	if r.To != "" {
		p["to"] = r.To
	}
	if len(r.RemovedIDs) > 0 {
		p["removed"] = r.RemovedIDs
	}
	return p
}

func unchanged(m model.Menu, itemID string) Result {
	return Result{Menu: m, Outcome: OutcomeNone, ItemID: itemID}
}
