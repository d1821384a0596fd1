package entities

// UnschedulableReason explains why an item received no decision in a proposal
type UnschedulableReason int

const (
	// NoFeasibleWindow means no option/time pair yields a purchase time >= 1
	NoFeasibleWindow UnschedulableReason = iota
	// BudgetRestricted means feasible variables existed but none fit the budget
	BudgetRestricted
)

// String method for UnschedulableReason enum
func (r UnschedulableReason) String() string {
	switch r {
	case NoFeasibleWindow:
		return "NO_FEASIBLE_WINDOW"
	case BudgetRestricted:
		return "BUDGET_RESTRICTED"
	default:
		return "Unknown"
	}
}

// UnschedulableItem reports an item the run could not schedule. This is part
// of the normal result breakdown, not an error.
type UnschedulableItem struct {
	ProjectID ProjectID
	ItemCode  ItemCode
	Reason    UnschedulableReason
}
