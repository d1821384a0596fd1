package entities

import "fmt"

// RelationKind represents the kind of a cross-item dependency
type RelationKind int

const (
	// Blocks means the target item cannot proceed until the source is delivered
	Blocks RelationKind = iota
	// Feeds means the source item supplies material or output to the target
	Feeds
)

// String method for RelationKind enum
func (k RelationKind) String() string {
	switch k {
	case Blocks:
		return "Blocks"
	case Feeds:
		return "Feeds"
	default:
		return "Unknown"
	}
}

// ParseRelationKind parses a relation kind from its textual form
func ParseRelationKind(s string) (RelationKind, error) {
	switch s {
	case "blocks", "Blocks":
		return Blocks, nil
	case "feeds", "Feeds":
		return Feeds, nil
	default:
		return 0, fmt.Errorf("unknown relation kind: %q", s)
	}
}

// ItemRelation represents a directed dependency between two item codes. It
// feeds the dependency graph used for critical-path reporting and never
// constrains the optimization model.
type ItemRelation struct {
	From ItemCode
	To   ItemCode
	Kind RelationKind
}

// NewItemRelation creates a relation and validates its endpoints
func NewItemRelation(from, to ItemCode, kind RelationKind) (*ItemRelation, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("relation endpoints must not be empty")
	}
	if from == to {
		return nil, fmt.Errorf("relation %s->%s: endpoints must differ", from, to)
	}
	return &ItemRelation{From: from, To: to, Kind: kind}, nil
}
