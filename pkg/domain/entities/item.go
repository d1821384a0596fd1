package entities

import "fmt"

// ItemCode represents a unique item identifier shared across projects
type ItemCode string

// ProjectID represents a unique project identifier
type ProjectID string

// Quantity represents an integer quantity value for discrete procurement units
type Quantity int64

// Item represents a scheduled need for a quantity of an item within a project.
// DeliveryWindow holds candidate delivery times as day offsets from the run
// anchor date; only offsets >= 1 are usable.
type Item struct {
	ItemCode       ItemCode
	ProjectID      ProjectID
	Description    string
	Quantity       Quantity
	DeliveryWindow []int
}

// NewItem creates an item and validates its fields
func NewItem(code ItemCode, project ProjectID, description string, qty Quantity, window []int) (*Item, error) {
	if code == "" {
		return nil, fmt.Errorf("item code must not be empty")
	}
	if project == "" {
		return nil, fmt.Errorf("item %s: project id must not be empty", code)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("item %s: quantity must be positive, got %d", code, qty)
	}
	if len(window) == 0 {
		return nil, fmt.Errorf("item %s: delivery window must not be empty", code)
	}
	return &Item{
		ItemCode:       code,
		ProjectID:      project,
		Description:    description,
		Quantity:       qty,
		DeliveryWindow: window,
	}, nil
}

// Key returns the identity of this item within its project. Two projects may
// schedule the same item code; each is a distinct planning line.
func (i *Item) Key() string {
	return string(i.ProjectID) + "|" + string(i.ItemCode)
}
