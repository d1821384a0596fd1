package entities

import "fmt"

// Priority weights are expressed on a 1-10 scale, 10 being most important.
const (
	MinPriorityWeight = 1
	MaxPriorityWeight = 10
)

// Project represents a project competing for the shared budget
type Project struct {
	ProjectID      ProjectID
	Name           string
	PriorityWeight int
}

// NewProject creates a project and validates its priority weight
func NewProject(id ProjectID, name string, priorityWeight int) (*Project, error) {
	if id == "" {
		return nil, fmt.Errorf("project id must not be empty")
	}
	if priorityWeight < MinPriorityWeight || priorityWeight > MaxPriorityWeight {
		return nil, fmt.Errorf("project %s: priority weight must be in [%d,%d], got %d",
			id, MinPriorityWeight, MaxPriorityWeight, priorityWeight)
	}
	return &Project{
		ProjectID:      id,
		Name:           name,
		PriorityWeight: priorityWeight,
	}, nil
}
