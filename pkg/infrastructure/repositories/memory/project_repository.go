package memory

import (
	"fmt"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/domain/repositories"
)

// ProjectRepository provides in-memory project storage
type ProjectRepository struct {
	projects []entities.Project
	index    map[entities.ProjectID]int
}

// NewProjectRepository creates a new in-memory project repository
func NewProjectRepository(expectedProjects int) *ProjectRepository {
	return &ProjectRepository{
		projects: make([]entities.Project, 0, expectedProjects),
		index:    make(map[entities.ProjectID]int, expectedProjects),
	}
}

// Verify interface compliance
var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// LoadProjects loads projects into the repository
func (r *ProjectRepository) LoadProjects(projects []*entities.Project) error {
	for _, p := range projects {
		if err := r.AddProject(*p); err != nil {
			return err
		}
	}
	return nil
}

// AddProject adds a project to the repository
func (r *ProjectRepository) AddProject(p entities.Project) error {
	if _, exists := r.index[p.ProjectID]; exists {
		return fmt.Errorf("duplicate project: %s", p.ProjectID)
	}
	r.index[p.ProjectID] = len(r.projects)
	r.projects = append(r.projects, p)
	return nil
}

// GetProject returns the project for an ID
func (r *ProjectRepository) GetProject(id entities.ProjectID) (*entities.Project, error) {
	idx, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("project not found: %s", id)
	}
	return &r.projects[idx], nil
}

// GetAllProjects returns all projects
func (r *ProjectRepository) GetAllProjects() ([]*entities.Project, error) {
	var projects []*entities.Project
	for i := range r.projects {
		projects = append(projects, &r.projects[i])
	}
	return projects, nil
}
