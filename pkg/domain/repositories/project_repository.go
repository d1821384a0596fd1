package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// ProjectRepository provides access to project master data
type ProjectRepository interface {
	GetProject(id entities.ProjectID) (*entities.Project, error)
	GetAllProjects() ([]*entities.Project, error)
	LoadProjects(projects []*entities.Project) error
}
