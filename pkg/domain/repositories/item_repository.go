package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// ItemRepository provides access to unresolved item needs
type ItemRepository interface {
	GetAllItems() ([]*entities.Item, error)
	GetItemsForProject(project entities.ProjectID) ([]*entities.Item, error)
	LoadItems(items []*entities.Item) error
}
