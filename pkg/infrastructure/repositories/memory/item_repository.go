package memory

import (
	"fmt"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/domain/repositories"
)

// ItemRepository provides in-memory item storage
type ItemRepository struct {
	items []entities.Item
	index map[string]int
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items: make([]entities.Item, 0, expectedItems),
		index: make(map[string]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		if err := r.AddItem(*item); err != nil {
			return err
		}
	}
	return nil
}

// AddItem adds an item to the repository. Each (project, item code) pair may
// appear only once.
func (r *ItemRepository) AddItem(item entities.Item) error {
	key := item.Key()
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("duplicate item: %s", key)
	}
	r.index[key] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// GetItem returns the item for a project and item code
func (r *ItemRepository) GetItem(project entities.ProjectID, code entities.ItemCode) (*entities.Item, error) {
	idx, exists := r.index[string(project)+"|"+string(code)]
	if !exists {
		return nil, fmt.Errorf("item not found: %s/%s", project, code)
	}
	return &r.items[idx], nil
}

// GetAllItems returns all items
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}

// GetItemsForProject returns the items belonging to one project
func (r *ItemRepository) GetItemsForProject(project entities.ProjectID) ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		if r.items[i].ProjectID == project {
			items = append(items, &r.items[i])
		}
	}
	return items, nil
}
