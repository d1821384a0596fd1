package memory

import (
	"fmt"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/domain/repositories"
)

// OptionRepository provides in-memory procurement option storage, indexed by
// item code
type OptionRepository struct {
	options []entities.ProcurementOption
	byItem  map[entities.ItemCode][]int
	byID    map[entities.OptionID]int
}

// NewOptionRepository creates a new in-memory option repository
func NewOptionRepository(expectedOptions int) *OptionRepository {
	return &OptionRepository{
		options: make([]entities.ProcurementOption, 0, expectedOptions),
		byItem:  make(map[entities.ItemCode][]int),
		byID:    make(map[entities.OptionID]int, expectedOptions),
	}
}

// Verify interface compliance
var _ repositories.OptionRepository = (*OptionRepository)(nil)

// LoadOptions loads options into the repository
func (r *OptionRepository) LoadOptions(options []*entities.ProcurementOption) error {
	for _, opt := range options {
		if err := r.AddOption(*opt); err != nil {
			return err
		}
	}
	return nil
}

// AddOption adds an option to the repository
func (r *OptionRepository) AddOption(opt entities.ProcurementOption) error {
	if _, exists := r.byID[opt.OptionID]; exists {
		return fmt.Errorf("duplicate option: %s", opt.OptionID)
	}
	r.byID[opt.OptionID] = len(r.options)
	r.byItem[opt.ItemCode] = append(r.byItem[opt.ItemCode], len(r.options))
	r.options = append(r.options, opt)
	return nil
}

// GetOptionsForItem returns all options offered for an item code
func (r *OptionRepository) GetOptionsForItem(code entities.ItemCode) ([]*entities.ProcurementOption, error) {
	indices, exists := r.byItem[code]
	if !exists {
		return nil, nil
	}
	var options []*entities.ProcurementOption
	for _, idx := range indices {
		options = append(options, &r.options[idx])
	}
	return options, nil
}

// GetAllOptions returns all options
func (r *OptionRepository) GetAllOptions() ([]*entities.ProcurementOption, error) {
	var options []*entities.ProcurementOption
	for i := range r.options {
		options = append(options, &r.options[i])
	}
	return options, nil
}
