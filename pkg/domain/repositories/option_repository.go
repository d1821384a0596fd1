package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// OptionRepository provides access to procurement options per item
type OptionRepository interface {
	GetOptionsForItem(code entities.ItemCode) ([]*entities.ProcurementOption, error)
	GetAllOptions() ([]*entities.ProcurementOption, error)
	LoadOptions(options []*entities.ProcurementOption) error
}
