package optimizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/planwise/procure/pkg/domain/entities"
	"github.com/planwise/procure/pkg/domain/repositories"
)

// Snapshot is the read-only input set one run operates on. It is taken once at
// run start; strategies solving in parallel share it without coordination.
type Snapshot struct {
	// Today anchors all day offsets (delivery windows, budget periods)
	Today     time.Time
	Items     []*entities.Item
	Projects  map[entities.ProjectID]*entities.Project
	Options   map[entities.ItemCode][]*entities.ProcurementOption
	Budgets   []entities.BudgetPeriod
	Rates     []entities.ExchangeRate
	Relations []entities.ItemRelation
}

// TakeSnapshot collects a run's inputs from the collaborator repositories
func TakeSnapshot(
	today time.Time,
	itemRepo repositories.ItemRepository,
	projectRepo repositories.ProjectRepository,
	optionRepo repositories.OptionRepository,
	budgetRepo repositories.BudgetRepository,
	rateRepo repositories.RateRepository,
	relationRepo repositories.RelationRepository,
) (*Snapshot, error) {
	items, err := itemRepo.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	projects, err := projectRepo.GetAllProjects()
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	options, err := optionRepo.GetAllOptions()
	if err != nil {
		return nil, fmt.Errorf("loading options: %w", err)
	}
	budgets, err := budgetRepo.GetBudgetPeriods()
	if err != nil {
		return nil, fmt.Errorf("loading budget periods: %w", err)
	}
	rates, err := rateRepo.GetRates()
	if err != nil {
		return nil, fmt.Errorf("loading exchange rates: %w", err)
	}
	var relations []entities.ItemRelation
	if relationRepo != nil {
		relations, err = relationRepo.GetRelations()
		if err != nil {
			return nil, fmt.Errorf("loading relations: %w", err)
		}
	}

	snap := &Snapshot{
		Today:     today,
		Items:     items,
		Projects:  make(map[entities.ProjectID]*entities.Project, len(projects)),
		Options:   make(map[entities.ItemCode][]*entities.ProcurementOption),
		Budgets:   budgets,
		Rates:     rates,
		Relations: relations,
	}
	for _, p := range projects {
		snap.Projects[p.ProjectID] = p
	}
	for _, o := range options {
		snap.Options[o.ItemCode] = append(snap.Options[o.ItemCode], o)
	}
	snap.normalizeOrdering()
	return snap, nil
}

// normalizeOrdering sorts the snapshot's collections by stable keys so model
// construction is deterministic regardless of repository iteration order
func (s *Snapshot) normalizeOrdering() {
	sort.Slice(s.Items, func(i, j int) bool {
		if s.Items[i].ProjectID != s.Items[j].ProjectID {
			return s.Items[i].ProjectID < s.Items[j].ProjectID
		}
		return s.Items[i].ItemCode < s.Items[j].ItemCode
	})
	for code := range s.Options {
		opts := s.Options[code]
		sort.Slice(opts, func(i, j int) bool {
			return opts[i].OptionID < opts[j].OptionID
		})
	}
	entities.SortBudgetPeriods(s.Budgets)
}

// Validate rejects malformed inputs before any model construction. Payment
// terms, priority weights, and delivery windows are checked here so the solver
// never sees bad data.
func (s *Snapshot) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("snapshot has no items")
	}
	for _, item := range s.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %s: quantity must be positive", item.Key())
		}
		if len(item.DeliveryWindow) == 0 {
			return fmt.Errorf("item %s: delivery window must not be empty", item.Key())
		}
		if _, ok := s.Projects[item.ProjectID]; !ok {
			return fmt.Errorf("item %s: unknown project %s", item.ItemCode, item.ProjectID)
		}
	}
	for _, p := range s.Projects {
		if p.PriorityWeight < entities.MinPriorityWeight || p.PriorityWeight > entities.MaxPriorityWeight {
			return fmt.Errorf("project %s: priority weight %d out of range", p.ProjectID, p.PriorityWeight)
		}
	}
	for code, opts := range s.Options {
		for _, opt := range opts {
			if opt.ItemCode != code {
				return fmt.Errorf("option %s indexed under %s but targets %s", opt.OptionID, code, opt.ItemCode)
			}
			if !opt.UnitCost.IsPositive() {
				return fmt.Errorf("option %s: unit cost must be positive", opt.OptionID)
			}
			terms := opt.PaymentTerms
			if terms == nil {
				terms = entities.CashTerms{}
			}
			if err := terms.Validate(); err != nil {
				return fmt.Errorf("option %s: %w", opt.OptionID, err)
			}
		}
	}
	for _, b := range s.Budgets {
		if b.Available.IsNegative() {
			return fmt.Errorf("budget period at offset %d: negative amount", b.Offset)
		}
	}
	return nil
}
