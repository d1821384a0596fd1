package repositories

import "github.com/planwise/procure/pkg/domain/entities"

// RelationRepository provides access to cross-item dependency relations
type RelationRepository interface {
	GetRelations() ([]entities.ItemRelation, error)
	LoadRelations(relations []entities.ItemRelation) error
}
