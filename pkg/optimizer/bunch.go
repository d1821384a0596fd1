package optimizer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planwise/procure/pkg/domain/entities"
)

// splitBunches partitions a proposal's decisions into FIRST_BUNCH and
// REST_BUNCH so the caller can commit the high-priority decisions immediately
// and keep re-evaluating the rest. Decisions are ranked by project priority
// weight descending (ties: final cost descending, then item code and project
// for determinism); the first bunch takes the top BunchCount decisions, or
// fills up to BunchCostThreshold when one is configured. The bunches always
// partition the decisions exactly.
func splitBunches(snap *Snapshot, p *entities.Proposal, cfg RunConfig) {
	if len(p.Decisions) == 0 {
		p.Bunches = nil
		return
	}

	ranked := append([]entities.Decision(nil), p.Decisions...)
	sort.Slice(ranked, func(i, j int) bool {
		wi := snap.Projects[ranked[i].ProjectID].PriorityWeight
		wj := snap.Projects[ranked[j].ProjectID].PriorityWeight
		if wi != wj {
			return wi > wj
		}
		if !ranked[i].FinalCost.Equal(ranked[j].FinalCost) {
			return ranked[i].FinalCost.GreaterThan(ranked[j].FinalCost)
		}
		if ranked[i].ItemCode != ranked[j].ItemCode {
			return ranked[i].ItemCode < ranked[j].ItemCode
		}
		return ranked[i].ProjectID < ranked[j].ProjectID
	})

	cut := len(ranked)
	if cfg.BunchCostThreshold.IsPositive() {
		running := decimal.Zero
		cut = 0
		for _, d := range ranked {
			if running.Add(d.FinalCost).GreaterThan(cfg.BunchCostThreshold) {
				break
			}
			running = running.Add(d.FinalCost)
			cut++
		}
	} else if cfg.BunchCount < cut {
		cut = cfg.BunchCount
	}

	p.Bunches = []entities.Bunch{{Tag: entities.FirstBunch, Decisions: ranked[:cut]}}
	if cut < len(ranked) {
		p.Bunches = append(p.Bunches, entities.Bunch{
			Tag:       entities.RestBunch,
			Decisions: ranked[cut:],
		})
	}
}
