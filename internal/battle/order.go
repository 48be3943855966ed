package battle

import (
	"sort"

	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
)

// turnEntry is one combatant's slot in the turn order.
type turnEntry struct {
	id       ecs.EntityID
	action   Action
	priority int
	speed    int
}

// computeOrder sorts this turn's submitted actions: primary key is the
// move's priority tier, secondary key is effective speed (stage-scaled,
// halved under paralysis). Exact ties are broken by an unbiased coin flip
// per comparison, giving seedable nondeterminism rather than a stable
// fallback. Callers hold b.mu.
func (b *Battle) computeOrder() []turnEntry {
	order := make([]turnEntry, 0, len(b.pending))
	for id, action := range b.pending {
		if !b.eligible(id) {
			continue
		}
		entry := turnEntry{id: id, action: action}
		if ms, ok := b.stores.Moves.Get(id); ok {
			if slot := ms.Slot(action.MoveIndex); slot != nil {
				if move, err := b.provider.Move(slot.MoveID); err == nil {
					entry.priority = move.Priority
				}
			}
		}
		v := b.view(id)
		entry.speed = v.effectiveSpeed()
		order = append(order, entry)
	}

	// Map iteration order is random; fix a base order by handle before the
	// comparison sort so seeded runs replay identically.
	sort.Slice(order, func(i, j int) bool { return order[i].id < order[j].id })
	sort.SliceStable(order, func(i, j int) bool {
		a, c := order[i], order[j]
		if a.priority != c.priority {
			return a.priority > c.priority
		}
		if a.speed != c.speed {
			return a.speed > c.speed
		}
		return b.rng.Intn(2) == 0
	})
	return order
}
