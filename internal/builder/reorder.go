package builder

import "portfoliohub/pkg/models"

// Move relocates the component at index from to index to, shifting the
// rest, and renumbers every component's order to its new 0-based array
// position. The input slice is not modified. Out-of-range indexes return
// the input renumbered but otherwise unchanged.
func Move(components []models.Component, from, to int) []models.Component {
	out := make([]models.Component, len(components))
	copy(out, components)

	if from >= 0 && from < len(out) && to >= 0 && to < len(out) && from != to {
		moved := out[from]
		out = append(out[:from], out[from+1:]...)
		rest := make([]models.Component, 0, len(components))
		rest = append(rest, out[:to]...)
		rest = append(rest, moved)
		rest = append(rest, out[to:]...)
		out = rest
	}

	Renumber(out)
	return out
}

// Renumber rewrites order fields in place to the contiguous range
// 0..n-1 matching current array positions.
func Renumber(components []models.Component) {
	for i := range components {
		components[i].Order = i
	}
}

// ChangedOrders returns the components whose order differs between the
// previous and current lists, matched by id. Unsaved components (no id)
// are never reported: they have nothing to persist yet.
func ChangedOrders(before, after []models.Component) []models.Component {
	prev := make(map[int64]int, len(before))
	for _, c := range before {
		if c.ID != 0 {
			prev[c.ID] = c.Order
		}
	}

	var changed []models.Component
	for _, c := range after {
		if c.ID == 0 {
			continue
		}
		if old, ok := prev[c.ID]; !ok || old != c.Order {
			changed = append(changed, c)
		}
	}
	return changed
}
