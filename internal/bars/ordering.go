package bars

import (
	"sort"

	"nfo-bars/internal/domain"
)

// SortTicks orders ticks by timestamp ascending. The sort is stable so
// ticks sharing an instant keep their feed order, which is what makes
// open and close within a second meaningful.
func SortTicks(ticks []domain.Tick) {
	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Timestamp.Before(ticks[j].Timestamp)
	})
}
