package helpers

import (
	"sort"

	"github.com/doeshing/actionguard/internal/domain"
)

// ReasonStatistic is the number of rejections for one reason
type ReasonStatistic struct {
	Reason domain.Reason
	Count  int
}

// TopReasons returns rejection reasons ordered by count (descending) then name.
// If limit is 0 or negative, returns all reasons
func TopReasons(byReason map[domain.Reason]int, limit int) []ReasonStatistic {
	stats := make([]ReasonStatistic, 0, len(byReason))
	for reason, count := range byReason {
		stats = append(stats, ReasonStatistic{Reason: reason, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Reason < stats[j].Reason
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// AcceptanceRate returns accepted/total as a percentage
func AcceptanceRate(accepted int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(accepted) / float64(total) * 100.0
}
