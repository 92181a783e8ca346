package service

import (
	"math"

	"github.com/aivahq/aiva-lite-api/internal/domain"
)

// Aggregate derives the summary metrics from the raw records. Pure function,
// no side effects, O(n) over the input. The invariants hold by construction:
// every customer is counted exactly once by status and by plan, every
// feedback entry exactly once by category.
func Aggregate(customers []domain.Customer, feedback []domain.FeedbackEntry) domain.AnalyticsSnapshot {
	snap := domain.AnalyticsSnapshot{
		TotalCustomers:     len(customers),
		TotalFeedback:      len(feedback),
		CustomersByPlan:    make(map[string]int),
		FeedbackByCategory: make(map[string]int),
	}

	for _, c := range customers {
		if c.Status == "active" {
			snap.ActiveCustomers++
		} else {
			snap.InactiveCustomers++
		}
		snap.CustomersByPlan[c.Plan]++
	}

	ratingSum := 0
	for _, f := range feedback {
		ratingSum += f.Rating
		snap.FeedbackByCategory[f.Category]++
	}
	if len(feedback) > 0 {
		avg := float64(ratingSum) / float64(len(feedback))
		snap.AverageRating = math.Round(avg*10) / 10
	}

	return snap
}

// analyticsEqual compares a recomputed snapshot against the one stored in
// the data file, for drift detection.
func analyticsEqual(a, b domain.AnalyticsSnapshot) bool {
	if a.TotalCustomers != b.TotalCustomers ||
		a.ActiveCustomers != b.ActiveCustomers ||
		a.InactiveCustomers != b.InactiveCustomers ||
		a.TotalFeedback != b.TotalFeedback ||
		a.AverageRating != b.AverageRating {
		return false
	}
	return mapsEqual(a.CustomersByPlan, b.CustomersByPlan) &&
		mapsEqual(a.FeedbackByCategory, b.FeedbackByCategory)
}

func mapsEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
