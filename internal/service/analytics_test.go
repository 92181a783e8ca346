package service_test

import (
	"testing"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/service"
)

func TestAggregate_MinimalFixture(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, Name: "A", Email: "a@x.com", Status: "active", Plan: "Pro"},
		{ID: 2, Name: "B", Email: "b@x.com", Status: "inactive", Plan: "Free"},
	}
	feedback := []domain.FeedbackEntry{
		{ID: 1, User: "A", Rating: 4, Category: "Service"},
	}

	snap := service.Aggregate(customers, feedback)

	if snap.TotalCustomers != 2 {
		t.Errorf("expected 2 total customers, got %d", snap.TotalCustomers)
	}
	if snap.ActiveCustomers != 1 {
		t.Errorf("expected 1 active customer, got %d", snap.ActiveCustomers)
	}
	if snap.InactiveCustomers != 1 {
		t.Errorf("expected 1 inactive customer, got %d", snap.InactiveCustomers)
	}
	if snap.TotalFeedback != 1 {
		t.Errorf("expected 1 feedback entry, got %d", snap.TotalFeedback)
	}
	if snap.AverageRating != 4.0 {
		t.Errorf("expected average rating 4.0, got %v", snap.AverageRating)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, Status: "active", Plan: "Premium"},
		{ID: 2, Status: "active", Plan: "Pro"},
		{ID: 3, Status: "inactive", Plan: "Pro"},
		{ID: 4, Status: "active", Plan: "Free"},
		{ID: 5, Status: "inactive", Plan: "Free"},
	}
	feedback := []domain.FeedbackEntry{
		{ID: 1, Rating: 5, Category: "Service"},
		{ID: 2, Rating: 3, Category: "Pricing"},
		{ID: 3, Rating: 4, Category: "Service"},
		{ID: 4, Rating: 2, Category: "Bugs"},
	}

	snap := service.Aggregate(customers, feedback)

	if snap.ActiveCustomers+snap.InactiveCustomers != snap.TotalCustomers {
		t.Errorf("status counts %d+%d do not sum to total %d",
			snap.ActiveCustomers, snap.InactiveCustomers, snap.TotalCustomers)
	}

	planSum := 0
	for _, n := range snap.CustomersByPlan {
		planSum += n
	}
	if planSum != snap.TotalCustomers {
		t.Errorf("plan counts sum to %d, expected %d", planSum, snap.TotalCustomers)
	}

	catSum := 0
	for _, n := range snap.FeedbackByCategory {
		catSum += n
	}
	if catSum != snap.TotalFeedback {
		t.Errorf("category counts sum to %d, expected %d", catSum, snap.TotalFeedback)
	}
}

func TestAggregate_AverageRoundedToOneDecimal(t *testing.T) {
	feedback := []domain.FeedbackEntry{
		{ID: 1, Rating: 4, Category: "Service"},
		{ID: 2, Rating: 5, Category: "Service"},
		{ID: 3, Rating: 5, Category: "Service"},
	}

	snap := service.Aggregate(nil, feedback)

	// 14/3 = 4.666... → 4.7
	if snap.AverageRating != 4.7 {
		t.Errorf("expected average rating 4.7, got %v", snap.AverageRating)
	}
}

func TestAggregate_Empty(t *testing.T) {
	snap := service.Aggregate(nil, nil)

	if snap.TotalCustomers != 0 || snap.TotalFeedback != 0 {
		t.Errorf("expected zero totals, got %+v", snap)
	}
	if snap.AverageRating != 0 {
		t.Errorf("expected zero average rating for no feedback, got %v", snap.AverageRating)
	}
	if len(snap.CustomersByPlan) != 0 || len(snap.FeedbackByCategory) != 0 {
		t.Errorf("expected empty maps, got %+v", snap)
	}
}
