package service_test

import (
	"strings"
	"testing"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/service"
)

func promptFixture() *domain.Snapshot {
	return &domain.Snapshot{
		Customers: []domain.Customer{
			{ID: 1, Name: "PT Maju Jaya", Email: "contact@majujaya.co.id", Status: "active", Plan: "Premium", LastActivity: "2024-01-15"},
			{ID: 2, Name: "CV Baru", Email: "info@cvbaru.id", Status: "inactive", Plan: "Free", LastActivity: "2023-11-02"},
		},
		Feedback: []domain.FeedbackEntry{
			{ID: 1, User: "Budi", Rating: 4, Comment: "Good service", Category: "Service", Status: "reviewed", Date: "2024-01-10"},
		},
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := service.PromptBuilder{}
	snap := promptFixture()
	analytics := service.Aggregate(snap.Customers, snap.Feedback)

	first := b.Build("Berapa pelanggan aktif?", snap, analytics)
	second := b.Build("Berapa pelanggan aktif?", snap, analytics)

	if first != second {
		t.Fatal("expected byte-identical prompts for identical inputs")
	}
}

func TestBuild_SectionOrder(t *testing.T) {
	b := service.PromptBuilder{}
	snap := promptFixture()
	analytics := service.Aggregate(snap.Customers, snap.Feedback)

	question := "What are the common complaints?"
	prompt := b.Build(question, snap, analytics)

	markers := []string{
		"You are AIVA",
		"CUSTOMERS DATA:",
		"FEEDBACK DATA:",
		"ANALYTICS:",
		"User Question: " + question,
	}

	last := -1
	for _, marker := range markers {
		idx := strings.Index(prompt, marker)
		if idx < 0 {
			t.Fatalf("prompt missing marker %q", marker)
		}
		if idx <= last {
			t.Fatalf("marker %q out of order (index %d, previous %d)", marker, idx, last)
		}
		last = idx
	}
}

func TestBuild_EmbedsRecordsAndCounts(t *testing.T) {
	b := service.PromptBuilder{}
	snap := promptFixture()
	analytics := service.Aggregate(snap.Customers, snap.Feedback)

	prompt := b.Build("q", snap, analytics)

	for _, want := range []string{
		"Total Customers: 2",
		"Active Customers: 1",
		"Inactive Customers: 1",
		"Total Feedback: 1",
		"Average Rating: 4.0/5",
		"PT Maju Jaya",
		"Good service",
		"Answer in Bahasa Indonesia if the question is in Bahasa Indonesia",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuild_QuestionVerbatim(t *testing.T) {
	b := service.PromptBuilder{}
	snap := promptFixture()
	analytics := service.Aggregate(snap.Customers, snap.Feedback)

	question := `Siapa pelanggan dengan plan "Premium"? <tag> & 100%`
	prompt := b.Build(question, snap, analytics)

	if !strings.Contains(prompt, "User Question: "+question) {
		t.Error("question not embedded verbatim")
	}
}

func TestBuild_MaxRecordsCapsSections(t *testing.T) {
	snap := &domain.Snapshot{
		Customers: []domain.Customer{
			{ID: 1, Name: "First", Email: "1@x.com", Status: "active", Plan: "Pro"},
			{ID: 2, Name: "Second", Email: "2@x.com", Status: "active", Plan: "Pro"},
			{ID: 3, Name: "Third", Email: "3@x.com", Status: "active", Plan: "Pro"},
		},
		Feedback: []domain.FeedbackEntry{},
	}
	analytics := service.Aggregate(snap.Customers, snap.Feedback)

	b := service.PromptBuilder{MaxRecords: 2}
	prompt := b.Build("q", snap, analytics)

	if !strings.Contains(prompt, "Second") {
		t.Error("expected second record to be embedded")
	}
	if strings.Contains(prompt, "Third") {
		t.Error("expected third record to be capped out of the prompt")
	}
	// Aggregate counts stay complete even when the embedded list is capped.
	if !strings.Contains(prompt, "Total Customers: 3") {
		t.Error("expected totals to reflect the full dataset")
	}
}
