package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aivahq/aiva-lite-api/internal/domain"
)

// promptPreamble is the fixed role/instruction block that opens every
// prompt. The language rule is part of the contract: the assistant answers
// in Bahasa Indonesia when the question is in Bahasa Indonesia.
const promptPreamble = `You are AIVA (AI Virtual Assistant), an enterprise AI assistant for company insights.
You have access to the company data below.

Instructions:
- Answer questions based on the data below
- Be professional and concise
- Use specific numbers and facts from the data
- If asked about trends, analyze the data provided
- If the question is not related to company data, politely redirect to business queries
- Answer in Bahasa Indonesia if the question is in Bahasa Indonesia, otherwise use English`

// PromptBuilder renders the deterministic context prompt sent to the
// completion provider. Section order is fixed: preamble, customers,
// feedback, analytics, then the verbatim question.
//
// The entire dataset is embedded on every call, so prompt size grows
// linearly with the data file. MaxRecords optionally caps how many
// customer/feedback records are embedded per section (0 = no cap).
type PromptBuilder struct {
	MaxRecords int
}

// Build assembles the prompt for one question against one snapshot.
// Same (question, snapshot) input always yields byte-identical output:
// the JSON sections are rendered with MarshalIndent, which emits map keys
// in sorted order.
func (b PromptBuilder) Build(question string, snap *domain.Snapshot, analytics domain.AnalyticsSnapshot) string {
	customers := capRecords(snap.Customers, b.MaxRecords)
	feedback := capRecords(snap.Feedback, b.MaxRecords)

	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "CUSTOMERS DATA:\nTotal Customers: %d\nActive Customers: %d\nInactive Customers: %d\n\n",
		analytics.TotalCustomers, analytics.ActiveCustomers, analytics.InactiveCustomers)
	fmt.Fprintf(&sb, "Customer Details:\n%s\n\n", mustJSON(customers))

	fmt.Fprintf(&sb, "FEEDBACK DATA:\nTotal Feedback: %d\nAverage Rating: %.1f/5\n\n",
		analytics.TotalFeedback, analytics.AverageRating)
	fmt.Fprintf(&sb, "Feedback Details:\n%s\n\n", mustJSON(feedback))

	fmt.Fprintf(&sb, "ANALYTICS:\n%s\n\n", mustJSON(analytics))

	fmt.Fprintf(&sb, "User Question: %s\n", question)

	return sb.String()
}

func capRecords[T any](records []T, max int) []T {
	if max > 0 && len(records) > max {
		return records[:max]
	}
	return records
}

// mustJSON renders v as indented JSON. The domain types contain only
// marshalable fields, so an encode failure is a programming error.
func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic("prompt: marshal data section: " + err.Error())
	}
	return string(data)
}
