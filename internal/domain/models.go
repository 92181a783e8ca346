package domain

// ============================================================
// Company data — loaded from the data file
// ============================================================

// Customer is a single customer record from the data file.
// Records are immutable once loaded; identity is ID.
type Customer struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Status       string `json:"status"` // active, inactive
	Plan         string `json:"plan"`   // Free, Pro, Premium, ...
	LastActivity string `json:"last_activity"`
}

// FeedbackEntry is a single feedback record from the data file.
type FeedbackEntry struct {
	ID       int    `json:"id"`
	User     string `json:"user"`
	Rating   int    `json:"rating"` // 1..5
	Comment  string `json:"comment"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

// AnalyticsSnapshot holds the summary metrics derived from the raw records.
//
// Invariants (enforced by service.Aggregate):
//
//	ActiveCustomers + InactiveCustomers == TotalCustomers
//	sum(CustomersByPlan)               == TotalCustomers
//	sum(FeedbackByCategory)            == TotalFeedback
type AnalyticsSnapshot struct {
	TotalCustomers     int            `json:"total_customers"`
	ActiveCustomers    int            `json:"active_customers"`
	InactiveCustomers  int            `json:"inactive_customers"`
	AverageRating      float64        `json:"average_rating"` // 1 decimal place
	TotalFeedback      int            `json:"total_feedback"`
	CustomersByPlan    map[string]int `json:"customers_by_plan"`
	FeedbackByCategory map[string]int `json:"feedback_by_category"`
}

// Snapshot is an immutable in-memory copy of the data file's contents at the
// moment of a read. StoredAnalytics carries whatever aggregate the file
// declares; downstream consumers always recompute and use StoredAnalytics
// only for drift detection.
type Snapshot struct {
	Customers       []Customer         `json:"customers"`
	Feedback        []FeedbackEntry    `json:"feedback"`
	StoredAnalytics *AnalyticsSnapshot `json:"analytics,omitempty"`
}

// ============================================================
// Chat — request/response (follows the dashboard contract)
// ============================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string `json:"question"`
	Model    string `json:"model,omitempty"`
}

// ChatResponse is the answer returned by POST /chat.
type ChatResponse struct {
	Answer      string `json:"answer"`
	ContextUsed bool   `json:"context_used"`
}

// GenerationParams are the sampling parameters for a completion call.
type GenerationParams struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"top_p"`
	TopK            int     `json:"top_k"`
	MaxOutputTokens int     `json:"max_output_tokens"`
}

// DefaultGenerationParams returns the fixed sampling defaults used for every
// completion unless the caller overrides them.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     0.7,
		TopP:            0.9,
		TopK:            40,
		MaxOutputTokens: 1024,
	}
}

// ============================================================
// Auth
// ============================================================

// User is the public view of an authenticated user.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // admin, user
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login. A credential mismatch is a
// normal unsuccessful response, not an error.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}
