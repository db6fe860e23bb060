package harness

// CaseResult is what one case actually produced.
type CaseResult struct {
	Name     string `json:"name"`
	Template string `json:"template,omitempty"`
	Args     []any  `json:"args,omitempty"`

	// Absent is true when the case compiled to the zero Condition.
	Absent bool `json:"absent,omitempty"`

	// Error is the compile error text, if any.
	Error string `json:"error,omitempty"`

	// IDs are the matching seeded rows. Nil when the scenario has no rows.
	IDs []int64 `json:"ids,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case met its expectations.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCase records a case outcome.
func (r *Result) AddCase(cr CaseResult) {
	r.Cases = append(r.Cases, cr)
}
