package importer

import (
	"fmt"
	"strings"
)

// Status classifies the result of one import attempt.
type Status string

// Import outcome statuses.
const (
	StatusAdded     Status = "added"
	StatusReplaced  Status = "replaced"
	StatusIgnored   Status = "ignored"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// Outcome is the transient result of one import attempt. Not persisted.
type Outcome struct {
	Status      Status `json:"status"`
	NewCountry  string `json:"newCountryAdded,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`
}

// Progress is emitted after each item of a batch import.
type Progress struct {
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Counters map[Status]int `json:"counters"`
}

// Report aggregates a batch import.
type Report struct {
	Total        int            `json:"total"`
	Counters     map[Status]int `json:"counters"`
	NewCountries []string       `json:"newCountries,omitempty"`
	Ignored      []string       `json:"ignored,omitempty"`
	Errors       []string       `json:"errors,omitempty"`
}

// NewReport creates an empty report for a batch of the given size.
func NewReport(total int) *Report {
	return &Report{
		Total:    total,
		Counters: make(map[Status]int),
	}
}

// Record folds one outcome into the report. The title identifies the item
// in the ignored listing.
func (r *Report) Record(outcome Outcome, title string) {
	r.Counters[outcome.Status]++
	if outcome.NewCountry != "" {
		r.NewCountries = append(r.NewCountries, outcome.NewCountry)
	}
	if outcome.Status == StatusIgnored {
		r.Ignored = append(r.Ignored, title)
	}
	if outcome.Status == StatusError && outcome.ErrorDetail != "" {
		r.Errors = append(r.Errors, outcome.ErrorDetail)
	}
}

// Processed returns how many items reached a terminal state other than
// cancelled.
func (r *Report) Processed() int {
	return r.Counters[StatusAdded] + r.Counters[StatusReplaced] +
		r.Counters[StatusIgnored] + r.Counters[StatusError]
}

// Cancelled reports whether the batch was aborted by a cancel decision.
func (r *Report) Cancelled() bool {
	return r.Counters[StatusCancelled] > 0
}

// Summary renders the structured end-of-batch summary.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d of %d: %d added, %d replaced, %d ignored, %d errors",
		r.Processed(), r.Total,
		r.Counters[StatusAdded], r.Counters[StatusReplaced],
		r.Counters[StatusIgnored], r.Counters[StatusError])
	if r.Cancelled() {
		b.WriteString(" (batch cancelled)")
	}
	if len(r.NewCountries) > 0 {
		fmt.Fprintf(&b, "\nNew countries: %s", strings.Join(r.NewCountries, ", "))
	}
	for _, title := range r.Ignored {
		fmt.Fprintf(&b, "\nIgnored: %s", title)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(&b, "\nError: %s", msg)
	}
	return b.String()
}

// counters returns a copy of the counters map for progress events.
func (r *Report) counters() map[Status]int {
	out := make(map[Status]int, len(r.Counters))
	for k, v := range r.Counters {
		out[k] = v
	}
	return out
}
