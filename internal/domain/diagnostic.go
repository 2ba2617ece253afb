package domain

// CheckRequest is the single request made to the checking service per run.
type CheckRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Diagnostic is one normalized finding in plain-text coordinates.
type Diagnostic struct {
	Message      string   `json:"message"`
	FlaggedText  string   `json:"flagged_text"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Replacements []string `json:"replacements"`
	RuleID       string   `json:"rule_id,omitempty"`
	Category     string   `json:"category,omitempty"`
	IssueType    string   `json:"issue_type,omitempty"`
}

// End returns the exclusive end offset of the flagged span.
func (d Diagnostic) End() int { return d.Offset + d.Length }

// ReconciledDiagnostic is a Diagnostic rewritten into document coordinates.
// Approximate is set when either end of the span had no exact mapping.
type ReconciledDiagnostic struct {
	Diagnostic
	DocumentOffset int  `json:"document_offset"`
	DocumentLength int  `json:"document_length"`
	Approximate    bool `json:"approximate,omitempty"`
}

// CheckResult is what the checker returns for one request: the normalized
// diagnostics in service order plus any records that had to be skipped.
type CheckResult struct {
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Skipped     []RecordError `json:"skipped,omitempty"`
}

// Language is one catalog entry of the checking service.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Report is the outcome of checking one document.
type Report struct {
	RunID       string                 `json:"run_id"`
	Document    string                 `json:"document"`
	Language    string                 `json:"language"`
	Revision    string                 `json:"revision,omitempty"`
	Diagnostics []ReconciledDiagnostic `json:"diagnostics"`
	Skipped     []RecordError          `json:"skipped,omitempty"`

	// Source is the document text the diagnostics point into.
	Source string `json:"-"`
}

// ApproximateCount returns how many diagnostics could not be placed exactly.
func (r *Report) ApproximateCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Approximate {
			n++
		}
	}
	return n
}
