package tasks

// Status is the final state of an executed unit.
type Status string

const (
	// StatusPerformed means the unit was stale and its action succeeded.
	StatusPerformed Status = "performed"
	// StatusPending means the unit is stale but the run was a dry run.
	StatusPending Status = "pending"
	// StatusSkipped means the unit was up to date.
	StatusSkipped Status = "skipped"
	// StatusFailed means the action failed without aborting the run.
	StatusFailed Status = "failed"
)

// Outcome records what happened to one unit.
type Outcome struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Status Status `json:"status" yaml:"status" toml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Report collects the outcomes of a run in execution order.
type Report struct {
	Target   string    `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	OS       string    `json:"os" yaml:"os" toml:"os"`
	DryRun   bool      `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes" toml:"outcomes"`
}

// Add appends an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns how many outcomes have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// HasFailures reports whether any unit failed.
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Find returns the first outcome for the named unit.
func (r *Report) Find(name string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return Outcome{}, false
}
