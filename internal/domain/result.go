package domain

// RunResult describes what one run observed and did.
type RunResult struct {
	Previous        int        `yaml:"previous"`
	Current         int        `yaml:"current"`
	Added           []string   `yaml:"added"`
	Message         string     `yaml:"message,omitempty"`
	Deliveries      []Delivery `yaml:"deliveries,omitempty"`
	SnapshotWritten bool       `yaml:"snapshot_written"`
	DryRun          bool       `yaml:"dry_run,omitempty"`
}

// Changed reports whether the run found new titles.
func (r *RunResult) Changed() bool {
	return len(r.Added) > 0
}

// FailedDeliveries counts recipients whose send failed.
func (r *RunResult) FailedDeliveries() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Failed() {
			n++
		}
	}
	return n
}
