package history

import "time"

// Run is one recorded build invocation.
type Run struct {
	ID           int64
	RunID        string
	Started      time.Time
	Finished     time.Time
	DryRun       bool
	LanguageCode string
	Total        int
	Built        int
	Skipped      int
	Failed       int
	Planned      int
}

// Duration is the wall time of the run.
func (r Run) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Failure is one failed unit within a run.
type Failure struct {
	RunID        string
	Line         int
	Folder       string
	Sentence     string
	Reason       string
	ErrorKind    string
	ErrorMessage string
}
