package dto

import "time"

// Result holds everything observed from one transcoder process.
// ExitCode is passed through as reported by the process. Err is only set
// when the process could not be started or waited on, ExitCode is -1 then.
type Result struct {
	JobID    string
	Stderr   string
	Stdout   string
	ExitCode int
	Duration time.Duration
	Err      error
}

func (r *Result) Succeeded() bool {
	return r.Err == nil && r.ExitCode == 0
}
