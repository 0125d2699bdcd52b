package dto

import "github.com/google/uuid"

// Job is a single transcoder invocation waiting for, or holding, a slot.
type Job struct {
	ID         string
	Arguments  []string
	OnComplete func(result *Result)
}

// NewJob copies arguments so later changes by the caller don't leak into
// the queued job.
func NewJob(arguments []string, onComplete func(result *Result)) *Job {
	return &Job{
		ID:         uuid.NewString(),
		Arguments:  append([]string(nil), arguments...),
		OnComplete: onComplete,
	}
}

// Complete delivers the result to the job's callback, if any.
func (j *Job) Complete(result *Result) {
	if j.OnComplete != nil {
		j.OnComplete(result)
	}
}
