package queue

import "errors"

var (
	ErrQueue               = errors.New("queue")
	ErrConnectDependencies = errors.New("failed to connect dependencies")
	ErrInvalidConcurrency  = errors.New("maximum concurrency must be at least 1")
	ErrMalformedJob        = errors.New("malformed job")
)
