package converter

import "errors"

var (
	ErrConverter           = errors.New("converter")
	ErrConnectDependencies = errors.New("failed to connect dependencies")
	ErrUnknownKind         = errors.New("unknown output kind")
	ErrEmptyInput          = errors.New("input path is empty")
	ErrSubmitFailed        = errors.New("failed to submit conversion")
)
