package transcoder

import "errors"

var (
	ErrTranscoder   = errors.New("transcoder")
	ErrMalformedJob = errors.New("malformed job")
	ErrSpawnFailed  = errors.New("failed to start transcoder process")
)
