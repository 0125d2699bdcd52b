package domains

import (
	"context"

	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
)

const TranscoderName = "transcoder"

type Transcoder interface {
	Validate(job *dto.Job) error
	Run(ctx context.Context, job *dto.Job, done func()) error
}
