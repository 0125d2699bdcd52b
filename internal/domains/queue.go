package domains

import (
	"context"

	queueDTO "source.hodakov.me/hdkv/avweb/internal/domains/queue/dto"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
)

const QueueName = "queue"

type Queue interface {
	Submit(job *dto.Job) error
	Wait(ctx context.Context) error
	Stats() *queueDTO.Stats
}
