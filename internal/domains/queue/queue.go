package queue

import (
	"fmt"
	"sync"

	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
)

var (
	_ domains.Queue  = new(Queue)
	_ domains.Domain = new(Queue)
)

// Queue admits transcoder jobs in submission order, keeping at most
// maxActive of them running.
type Queue struct {
	app *application.App

	transcoder domains.Transcoder

	mutex     sync.Mutex
	pending   []*dto.Job
	running   int
	maxActive int

	// unfinished counts submitted jobs whose callback hasn't returned yet.
	// idle is closed when it drops back to zero.
	unfinished int
	idle       chan struct{}
}

func New(app *application.App) *Queue {
	return &Queue{
		app:       app,
		maxActive: int(app.Config().Transcoding.Parallel),
		pending:   make([]*dto.Job, 0),
	}
}

func (q *Queue) ConnectDependencies() error {
	transcoder, ok := q.app.RetrieveDomain(domains.TranscoderName).(domains.Transcoder)
	if !ok {
		return fmt.Errorf(
			"%w: %w (%s)", ErrQueue, ErrConnectDependencies,
			"transcoder domain interface conversion failed",
		)
	}

	q.transcoder = transcoder

	return nil
}

func (q *Queue) Start() error {
	if q.maxActive < 1 {
		return fmt.Errorf("%w: %w (%d)", ErrQueue, ErrInvalidConcurrency, q.maxActive)
	}

	q.app.Logger().WithField("max active", q.maxActive).Debug("Queue is ready")

	return nil
}
