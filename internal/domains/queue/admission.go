package queue

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	queueDTO "source.hodakov.me/hdkv/avweb/internal/domains/queue/dto"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
	"source.hodakov.me/hdkv/avweb/internal/metrics"
)

// Submit validates the job and queues it. If a slot is free the job's
// process is started before Submit returns. A rejected job never takes a
// slot and its callback is never called.
func (q *Queue) Submit(job *dto.Job) error {
	if q.maxActive < 1 {
		metrics.JobsRejectedTotal.Inc()

		return fmt.Errorf("%w: %w (%d)", ErrQueue, ErrInvalidConcurrency, q.maxActive)
	}

	err := q.transcoder.Validate(job)
	if err != nil {
		metrics.JobsRejectedTotal.Inc()

		return fmt.Errorf("%w: %w (%w)", ErrQueue, ErrMalformedJob, err)
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.unfinished == 0 {
		q.idle = make(chan struct{})
	}

	q.unfinished++
	q.pending = append(q.pending, job)
	metrics.JobsSubmittedTotal.Inc()

	q.app.Logger().WithFields(logrus.Fields{
		"job":     job.ID,
		"pending": len(q.pending),
		"running": q.running,
	}).Debug("Job submitted")

	q.admit()

	return nil
}

// Wait blocks until every job submitted so far has delivered its result,
// or ctx is done. It returns at once on an idle queue. Submitting while
// another goroutine waits is allowed: the waiter then also waits for the
// new job.
func (q *Queue) Wait(ctx context.Context) error {
	q.mutex.Lock()
	if q.unfinished == 0 {
		q.mutex.Unlock()

		return nil
	}

	idle := q.idle
	q.mutex.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Stats() *queueDTO.Stats {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return &queueDTO.Stats{
		Pending:   len(q.pending),
		Running:   q.running,
		MaxActive: q.maxActive,
	}
}

// admit promotes pending jobs to running while slots are free.
// Must be called with q.mutex held.
func (q *Queue) admit() {
	for q.running < q.maxActive && len(q.pending) > 0 {
		job := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.running++

		q.app.Logger().WithFields(logrus.Fields{
			"job":     job.ID,
			"pending": len(q.pending),
			"running": q.running,
		}).Debug("Job admitted")

		err := q.transcoder.Run(q.app.Context(), job, q.jobFinished)
		if err != nil {
			// Validated on submit, so this is only reachable with a transcoder
			// that changed its mind. Report it and give the slot back.
			q.app.Logger().WithError(err).WithField("job", job.ID).Error("Transcoder refused admitted job")

			q.running--
			go q.abandon(job, err)
		}
	}

	q.updateGauges()
}

func (q *Queue) abandon(job *dto.Job, err error) {
	job.Complete(&dto.Result{
		JobID:    job.ID,
		ExitCode: -1,
		Err:      err,
	})

	q.mutex.Lock()
	q.release()
	q.mutex.Unlock()
}

// jobFinished is called by the transcoder after the job's callback returned.
func (q *Queue) jobFinished() {
	q.mutex.Lock()
	q.running--
	q.admit()
	q.release()
	q.mutex.Unlock()
}

// release marks one job as fully finished. Must be called with q.mutex held.
func (q *Queue) release() {
	q.unfinished--
	if q.unfinished == 0 {
		close(q.idle)
	}
}

func (q *Queue) updateGauges() {
	metrics.QueuePending.Set(float64(len(q.pending)))
	metrics.QueueRunning.Set(float64(q.running))
}
