package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
	"source.hodakov.me/hdkv/avweb/internal/metrics"
)

// MinArguments is the shortest argument list accepted: an input flag pair
// and at least one more token. It's a sanity check, not a guarantee the
// transcoder will accept the arguments.
const MinArguments = 3

var commandContext = exec.CommandContext

// Validate checks the job before it is allowed to take a slot.
func (t *Transcoder) Validate(job *dto.Job) error {
	if job == nil {
		return fmt.Errorf("%w: %w (%s)", ErrTranscoder, ErrMalformedJob, "job is nil")
	}

	if len(job.Arguments) < MinArguments {
		return fmt.Errorf(
			"%w: %w (%s)", ErrTranscoder, ErrMalformedJob,
			fmt.Sprintf("got %d arguments, need at least %d", len(job.Arguments), MinArguments),
		)
	}

	return nil
}

// Run starts the transcoder for the job and returns as soon as the process
// is spawned. When the process exits the job's callback receives the
// accumulated streams and exit code, then done is called. Both happen exactly
// once and never on the caller's goroutine.
// A malformed job returns an error and neither callback is invoked.
func (t *Transcoder) Run(ctx context.Context, job *dto.Job, done func()) error {
	err := t.Validate(job)
	if err != nil {
		return err
	}

	logger := t.app.Logger().WithField("job", job.ID)

	logger.WithField(
		"command", t.binary+" "+strings.Join(job.Arguments, " "),
	).Debug("Transcoder parameters")

	cmd := commandContext(ctx, t.binary, job.Arguments...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()

	err = cmd.Start()
	if err != nil {
		logger.WithError(err).Error("Failed to invoke transcoder!")

		result := &dto.Result{
			JobID:    job.ID,
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %w (%w)", ErrTranscoder, ErrSpawnFailed, err),
		}

		go t.finish(logger, job, result, done)

		return nil
	}

	logger.WithField("pid", cmd.Process.Pid).Info("Transcoder started")

	go func() {
		waitErr := cmd.Wait()

		result := &dto.Result{
			JobID:    job.ID,
			Stderr:   stderr.String(),
			Stdout:   stdout.String(),
			Duration: time.Since(started),
		}

		var exitErr *exec.ExitError

		switch {
		case waitErr == nil:
			result.ExitCode = 0
		case errors.As(waitErr, &exitErr):
			// Killed by a signal reports -1 here.
			result.ExitCode = exitErr.ExitCode()
		default:
			result.ExitCode = -1
			result.Err = fmt.Errorf("%w: %w (%w)", ErrTranscoder, ErrSpawnFailed, waitErr)
		}

		t.finish(logger, job, result, done)
	}()

	return nil
}

func (t *Transcoder) finish(logger *logrus.Entry, job *dto.Job, result *dto.Result, done func()) {
	status := metrics.StatusSuccess

	switch {
	case result.Err != nil:
		status = metrics.StatusSpawnError
	case result.ExitCode != 0:
		status = metrics.StatusFailure
	}

	metrics.JobsFinishedTotal.WithLabelValues(status).Inc()
	metrics.JobDuration.Observe(result.Duration.Seconds())

	logger.WithFields(logrus.Fields{
		"exit code": result.ExitCode,
		"duration":  result.Duration.String(),
	}).Info("Transcoder finished")

	if result.ExitCode != 0 {
		logger.WithField("transcoder stderr", result.Stderr).Debug("Got transcoder stderr")
	}

	job.Complete(result)

	if done != nil {
		done()
	}
}
