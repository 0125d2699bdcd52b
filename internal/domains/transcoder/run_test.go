package transcoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
	"source.hodakov.me/hdkv/avweb/internal/metrics"
)

// TestHelperProcess stands in for the transcoder binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	fmt.Fprint(os.Stdout, os.Getenv("AVWEB_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("AVWEB_HELPER_STDERR"))

	code, _ := strconv.Atoi(os.Getenv("AVWEB_HELPER_EXIT"))
	os.Exit(code)
}

type helperProcess struct {
	stdout string
	stderr string
	exit   int

	mutex sync.Mutex
	name  string
	args  []string
}

func (h *helperProcess) install(t *testing.T) {
	t.Helper()

	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		h.mutex.Lock()
		h.name = name
		h.args = append([]string(nil), args...)
		h.mutex.Unlock()

		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"AVWEB_HELPER_STDOUT="+h.stdout,
			"AVWEB_HELPER_STDERR="+h.stderr,
			"AVWEB_HELPER_EXIT="+strconv.Itoa(h.exit),
		)

		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func newTestTranscoder(binary string) *Transcoder {
	app := application.New(context.Background())
	app.Config().Transcoding.Binary = binary

	return New(app)
}

type completion struct {
	mutex   sync.Mutex
	results []*dto.Result
	order   []string
	done    chan struct{}
}

func newCompletion() *completion {
	return &completion{done: make(chan struct{})}
}

func (c *completion) onComplete(result *dto.Result) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.results = append(c.results, result)
	c.order = append(c.order, "complete")
}

func (c *completion) onDone() {
	c.mutex.Lock()
	c.order = append(c.order, "done")
	c.mutex.Unlock()

	close(c.done)
}

func (c *completion) wait(t *testing.T) {
	t.Helper()

	select {
	case <-c.done:
	case <-time.After(10 * time.Second):
		t.Fatal("transcoder did not finish in time")
	}
}

func TestRunPassesStreamsAndExitCode(t *testing.T) {
	helper := &helperProcess{stdout: "frames=42", stderr: "Unknown encoder 'libvo_aacenc'", exit: 3}
	helper.install(t)

	transcoder := newTestTranscoder("avconv")
	tracker := newCompletion()
	job := dto.NewJob([]string{"-i", "in.3gp", "-y", "in.mp4"}, tracker.onComplete)

	require.NoError(t, transcoder.Run(context.Background(), job, tracker.onDone))
	tracker.wait(t)

	require.Len(t, tracker.results, 1)
	result := tracker.results[0]
	assert.Equal(t, job.ID, result.JobID)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "frames=42", result.Stdout)
	assert.Equal(t, "Unknown encoder 'libvo_aacenc'", result.Stderr)
	assert.NoError(t, result.Err)
	assert.False(t, result.Succeeded())
	assert.Equal(t, []string{"complete", "done"}, tracker.order)

	assert.Equal(t, "avconv", helper.name)
	assert.Equal(t, []string{"-i", "in.3gp", "-y", "in.mp4"}, helper.args)
}

func TestRunReportsSuccess(t *testing.T) {
	helper := &helperProcess{}
	helper.install(t)

	transcoder := newTestTranscoder("avconv")
	tracker := newCompletion()
	before := testutil.ToFloat64(metrics.JobsFinishedTotal.WithLabelValues(metrics.StatusSuccess))

	job := dto.NewJob([]string{"-i", "a.mov", "b.ogg"}, tracker.onComplete)
	require.NoError(t, transcoder.Run(context.Background(), job, tracker.onDone))
	tracker.wait(t)

	require.Len(t, tracker.results, 1)
	assert.Equal(t, 0, tracker.results[0].ExitCode)
	assert.True(t, tracker.results[0].Succeeded())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.JobsFinishedTotal.WithLabelValues(metrics.StatusSuccess)))
}

func TestRunReportsSpawnFailureThroughCallback(t *testing.T) {
	transcoder := newTestTranscoder("/nonexistent/avweb-test-binary")
	tracker := newCompletion()

	job := dto.NewJob([]string{"-i", "a.mov", "b.ogg"}, tracker.onComplete)
	require.NoError(t, transcoder.Run(context.Background(), job, tracker.onDone))
	tracker.wait(t)

	require.Len(t, tracker.results, 1)
	result := tracker.results[0]
	assert.Equal(t, -1, result.ExitCode)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, ErrSpawnFailed)
	assert.Equal(t, []string{"complete", "done"}, tracker.order)
}

func TestRunRejectsMalformedJob(t *testing.T) {
	transcoder := newTestTranscoder("avconv")

	tests := []struct {
		name string
		job  *dto.Job
	}{
		{"nil job", nil},
		{"empty arguments", dto.NewJob(nil, nil)},
		{"too short", dto.NewJob([]string{"-i", "in.mov"}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			err := transcoder.Run(context.Background(), tt.job, func() { called = true })

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedJob)
			assert.False(t, called)
		})
	}
}

func TestRunToleratesMissingCallbacks(t *testing.T) {
	helper := &helperProcess{exit: 1}
	helper.install(t)

	transcoder := newTestTranscoder("avconv")
	finished := make(chan struct{})

	job := dto.NewJob([]string{"-i", "a.mov", "b.ogg"}, nil)
	require.NoError(t, transcoder.Run(context.Background(), job, func() { close(finished) }))

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("transcoder did not finish in time")
	}
}

func TestNewJobCopiesArguments(t *testing.T) {
	arguments := []string{"-i", "in.mov", "out.ogg"}
	job := dto.NewJob(arguments, nil)
	arguments[1] = "changed.mov"

	assert.Equal(t, "in.mov", job.Arguments[1])
	assert.NotEmpty(t, job.ID)
	assert.False(t, strings.Contains(strings.Join(job.Arguments, " "), "changed"))
}
