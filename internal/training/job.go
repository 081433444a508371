// Package training re-expresses spec.md §9's "asynchronous training
// started as an opaque background task" design note as an explicit Job:
// one cancellable context, one progress stream, one call. It replaces
// the teacher's goroutine-per-sport process.SportProcess lifecycle with
// a single-job-per-fit equivalent suited to a request/response training
// call instead of a long-lived streaming process.
package training

import (
	"context"
	"fmt"
	"sync"

	"github.com/charleschow/football-outrights/internal/collab"
	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/events"
	"github.com/charleschow/football-outrights/internal/telemetry"
	"github.com/google/uuid"
)

// Status is the lifecycle state a Job reports through its bus.
type Status string

const (
	StatusRunning   Status = "running"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job owns one rating.Fit call end to end: its own cancellation token,
// its own progress relay, and atomic publication of the resulting
// artifact. It carries no state across calls — Run is safe to call
// once per Job.
type Job struct {
	ID     string
	League string

	cfg     rating.Config
	opt     rating.Optimizer
	pub     *rating.Publisher
	bus     *events.Bus
	tracker collab.ExperimentTracker

	mu     sync.Mutex
	cancel context.CancelFunc
	status Status
}

// NewJob builds a Job. id may be empty, in which case a uuid is
// generated — the same task-identity role uuid.NewString plays
// elsewhere in the codebase for correlating log lines to a single run.
// pub receives the fitted artifact on success; bus (may be nil) receives
// progress and terminal events; tracker (may be nil) receives a
// best-effort post-fit record.
func NewJob(id, league string, cfg rating.Config, opt rating.Optimizer, pub *rating.Publisher, bus *events.Bus, tracker collab.ExperimentTracker) *Job {
	if id == "" {
		id = uuid.NewString()
	}
	return &Job{ID: id, League: league, cfg: cfg, opt: opt, pub: pub, bus: bus, tracker: tracker, status: StatusRunning}
}

// Status reports the job's current lifecycle state.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Cancel requests cooperative cancellation. The fit checks the
// cancellation flag between iterations and between matches (spec.md
// §5); it leaves no partially written artifact and reports "cancelled"
// rather than publishing a half-fit result.
func (j *Job) Cancel() {
	j.mu.Lock()
	cancel := j.cancel
	j.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run fits matches under ctx, relaying progress to the job's bus and
// publishing the resulting artifact to pub on success. It never panics
// on a single bad match or team — per-match issues come back as
// warnings, not errors; only EmptyInput, Degenerate and cancellation
// are fatal, matching rating.Fit's own contract.
func (j *Job) Run(ctx context.Context, matches []rating.Match) (*rating.FitArtifact, rating.Metrics, []rating.Warning, error) {
	runCtx, cancel := context.WithCancel(ctx)
	j.mu.Lock()
	j.cancel = cancel
	j.mu.Unlock()
	defer cancel()

	telemetry.Metrics.FitsStarted.Inc()
	telemetry.Metrics.ActiveFits.Inc()
	defer telemetry.Metrics.ActiveFits.Dec()

	onProgress := func(p rating.Progress) {
		j.publish(events.EventTrainingProgress, &events.TrainingProgress{
			TaskID:   j.ID,
			Phase:    p.Phase,
			Progress: p.Fraction,
			Iter:     p.Iter,
			MaxDelta: p.MaxDelta,
		})
	}

	artifact, metrics, warnings, err := rating.Fit(runCtx, matches, j.cfg, j.opt, onProgress)

	j.mu.Lock()
	defer j.mu.Unlock()

	if err != nil {
		if err == rating.ErrCancelled {
			j.status = StatusCancelled
			telemetry.Metrics.FitsCancelled.Inc()
			j.publish(events.EventTrainingFailed, &events.TrainingFailed{TaskID: j.ID, Error: "cancelled"})
			return nil, rating.Metrics{}, warnings, err
		}
		j.status = StatusFailed
		j.publish(events.EventTrainingFailed, &events.TrainingFailed{TaskID: j.ID, Error: err.Error()})
		return nil, rating.Metrics{}, warnings, err
	}

	version := 0
	if j.pub != nil {
		version = j.pub.Publish(artifact)
	}
	j.status = StatusDone
	j.publish(events.EventTrainingDone, &events.TrainingDone{TaskID: j.ID, Result: fmt.Sprintf("artifact v%d, %d teams", version, len(artifact.Teams))})

	if j.tracker != nil {
		if err := j.tracker.Record(runCtx, artifact, metrics); err != nil {
			telemetry.Warnf("training: experiment tracker record failed (non-fatal): %v", err)
		}
	}

	return artifact, metrics, warnings, nil
}

func (j *Job) publish(eventType events.EventType, payload any) {
	if j.bus == nil {
		return
	}
	j.bus.Publish(events.Event{Type: eventType, TaskID: j.ID, League: j.League, Payload: payload})
}
