package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/events"
)

func day(offset int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func sampleMatches() []rating.Match {
	teams := []string{"ARS", "CHE", "LIV", "MCI"}
	var matches []rating.Match
	idx := 0
	for round := 0; round < 6; round++ {
		for i, home := range teams {
			away := teams[(i+1+round)%len(teams)]
			if home == away {
				continue
			}
			matches = append(matches, rating.Match{
				League:    "EPL",
				Date:      day(idx),
				HomeID:    home,
				AwayID:    away,
				HomeGoals: (idx*7 + round) % 4,
				AwayGoals: (idx*3 + round) % 3,
			})
			idx++
		}
	}
	return matches
}

func TestJob_Run_PublishesArtifactAndEvents(t *testing.T) {
	bus := events.NewBus()
	var progressCount, done int
	bus.Subscribe(events.EventTrainingProgress, func(e events.Event) error {
		progressCount++
		return nil
	})
	bus.Subscribe(events.EventTrainingDone, func(e events.Event) error {
		done++
		return nil
	})

	pub := rating.NewPublisher()
	job := NewJob("job-1", "EPL", rating.DefaultConfig(), rating.NewGoldenSectionOptimizer(), pub, bus, nil)

	artifact, _, _, err := job.Run(context.Background(), sampleMatches())
	require.NoError(t, err)
	assert.Equal(t, StatusDone, job.Status())
	assert.Equal(t, 1, done)
	assert.NotZero(t, progressCount)
	require.NotNil(t, pub.Current())
	assert.Equal(t, artifact.HomeAdvantage, pub.Current().HomeAdvantage)
	assert.Equal(t, artifact.Teams, pub.Current().Teams)
}

func TestJob_Run_EmptyID_GeneratesUUID(t *testing.T) {
	job := NewJob("", "EPL", rating.DefaultConfig(), rating.NewGoldenSectionOptimizer(), rating.NewPublisher(), nil, nil)
	assert.NotEmpty(t, job.ID)
}

func TestJob_Run_EmptyMatches_Fails(t *testing.T) {
	job := NewJob("", "EPL", rating.DefaultConfig(), rating.NewGoldenSectionOptimizer(), rating.NewPublisher(), nil, nil)
	_, _, _, err := job.Run(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, StatusFailed, job.Status())
}

func TestJob_Cancel_StopsRunBeforeCompletion(t *testing.T) {
	bus := events.NewBus()
	var failed int
	bus.Subscribe(events.EventTrainingFailed, func(e events.Event) error {
		failed++
		return nil
	})

	parentCtx, parentCancel := context.WithCancel(context.Background())
	parentCancel()

	job := NewJob("job-2", "EPL", rating.DefaultConfig(), rating.NewGoldenSectionOptimizer(), rating.NewPublisher(), bus, nil)
	_, _, _, err := job.Run(parentCtx, sampleMatches())
	assert.ErrorIs(t, err, rating.ErrCancelled)
	assert.Equal(t, StatusCancelled, job.Status())
	assert.Equal(t, 1, failed)
}

type recordingTracker struct {
	calls int
}

func (r *recordingTracker) Record(ctx context.Context, artifact *rating.FitArtifact, metrics rating.Metrics) error {
	r.calls++
	return nil
}

func TestJob_Run_RecordsToTracker(t *testing.T) {
	tracker := &recordingTracker{}
	job := NewJob("", "EPL", rating.DefaultConfig(), rating.NewGoldenSectionOptimizer(), rating.NewPublisher(), nil, tracker)
	_, _, _, err := job.Run(context.Background(), sampleMatches())
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.calls)
}
