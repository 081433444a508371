package events

import "time"

// Event is the envelope that flows through the progress bus. Every
// training-job update (progress tick, completion, failure) is wrapped
// in one so a single Bus can carry all of them to orchestration.
type Event struct {
	ID        string
	Type      EventType
	TaskID    string
	League    string
	Timestamp time.Time
	Payload   any
}

type EventType string

const (
	// EventTrainingProgress carries a *TrainingProgress payload.
	EventTrainingProgress EventType = "training_progress"
	// EventTrainingDone carries a *TrainingDone payload.
	EventTrainingDone EventType = "training_done"
	// EventTrainingFailed carries a *TrainingFailed payload.
	EventTrainingFailed EventType = "training_failed"
)
