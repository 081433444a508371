// Package collab defines the collaborator interfaces the core consumes
// but never implements: weather/odds/xG providers, a calibration store,
// an experiment tracker, a progress sink, and a team resolver (spec.md
// §6). The core only ever imports these interfaces; concrete adapters
// (HTTP clients, SQLite-backed stores) live in orchestration and are
// injected at the call site — "collaborators are opaque behind it".
package collab

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/charleschow/football-outrights/internal/core/rating"
	"github.com/charleschow/football-outrights/internal/events"
	"github.com/charleschow/football-outrights/internal/teamresolver"
	"github.com/charleschow/football-outrights/internal/telemetry"
)

// WeatherInput is the component_input a WeatherProvider returns for one
// fixture: the precomputed weather_draw_index drawadjust.Weather wants.
type WeatherInput struct {
	DrawIndex float64
}

// XGInput is the component_input an XGProvider returns for one fixture.
type XGInput struct {
	DrawIndex float64
}

// OddsInput is the component_input an OddsProvider returns for one
// fixture: opening/closing 1x2 odds, feeding both drawadjust.OddsDrift
// and correlation.Detect.
type OddsInput struct {
	OpenHome, OpenDraw, OpenAway    float64
	CloseHome, CloseDraw, CloseAway float64
}

// WeatherProvider, OddsProvider and XGProvider each present
// get(fixture_key) -> component_input_or_null, per spec.md §6. A
// missing value is reported via the bool return, never a sentinel
// zero value, so the caller cannot mistake "known to be zero" for
// "unknown" (no silent defaults past a component boundary).
type WeatherProvider interface {
	Get(ctx context.Context, fixtureKey string) (WeatherInput, bool, error)
}

type XGProvider interface {
	Get(ctx context.Context, fixtureKey string) (XGInput, bool, error)
}

type OddsProvider interface {
	Get(ctx context.Context, fixtureKey string) (OddsInput, bool, error)
}

// CalibrationStore is C4's persistence collaborator: get(league, season)
// -> table_or_null. A nil table and nil error both mean "no table yet",
// matching rating.Apply's pass-through contract.
type CalibrationStore interface {
	Get(league, season string) (*rating.CalibrationTable, error)
}

// ExperimentTracker is an optional, best-effort sink for a completed
// fit's parameters and metrics. Its own timeouts never block training.
type ExperimentTracker interface {
	Record(ctx context.Context, artifact *rating.FitArtifact, metrics rating.Metrics) error
}

// ProgressSink is the write-only progress channel a training job
// publishes into; orchestration relays it onward however it likes
// (websocket, SSE, log line). BusProgressSink below adapts an
// *events.Bus to this interface.
type ProgressSink interface {
	Publish(events.TrainingProgress)
}

// TeamResolver mirrors teamresolver.Resolver's public contract as an
// interface, so the core depends on the shape, not the package.
type TeamResolver interface {
	Resolve(raw, leagueID string) (*teamresolver.Team, bool)
	Suggest(raw string, topK int) []string
}

// BusProgressSink adapts an *events.Bus to ProgressSink, wrapping each
// progress update in the envelope the rest of the codebase already
// dispatches on.
type BusProgressSink struct {
	Bus    *events.Bus
	TaskID string
}

func (s BusProgressSink) Publish(p events.TrainingProgress) {
	if s.Bus == nil {
		return
	}
	p.TaskID = s.TaskID
	s.Bus.Publish(events.Event{
		Type:    events.EventTrainingProgress,
		TaskID:  s.TaskID,
		Payload: &p,
	})
}

// DefaultTimeout bounds every external collaborator call the core's
// orchestration layer makes on its behalf, per spec.md §5: "every
// external collaborator call is wrapped with a bounded deadline".
const DefaultTimeout = 2 * time.Second

// Throttle paces calls to a single collaborator independent of how many
// fixtures are in flight — the same per-collaborator rate limiting the
// teacher's outbound HTTP clients apply with x/time/rate, generalized
// here past any one transport since no HTTP surface is in scope
// (SPEC_FULL.md's Non-goals). A nil *Throttle never blocks.
type Throttle struct {
	lim *rate.Limiter
}

// NewThrottle returns a Throttle permitting ratePerSecond calls per
// second with the given burst.
func NewThrottle(ratePerSecond float64, burst int) *Throttle {
	return &Throttle{lim: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Wait blocks until the throttle admits one call or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.lim == nil {
		return nil
	}
	return t.lim.Wait(ctx)
}

// WithTimeoutOrNeutral runs fn under a bounded deadline derived from
// ctx, first waiting on throttle (nil is fine — unthrottled). On
// success it returns (value, true); on timeout, cancellation, throttle
// wait failure, or error it logs a warning, bumps the provider-timeout
// counter, and returns the zero value with ok=false — the caller
// substitutes its own neutral default (1.0 for a draw factor, no
// calibration table for C4), per spec.md §7's ProviderUnavailable
// semantics: always recovered locally, never propagated as a fatal
// error.
func WithTimeoutOrNeutral[T any](ctx context.Context, timeout time.Duration, throttle *Throttle, label string, fn func(context.Context) (T, bool, error)) (T, bool) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := throttle.Wait(cctx); err != nil {
		telemetry.Metrics.ProviderTimeouts.Inc()
		telemetry.Warnf("collab: %s throttle wait failed, using neutral default: %v", label, err)
		var zero T
		return zero, false
	}

	type result struct {
		v  T
		ok bool
		e  error
	}
	done := make(chan result, 1)
	go func() {
		v, ok, err := fn(cctx)
		done <- result{v, ok, err}
	}()

	select {
	case r := <-done:
		if r.e != nil {
			telemetry.Metrics.ProviderTimeouts.Inc()
			telemetry.Warnf("collab: %s failed, using neutral default: %v", label, r.e)
			var zero T
			return zero, false
		}
		return r.v, r.ok
	case <-cctx.Done():
		telemetry.Metrics.ProviderTimeouts.Inc()
		telemetry.Warnf("collab: %s timed out after %s, using neutral default", label, timeout)
		var zero T
		return zero, false
	}
}
