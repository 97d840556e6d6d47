package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

func defaultSettings(t *testing.T) config.Settings {
	t.Helper()
	t.Cleanup(viper.Reset)
	require.NoError(t, config.Load(t.TempDir()))
	settings, err := config.Get()
	require.NoError(t, err)
	return settings
}

func TestSimulate_DemoScriptFinishes(t *testing.T) {
	settings := defaultSettings(t)
	settings.Script = "demo"

	out, err := simulate(settings, 30, 0, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, out.ScriptDone)
	assert.Less(t, out.Frames, 30*settings.TickRate, "script ends before the time limit")
	assert.GreaterOrEqual(t, out.Events[ecs.EventDestroyed], 1, "combo breaks the first crate")
	assert.GreaterOrEqual(t, out.Cues[component.CuePunch], 1)
	assert.Greater(t, out.Position.Z(), 1.0)
}

func TestSimulate_WithoutScriptRunsForDuration(t *testing.T) {
	settings := defaultSettings(t)

	out, err := simulate(settings, 0.5, 10, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 30, out.Frames)
	assert.InDelta(t, 0.5, out.Seconds, 1e-9)
	assert.False(t, out.ScriptDone)
	assert.Zero(t, out.Events[ecs.EventDestroyed])
}

func TestSimulate_Errors(t *testing.T) {
	settings := defaultSettings(t)

	_, err := simulate(settings, 0, 0, zerolog.Nop())
	assert.ErrorContains(t, err, "duration must be positive")

	settings.Level = "missing.yaml"
	_, err = simulate(settings, 1, 0, zerolog.Nop())
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestEventTallyCountsBeforeFlush(t *testing.T) {
	w := ecs.NewWorld()
	tally := &eventTally{log: zerolog.Nop(), counts: map[ecs.EventKind]int{}}
	push := systemFunc(func(w *ecs.World) {
		w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Data: 4.2})
	})
	s := ecs.NewScheduler(push, tally)

	s.Update(w, 1.0/60)
	s.Update(w, 1.0/60)

	assert.Equal(t, 2, tally.counts[ecs.EventLanded])
}

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
