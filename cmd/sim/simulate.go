package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/entity"
	"github.com/milk9111/traverse/player"
)

// logSink stands in for speakers: cues are counted and logged.
type logSink struct {
	log    zerolog.Logger
	played map[string]int
}

func newLogSink(log zerolog.Logger) *logSink {
	return &logSink{log: log, played: map[string]int{}}
}

func (s *logSink) Play(cue string, volume, pitch float64) {
	s.played[cue]++
	s.log.Debug().Str("cue", cue).Float64("volume", volume).Float64("pitch", pitch).Msg("play")
}

func (s *logSink) Stop(cue string) {
	s.log.Debug().Str("cue", cue).Msg("stop")
}

// eventTally runs last in the frame and records every world event before the
// queue is flushed.
type eventTally struct {
	log    zerolog.Logger
	counts map[ecs.EventKind]int
}

func (t *eventTally) Update(w *ecs.World) {
	for _, evt := range w.Events().Events() {
		t.counts[evt.Kind]++
		t.log.Info().
			Str("event", string(evt.Kind)).
			Stringer("entity", evt.Entity).
			Interface("data", evt.Data).
			Float64("t", w.Elapsed()).
			Msg("world event")
	}
}

type summary struct {
	Frames      int
	Seconds     float64
	ScriptDone  bool
	Position    mgl64.Vec3
	Stance      player.Stance
	Perspective player.Perspective
	Combo       int
	Events      map[ecs.EventKind]int
	Cues        map[string]int
}

func (s summary) log(log zerolog.Logger) {
	evt := log.Info().
		Int("frames", s.Frames).
		Float64("seconds", s.Seconds).
		Bool("scriptDone", s.ScriptDone).
		Str("position", fmt.Sprintf("%.2f,%.2f,%.2f", s.Position.X(), s.Position.Y(), s.Position.Z())).
		Stringer("stance", s.Stance).
		Stringer("perspective", s.Perspective).
		Int("combo", s.Combo)

	kinds := make([]string, 0, len(s.Events))
	for kind := range s.Events {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		evt = evt.Int(kind, s.Events[ecs.EventKind(kind)])
	}
	evt.Interface("cues", s.Cues).Msg("simulation finished")
}

// simulate steps a scene at the configured tick rate until its script is done
// or duration seconds have passed.
func simulate(settings config.Settings, duration float64, report int, log zerolog.Logger) (summary, error) {
	if duration <= 0 {
		return summary{}, fmt.Errorf("sim: duration must be positive, got %g", duration)
	}

	sink := newLogSink(log.With().Str("sink", "audio").Logger())
	scene, err := entity.NewScene(settings, sink, log)
	if err != nil {
		return summary{}, err
	}
	tally := &eventTally{log: log, counts: map[ecs.EventKind]int{}}
	scene.Scheduler.Add(tally)

	dt := settings.TickSeconds()
	maxFrames := int(math.Ceil(duration/dt - 1e-9))
	log.Info().
		Str("level", scene.Level.Name).
		Str("script", settings.Script).
		Int("tickRate", settings.TickRate).
		Int("maxFrames", maxFrames).
		Msg("simulation started")

	frames := 0
	for frames < maxFrames {
		scene.Step(dt)
		frames++

		c := scene.Controller()
		if report > 0 && frames%report == 0 && c != nil {
			pos := c.Body().Position
			log.Debug().
				Int("frame", frames).
				Str("position", fmt.Sprintf("%.2f,%.2f,%.2f", pos.X(), pos.Y(), pos.Z())).
				Stringer("stance", c.Stance()).
				Float64("speed", c.Speed()).
				Bool("grounded", c.Grounded()).
				Msg("player")
		}
		if settings.Script != "" && scene.ScriptDone() {
			break
		}
	}

	out := summary{
		Frames:     frames,
		Seconds:    scene.World.Elapsed(),
		ScriptDone: settings.Script != "" && scene.ScriptDone(),
		Events:     tally.counts,
		Cues:       sink.played,
	}
	if c := scene.Controller(); c != nil {
		out.Position = c.Body().Position
		out.Stance = c.Stance()
		out.Perspective = c.Perspective()
		out.Combo = c.Combat().Combo()
	}
	return out, nil
}
