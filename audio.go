package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/assets"
)

// speakers plays cues through ebiten's audio context. One-shot players are
// kept until they finish; looping cues hold one player each.
type speakers struct {
	ctx     *audio.Context
	log     zerolog.Logger
	playing []*audio.Player
	loops   map[string]*audio.Player
}

func newSpeakers(log zerolog.Logger) *speakers {
	return &speakers{
		ctx:   audio.NewContext(assets.SampleRate),
		log:   log,
		loops: map[string]*audio.Player{},
	}
}

func (s *speakers) Play(cue string, volume, pitch float64) {
	if tone, ok := assets.ToneFor(cue); ok && tone.Loop {
		if p, ok := s.loops[cue]; ok {
			p.SetVolume(volume)
			return
		}
	}

	p, err := assets.NewCuePlayer(s.ctx, cue, volume, pitch)
	if err != nil {
		s.log.Warn().Err(err).Str("cue", cue).Msg("cannot play cue")
		return
	}
	p.Play()

	if tone, _ := assets.ToneFor(cue); tone.Loop {
		s.loops[cue] = p
		return
	}
	s.prune()
	s.playing = append(s.playing, p)
}

func (s *speakers) Stop(cue string) {
	p, ok := s.loops[cue]
	if !ok {
		return
	}
	p.Pause()
	if err := p.Close(); err != nil {
		s.log.Debug().Err(err).Str("cue", cue).Msg("close player")
	}
	delete(s.loops, cue)
}

func (s *speakers) prune() {
	kept := s.playing[:0]
	for _, p := range s.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	s.playing = kept
}
