package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = 44100

// bytesPerFrame is one 16-bit stereo frame, ebiten's native PCM layout.
const bytesPerFrame = 4

// Tone describes a synthesized cue.
type Tone struct {
	Freq     float64
	Duration float64
	// Attack is the fade-in time in seconds, Decay the exponential fall-off
	// rate after it. Zero decay holds the level.
	Attack float64
	Decay  float64
	// Noise mixes white noise over the sine, 0..1.
	Noise float64
	// Sweep bends the frequency by this fraction over the cue.
	Sweep float64
	Gain  float64
	Loop  bool
}

var cueTones = map[string]Tone{
	"footstep": {Freq: 120, Duration: 0.09, Attack: 0.004, Decay: 45, Noise: 0.7, Sweep: -0.3, Gain: 0.5},
	"landing":  {Freq: 70, Duration: 0.25, Attack: 0.004, Decay: 18, Noise: 0.5, Sweep: -0.5, Gain: 0.8},
	"punch":    {Freq: 190, Duration: 0.14, Attack: 0.002, Decay: 30, Noise: 0.45, Sweep: -0.6, Gain: 0.7},
	"glide":    {Freq: 320, Duration: 1, Attack: 0, Decay: 0, Noise: 0.85, Gain: 0.25, Loop: true},
	"fall":     {Freq: 520, Duration: 0.45, Attack: 0.01, Decay: 6, Noise: 0.1, Sweep: -0.7, Gain: 0.5},
}

// ToneFor returns the tone of a named cue.
func ToneFor(cue string) (Tone, bool) {
	t, ok := cueTones[cue]
	return t, ok
}

// Synthesize renders cue as 16-bit little-endian stereo PCM at SampleRate.
// Pitch scales the frequency and shortens one-shot cues to match; looping
// cues keep their length so they tile.
func Synthesize(cue string, pitch float64) ([]byte, error) {
	tone, ok := cueTones[cue]
	if !ok {
		return nil, fmt.Errorf("assets: unknown cue %q", cue)
	}
	if pitch <= 0 {
		return nil, fmt.Errorf("assets: cue %q: pitch must be positive, got %g", cue, pitch)
	}
	return render(tone, pitch, int64(len(cue))), nil
}

func render(tone Tone, pitch float64, seed int64) []byte {
	duration := tone.Duration
	if !tone.Loop {
		duration /= pitch
	}
	frames := int(duration * SampleRate)
	rng := rand.New(rand.NewSource(seed))

	var buf bytes.Buffer
	buf.Grow(frames * bytesPerFrame)
	phase := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		progress := t / duration

		freq := tone.Freq * pitch * (1 + tone.Sweep*progress)
		phase += 2 * math.Pi * freq / SampleRate

		v := (1-tone.Noise)*math.Sin(phase) + tone.Noise*(rng.Float64()*2-1)
		v *= tone.Gain * envelope(tone, t)

		s := int16(clampSample(v) * math.MaxInt16)
		_ = binary.Write(&buf, binary.LittleEndian, [2]int16{s, s})
	}
	return buf.Bytes()
}

func envelope(tone Tone, t float64) float64 {
	if tone.Attack > 0 && t < tone.Attack {
		return t / tone.Attack
	}
	if tone.Decay == 0 {
		return 1
	}
	return math.Exp(-(t - tone.Attack) * tone.Decay)
}

// clampSample clamps a sample to -1..1.
func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// NewCuePlayer renders cue and wraps it in a player on ctx. Looping cues
// repeat until paused.
func NewCuePlayer(ctx *audio.Context, cue string, volume, pitch float64) (*audio.Player, error) {
	pcm, err := Synthesize(cue, pitch)
	if err != nil {
		return nil, err
	}

	var p *audio.Player
	if tone := cueTones[cue]; tone.Loop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err = ctx.NewPlayer(loop)
		if err != nil {
			return nil, fmt.Errorf("assets: cue %q: %w", cue, err)
		}
	} else {
		p = ctx.NewPlayerFromBytes(pcm)
	}
	p.SetVolume(volume)
	return p, nil
}
