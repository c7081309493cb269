// Package synth generates the game's sound effects and engine loop as
// stereo float32 little-endian PCM.
package synth

import (
	"io"
	"math"
	"sync/atomic"
)

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BytesPerFrame = 8 // two float32 channels
)

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundCrash Sound = iota
	SoundGameOver
	SoundStart
)

func (s Sound) String() string {
	switch s {
	case SoundCrash:
		return "crash"
	case SoundGameOver:
		return "game_over"
	case SoundStart:
		return "start"
	}
	return "unknown"
}

// Generate renders a one-shot effect. Unknown sounds render as nil.
func Generate(s Sound) []byte {
	switch s {
	case SoundCrash:
		return genCrash()
	case SoundGameOver:
		return genGameOver()
	case SoundStart:
		return genStart()
	}
	return nil
}

// NewReader streams a rendered buffer once.
func NewReader(data []byte) io.Reader { return &soundReader{data: data} }

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation with no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*BytesPerFrame) }

// genCrash: metal crunch. Low thump under lowpassed noise with a few
// FM clangs on top.
func genCrash() []byte {
	n := int(0.7 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xC2A5)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.005, 0.35, 0.25, 0.5)

		noise := lcg(&seed)
		lp += (noise - lp) * (0.35 - 0.3*p)
		thump := math.Sin(2*math.Pi*(70-40*p)*t) * math.Exp(-t*9)
		clang := fm(t, 420, 2.76, 3.0*math.Exp(-t*14)) * math.Exp(-t*10) * 0.35

		s := (lp*0.7 + thump*0.8 + clang) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025) // slight pitch drop
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1 // sub
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: two quick rising blips.
func genStart() []byte {
	blip := int(0.07 * SampleRate)
	gap := int(0.03 * SampleRate)
	n := 2*blip + gap
	buf := makeBuf(n)
	for k, base := range []float64{660, 990} {
		off := k * (blip + gap)
		for j := 0; j < blip; j++ {
			t := float64(j) / SampleRate
			p := float64(j) / float64(blip)
			env := adsr(p, 0.01, 0.5, 0.2, 0.3)
			freq := base * (1 + 0.15*p)
			putStereoF32(buf, off+j, softSat(fm(t, freq, 1.0, 0.8)*env*0.4))
		}
	}
	return buf
}

// Engine is an endless engine hum whose pitch follows the throttle.
// SetThrottle may be called from any goroutine.
type Engine struct {
	throttle atomic.Uint64 // float64 bits, 0 idle .. 1 full
	freq     float64
	phase    float64 // saw, in cycles [0,1)
	subPhase float64 // sub-octave sine, in cycles [0,1)
	seed     uint64
	lp       float64
}

const (
	engineIdleHz = 48.0
	engineTopHz  = 120.0
)

func NewEngine() *Engine {
	return &Engine{freq: engineIdleHz, seed: 0xE61E}
}

func (e *Engine) SetThrottle(v float64) {
	e.throttle.Store(math.Float64bits(math.Max(0, math.Min(1, v))))
}

func (e *Engine) Throttle() float64 {
	return math.Float64frombits(e.throttle.Load())
}

// Frequency is the current fundamental, which glides toward the throttle
// target while samples are read.
func (e *Engine) Frequency() float64 { return e.freq }

func wrapPhase(p float64) float64 {
	if p >= 1 {
		p--
	}
	return p
}

func (e *Engine) Read(p []byte) (int, error) {
	samples := len(p) / BytesPerFrame
	target := engineIdleHz + (engineTopHz-engineIdleHz)*e.Throttle()
	glide := 1 - math.Exp(-1/(0.25*SampleRate))
	for i := 0; i < samples; i++ {
		e.freq += (target - e.freq) * glide
		e.phase = wrapPhase(e.phase + e.freq/SampleRate)
		e.subPhase = wrapPhase(e.subPhase + 0.5*e.freq/SampleRate)

		saw := 2*e.phase - 1
		noise := lcg(&e.seed)
		e.lp += (noise - e.lp) * 0.02
		s := saw*0.35 + math.Sin(2*math.Pi*e.subPhase)*0.4 + e.lp*0.3
		putStereoF32(p, i, softSat(s*0.6))
	}
	return samples * BytesPerFrame, nil
}
