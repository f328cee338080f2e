package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

type tone struct {
	from, to float64
	length   time.Duration
	volume   float64
}

var tones = map[string]tone{
	"hit":    {from: 220, to: 110, length: 180 * time.Millisecond, volume: 0.5},
	"pickup": {from: 660, to: 990, length: 120 * time.Millisecond, volume: 0.35},
	"lose":   {from: 330, to: 82, length: 700 * time.Millisecond, volume: 0.5},
	"win":    {from: 440, to: 880, length: 600 * time.Millisecond, volume: 0.4},
}

var (
	audioOnce    sync.Once
	audioContext *audio.Context

	pcmMu    sync.Mutex
	pcmCache = map[string][]byte{}
)

func audioCtx() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// SoundNames lists the sounds Tone can generate.
func SoundNames() []string {
	return []string{"hit", "pickup", "lose", "win"}
}

// Tone returns the named sound as 16-bit little-endian stereo PCM, the
// format audio.Context.NewPlayerFromBytes expects.
func Tone(name string) ([]byte, error) {
	pcmMu.Lock()
	defer pcmMu.Unlock()

	if b, ok := pcmCache[name]; ok {
		return b, nil
	}
	t, ok := tones[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown sound %q", name)
	}
	b := t.render()
	pcmCache[name] = b
	return b, nil
}

// LoadAudioPlayer builds a fresh player for the named sound.
func LoadAudioPlayer(name string) (*audio.Player, error) {
	b, err := Tone(name)
	if err != nil {
		return nil, err
	}
	return audioCtx().NewPlayerFromBytes(b), nil
}

// render sweeps a sine from t.from to t.to with a linear fade out.
func (t tone) render() []byte {
	n := int(t.length.Seconds() * SampleRate)
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*p
		phase += 2 * math.Pi * freq / SampleRate
		v := int16(math.Sin(phase) * t.volume * (1 - p) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
