package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 1
	toneHz       = 880.0
)

// One audio context per process.
var (
	audioCtx     *oto.Context
	audioCtxOnce sync.Once
	audioCtxErr  error
)

func initContext() (*oto.Context, error) {
	audioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			audioCtxErr = err
			return
		}
		<-ready
		audioCtx = ctx
	})
	return audioCtx, audioCtxErr
}

// Sounder produces looping alarm playbacks.
type Sounder struct {
	log  logger.Logger
	tone []byte
}

// NewSounder creates a Sounder with a pre-rendered alarm tone: two short
// beeps followed by silence, one second per cycle.
func NewSounder(log logger.Logger) *Sounder {
	return &Sounder{log: log, tone: renderTone()}
}

// Playback is one looping alarm sound in progress.
type Playback struct {
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// Play starts the alarm tone and loops it until Stop is called on the
// returned Playback. Failure to open the audio device is returned to the
// caller; the alert presentation is expected to proceed without sound.
func (s *Sounder) Play() (*Playback, error) {
	ctx, err := initContext()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	p := &Playback{stopChan: make(chan struct{})}
	go s.playLoop(ctx, p)
	return p, nil
}

func (s *Sounder) playLoop(ctx *oto.Context, p *Playback) {
	for {
		player := ctx.NewPlayer(bytes.NewReader(s.tone))
		player.Play()

		for player.IsPlaying() {
			select {
			case <-p.stopChan:
				player.Pause()
				if err := player.Close(); err != nil {
					s.log.Warn(fmt.Sprintf("Failed to close audio player: %v", err))
				}
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		if err := player.Close(); err != nil {
			s.log.Warn(fmt.Sprintf("Failed to close audio player: %v", err))
		}

		select {
		case <-p.stopChan:
			return
		default:
		}
	}
}

// Stop ends the looping playback. Safe to call more than once.
func (p *Playback) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
	}
}

// renderTone builds one second of 16-bit PCM: beep, gap, beep, rest.
func renderTone() []byte {
	segments := []struct {
		duration time.Duration
		sounding bool
	}{
		{200 * time.Millisecond, true},
		{100 * time.Millisecond, false},
		{200 * time.Millisecond, true},
		{500 * time.Millisecond, false},
	}

	var buf bytes.Buffer
	for _, seg := range segments {
		samples := int(float64(sampleRate) * seg.duration.Seconds())
		for i := 0; i < samples; i++ {
			var sample int16
			if seg.sounding {
				v := math.Sin(2 * math.Pi * toneHz * float64(i) / sampleRate)
				sample = int16(v * 0.6 * math.MaxInt16)
			}
			binary.Write(&buf, binary.LittleEndian, sample)
		}
	}
	return buf.Bytes()
}
