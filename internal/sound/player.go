package sound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultSoundID selects the synthesised beep.
const DefaultSoundID = "default"

// pollInterval is how often playback progress is checked.
const pollInterval = 10 * time.Millisecond

// errFormatMismatch is returned when a sound differs from the format the
// audio device was opened with; oto allows one context per process.
var errFormatMismatch = errors.New("sound format differs from the opened audio device")

// Player plays sounds by id: DefaultSoundID or a path to a WAV file.
// The audio device is opened lazily on the first Play.
type Player struct {
	// mu guards the fields below.
	mu sync.Mutex
	// device is the shared oto context, nil until opened.
	device *oto.Context
	// format is the format the device was opened with.
	format Format
	// sounds caches decoded samples by sound id.
	sounds map[string][]byte
	// formats caches sample formats by sound id.
	formats map[string]Format
}

// NewPlayer creates a player without touching the audio device.
func NewPlayer() *Player {
	return &Player{
		sounds:  make(map[string][]byte),
		formats: make(map[string]Format),
	}
}

// Play plays the sound once and returns when playback ends or ctx is done.
func (p *Player) Play(ctx context.Context, soundID string) error {
	format, samples, err := p.load(soundID)
	if err != nil {
		return err
	}

	device, err := p.open(ctx, format)
	if err != nil {
		return err
	}

	player := device.NewPlayer(bytes.NewReader(samples))

	defer func() {
		if closeErr := player.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to close audio player", "error", closeErr)
		}
	}()

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()

			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Err()
}

// load returns cached samples or decodes them.
func (p *Player) load(soundID string) (Format, []byte, error) {
	if soundID == "" {
		soundID = DefaultSoundID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if samples, ok := p.sounds[soundID]; ok {
		return p.formats[soundID], samples, nil
	}

	var (
		format  Format
		samples []byte
	)

	if soundID == DefaultSoundID {
		format, samples = DefaultFormat, Beep()
	} else {
		data, err := os.ReadFile(filepath.Clean(soundID))
		if err != nil {
			return Format{}, nil, fmt.Errorf("read sound: %w", err)
		}

		if format, samples, err = ParseWAV(data); err != nil {
			return Format{}, nil, fmt.Errorf("decode sound %s: %w", soundID, err)
		}
	}

	p.sounds[soundID] = samples
	p.formats[soundID] = format

	return format, samples, nil
}

// open returns the audio device, opening it with format on first use.
func (p *Player) open(ctx context.Context, format Format) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device != nil {
		if p.format != format {
			return nil, errFormatMismatch
		}

		return p.device, nil
	}

	device, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	// Wait for the hardware audio devices to be ready.
	select {
	case <-ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	logger.DebugKV(ctx, "Audio device opened", "sample_rate", format.SampleRate, "channels", format.Channels)

	p.device = device
	p.format = format

	return device, nil
}
