package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Built-in alarm sound parameters.
const (
	beepSampleRate = 44100
	beepFrequency  = 880.0
	beepAmplitude  = 0.4
	beepLength     = 250 * time.Millisecond
	beepGap        = 150 * time.Millisecond
	beepFade       = 5 * time.Millisecond
	beepCount      = 4
)

// DefaultFormat is the PCM format of the built-in alarm sound.
//
//nolint:gochecknoglobals // Constant-like value of a struct type.
var DefaultFormat = Format{
	SampleRate: beepSampleRate,
	Channels:   1,
	BitDepth:   supportedBitDepth,
}

// Beep synthesises the built-in alarm sound: a few short sine bursts separated
// by silence, as mono 16-bit little-endian PCM.
func Beep() []byte {
	toneFrames := frames(beepLength)
	gapFrames := frames(beepGap)
	fadeFrames := float64(frames(beepFade))

	samples := make([]byte, 0, beepCount*(toneFrames+gapFrames)*2)

	for range beepCount {
		for i := range toneFrames {
			// Short linear fade at both ends avoids clicks.
			envelope := math.Min(1, math.Min(float64(i), float64(toneFrames-i))/fadeFrames)
			value := beepAmplitude * envelope * math.Sin(2*math.Pi*beepFrequency*float64(i)/beepSampleRate)
			samples = binary.LittleEndian.AppendUint16(samples, uint16(int16(value*math.MaxInt16)))
		}

		samples = append(samples, make([]byte, gapFrames*2)...)
	}

	return samples
}

// frames converts a duration into a frame count at the beep sample rate.
func frames(d time.Duration) int {
	return int(d.Seconds() * beepSampleRate)
}
