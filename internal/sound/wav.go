package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// pcmFormatTag is the WAVE format code for uncompressed PCM.
const pcmFormatTag = 1

// supportedBitDepth is the only sample size the player accepts.
const supportedBitDepth = 16

var (
	// ErrNotWAV is returned when data lacks the RIFF/WAVE header.
	ErrNotWAV = errors.New("not a WAV file")
	// ErrUnsupportedWAV is returned for WAV files that are not 16-bit PCM.
	ErrUnsupportedWAV = errors.New("unsupported WAV encoding, want 16-bit PCM")
	// errNoDataChunk is returned when no data chunk follows the format chunk.
	errNoDataChunk = errors.New("WAV file has no data chunk")
)

// Format describes interleaved PCM samples.
type Format struct {
	// SampleRate is the number of frames per second.
	SampleRate int
	// Channels is the number of interleaved channels.
	Channels int
	// BitDepth is the size of one sample in bits.
	BitDepth int
}

// chunkHeader precedes every RIFF chunk.
type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// fmtChunk is the fixed part of the "fmt " chunk.
type fmtChunk struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ParseWAV extracts the format and raw samples of a 16-bit PCM WAV file.
func ParseWAV(data []byte) (Format, []byte, error) {
	var riff struct {
		ID   [4]byte
		Size uint32
		Wave [4]byte
	}

	reader := bytes.NewReader(data)
	if err := binary.Read(reader, binary.LittleEndian, &riff); err != nil {
		return Format{}, nil, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}

	if string(riff.ID[:]) != "RIFF" || string(riff.Wave[:]) != "WAVE" {
		return Format{}, nil, ErrNotWAV
	}

	var (
		format    Format
		hasFormat bool
	)

	for {
		var header chunkHeader
		if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Format{}, nil, errNoDataChunk
			}

			return Format{}, nil, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(header.ID[:]) {
		case "fmt ":
			var chunk fmtChunk
			if err := binary.Read(reader, binary.LittleEndian, &chunk); err != nil {
				return Format{}, nil, fmt.Errorf("read format chunk: %w", err)
			}

			if chunk.AudioFormat != pcmFormatTag || chunk.BitsPerSample != supportedBitDepth {
				return Format{}, nil, ErrUnsupportedWAV
			}

			format = Format{
				SampleRate: int(chunk.SampleRate),
				Channels:   int(chunk.Channels),
				BitDepth:   int(chunk.BitsPerSample),
			}
			hasFormat = true

			if err := skip(reader, int64(header.Size)-int64(binary.Size(chunk))); err != nil {
				return Format{}, nil, err
			}
		case "data":
			if !hasFormat {
				return Format{}, nil, ErrUnsupportedWAV
			}

			samples := make([]byte, header.Size)
			if _, err := io.ReadFull(reader, samples); err != nil {
				return Format{}, nil, fmt.Errorf("read samples: %w", err)
			}

			return format, samples, nil
		default:
			if err := skip(reader, int64(header.Size)); err != nil {
				return Format{}, nil, err
			}
		}
	}
}

// skip advances past n bytes plus the pad byte of odd-sized chunks.
func skip(reader *bytes.Reader, n int64) error {
	if n < 0 {
		return ErrNotWAV
	}

	if n%2 == 1 {
		n++
	}

	if _, err := reader.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("skip chunk: %w", err)
	}

	return nil
}

// EncodeWAV wraps 16-bit PCM samples into a WAV container.
func EncodeWAV(format Format, samples []byte) []byte {
	var buf bytes.Buffer

	blockAlign := format.Channels * format.BitDepth / 8

	// Writes to a bytes.Buffer do not fail.
	_ = binary.Write(&buf, binary.LittleEndian, struct {
		ID   [4]byte
		Size uint32
		Wave [4]byte
	}{[4]byte{'R', 'I', 'F', 'F'}, uint32(36 + len(samples)), [4]byte{'W', 'A', 'V', 'E'}})
	_ = binary.Write(&buf, binary.LittleEndian, chunkHeader{[4]byte{'f', 'm', 't', ' '}, uint32(binary.Size(fmtChunk{}))})
	_ = binary.Write(&buf, binary.LittleEndian, fmtChunk{
		AudioFormat:   pcmFormatTag,
		Channels:      uint16(format.Channels),
		SampleRate:    uint32(format.SampleRate),
		ByteRate:      uint32(format.SampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(format.BitDepth),
	})
	_ = binary.Write(&buf, binary.LittleEndian, chunkHeader{[4]byte{'d', 'a', 't', 'a'}, uint32(len(samples))})
	buf.Write(samples)

	return buf.Bytes()
}
