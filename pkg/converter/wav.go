package converter

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrEncoding is returned when a sample cannot be written as WAV
	ErrEncoding = errors.New("wav encoding failed")
	// ErrEmptySample is returned for samples without PCM data
	ErrEmptySample = fmt.Errorf("%w: sample has no data", ErrEncoding)
)

const (
	wavBitDepth  = 16
	wavChannels  = 1
	wavPCMFormat = 1
)

// EncodeWAV wraps mono 16-bit samples in a canonical 44-byte WAV header
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySample
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrEncoding, sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	out := &memWriteSeeker{}
	enc := wav.NewEncoder(out, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return out.Bytes(), nil
}

// DecodeWAV reads a 16-bit PCM WAV buffer back into samples. Multi-channel
// files keep only the first channel.
func DecodeWAV(data []byte) ([]int16, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, errors.New("not a valid wav file")
	}
	if dec.BitDepth != wavBitDepth {
		return nil, 0, fmt.Errorf("unsupported bit depth %d", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read pcm data: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	out := make([]int16, len(buf.Data)/channels)
	for i := range out {
		out[i] = int16(buf.Data[i*channels])
	}
	return out, int(dec.SampleRate), nil
}

// memWriteSeeker is an in-memory io.WriteSeeker for the wav encoder, which
// seeks back to patch chunk sizes on Close
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(m.pos) + offset
	case io.SeekEnd:
		pos = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("negative seek position")
	}
	m.pos = int(pos)
	return pos, nil
}

// Bytes returns everything written so far
func (m *memWriteSeeker) Bytes() []byte {
	return m.buf
}
