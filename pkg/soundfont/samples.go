package soundfont

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jfreymuth/oggvorbis"
)

// materializeSamples attaches PCM data to every sample header that has a
// realizable range in the smpl pool
func (d *decoder) materializeSamples() {
	for i := range d.sf.Samples {
		s := &d.sf.Samples[i]
		if s.IsSentinel() {
			continue
		}

		var err error
		if s.Compressed() {
			s.Data, err = decodeCompressed(d.sf.SampleData, s.Start, s.End)
		} else {
			s.Data, err = slicePCM(d.sf.SampleData, s.Start, s.End)
		}
		if err != nil {
			d.log.Warn("sample has no usable data", "sample", s.Name, "index", i, "error", err)
			s.Data = nil
		}
	}
}

// slicePCM returns frames [start, end) of the 16-bit little-endian pool
func slicePCM(pool []byte, start, end uint32) ([]int16, error) {
	from, to := 2*uint64(start), 2*uint64(end)
	if to <= from {
		return nil, fmt.Errorf("empty frame range %d..%d", start, end)
	}
	if to > uint64(len(pool)) {
		return nil, fmt.Errorf("frame range %d..%d exceeds the %d-frame sample pool", start, end, len(pool)/2)
	}
	raw := pool[from:to]
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(le.Uint16(raw[2*i:]))
	}
	return out, nil
}

// decodeCompressed decodes the Ogg Vorbis stream stored at byte offsets
// [start, end) of the pool. Only the first channel is kept.
func decodeCompressed(pool []byte, start, end uint32) ([]int16, error) {
	if end <= start || uint64(end) > uint64(len(pool)) {
		return nil, fmt.Errorf("compressed byte range %d..%d outside the %d-byte pool", start, end, len(pool))
	}
	pcm, format, err := oggvorbis.ReadAll(bytes.NewReader(pool[start:end]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vorbis stream: %w", err)
	}
	channels := format.Channels
	if channels < 1 {
		channels = 1
	}
	frames := len(pcm) / channels
	if frames == 0 {
		return nil, fmt.Errorf("vorbis stream holds no frames")
	}
	out := make([]int16, frames)
	for i := range out {
		out[i] = floatToInt16(pcm[i*channels])
	}
	return out, nil
}

func floatToInt16(v float32) int16 {
	scaled := math.Round(float64(v) * 32767)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}
