package converter

import (
	"bytes"
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	previewTicksPerQuarter = 480
	previewTempo           = 120.0
	previewVelocity        = 100
)

// PreviewNote is one note of an audition file
type PreviewNote struct {
	Key      uint8
	Velocity uint8
}

// previewNote picks the note that sounds region r: its key center, pulled
// into the key range, at a velocity inside the velocity range
func previewNote(r Region) PreviewNote {
	key := r.KeyCenter()
	kr := r.KeyRange()
	if key < kr.Low {
		key = kr.Low
	}
	if key > kr.High {
		key = kr.High
	}

	vel := uint8(previewVelocity)
	if vr := r.Velocity; vr != nil && (vel < vr.Low || vel > vr.High) {
		vel = vr.Low + (vr.High-vr.Low)/2
	}
	if vel == 0 {
		vel = 1
	}
	return PreviewNote{Key: key, Velocity: vel}
}

// GeneratePreview writes a Standard MIDI File that plays every region once,
// in order, one beat each at 120 BPM
func GeneratePreview(regions []Region) ([]byte, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions to preview")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(previewTicksPerQuarter)

	var track smf.Track

	microsecondsPerBeat := uint32(60000000.0 / previewTempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	// Notes are held for 7/8 of a beat so repeated keys retrigger
	noteLength := uint32(previewTicksPerQuarter) * 7 / 8
	gap := uint32(previewTicksPerQuarter) - noteLength

	channel := uint8(0)
	var delta uint32
	for _, r := range regions {
		n := previewNote(r)
		track.Add(delta, midi.NoteOn(channel, n.Key, n.Velocity))
		track.Add(noteLength, midi.NoteOff(channel, n.Key))
		delta = gap
	}

	track.Close(delta)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadPreview returns the notes of an audition file in play order
func ReadPreview(data []byte) ([]PreviewNote, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	var notes []PreviewNote
	for _, track := range s.Tracks {
		for _, ev := range track {
			// Note On: 0x9n key velocity, velocity 0 being a note off
			msg := ev.Message
			if len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0 {
				notes = append(notes, PreviewNote{Key: msg[1], Velocity: msg[2]})
			}
		}
	}
	return notes, nil
}
