// Package sftest builds small SoundFont banks in memory for tests
package sftest

import (
	"bytes"
	"encoding/binary"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// Gen is a single generator in a zone
type Gen struct {
	Op     soundfont.Operator
	Amount int16
}

// Zone is an ordered generator list
type Zone []Gen

// Preset describes a phdr record and its zones
type Preset struct {
	Name    string
	Program uint16
	Bank    uint16
	Zones   []Zone
}

// Instrument describes an inst record and its zones
type Instrument struct {
	Name  string
	Zones []Zone
}

// Sample describes an shdr record. LoopStart and LoopEnd are relative to the
// first frame of Data. A sample with Vorbis set is written as an SF3 sample:
// the stream is stored verbatim and addressed by byte offsets.
type Sample struct {
	Name            string
	Rate            uint32
	OriginalPitch   uint8
	PitchCorrection int8
	LoopStart       uint32
	LoopEnd         uint32
	Type            uint16 // sfSampleType, 0 means mono
	Data            []int16
	Vorbis          []byte // Ogg Vorbis stream, replaces Data
}

// Bank is a complete bank description. Sentinel records are added by Bytes.
type Bank struct {
	Name        string
	Presets     []Preset
	Instruments []Instrument
	Samples     []Sample
}

// padFrames follows every sample in the smpl chunk, as the format requires
const padFrames = 46

// Range packs a key or velocity range into a generator amount
func Range(lo, hi uint8) int16 {
	return int16(uint16(hi)<<8 | uint16(lo))
}

// Bytes encodes the bank as an SF2 file
func (b Bank) Bytes() []byte {
	var smpl bytes.Buffer
	var shdr bytes.Buffer
	for _, s := range b.Samples {
		var start, end uint32
		if s.Vorbis != nil {
			start = uint32(smpl.Len())
			smpl.Write(s.Vorbis)
			end = uint32(smpl.Len())
			if smpl.Len()%2 == 1 {
				smpl.WriteByte(0)
			}
		} else {
			start = uint32(smpl.Len() / 2)
			for _, v := range s.Data {
				writeLE(&smpl, v)
			}
			end = start + uint32(len(s.Data))
			for i := 0; i < padFrames; i++ {
				writeLE(&smpl, int16(0))
			}
		}

		writeName(&shdr, s.Name)
		writeLE(&shdr, start)
		writeLE(&shdr, end)
		writeLE(&shdr, start+s.LoopStart)
		writeLE(&shdr, start+s.LoopEnd)
		writeLE(&shdr, s.Rate)
		writeLE(&shdr, s.OriginalPitch)
		writeLE(&shdr, s.PitchCorrection)
		sampleType := s.Type
		if sampleType == 0 {
			sampleType = 1
		}
		if s.Vorbis != nil {
			sampleType |= soundfont.SampleTypeCompressed
		}
		writeLE(&shdr, uint16(0)) // sample link
		writeLE(&shdr, sampleType)
	}
	writeName(&shdr, soundfont.SampleSentinel)
	shdr.Write(make([]byte, soundfont.SampleHeaderSize-20))

	var phdr, pbag, pgen bytes.Buffer
	var bagIndex, genIndex uint16
	for _, p := range b.Presets {
		writeName(&phdr, p.Name)
		writeLE(&phdr, p.Program)
		writeLE(&phdr, p.Bank)
		writeLE(&phdr, bagIndex)
		phdr.Write(make([]byte, 12))
		for _, z := range p.Zones {
			writeLE(&pbag, genIndex)
			writeLE(&pbag, uint16(0))
			for _, g := range z {
				writeLE(&pgen, uint16(g.Op))
				writeLE(&pgen, g.Amount)
				genIndex++
			}
			bagIndex++
		}
	}
	writeName(&phdr, soundfont.PresetSentinel)
	phdr.Write(make([]byte, 4))
	writeLE(&phdr, bagIndex)
	phdr.Write(make([]byte, 12))
	writeLE(&pbag, genIndex)
	writeLE(&pbag, uint16(0))
	pgen.Write(make([]byte, soundfont.GeneratorSize))

	var inst, ibag, igen bytes.Buffer
	bagIndex, genIndex = 0, 0
	for _, in := range b.Instruments {
		writeName(&inst, in.Name)
		writeLE(&inst, bagIndex)
		for _, z := range in.Zones {
			writeLE(&ibag, genIndex)
			writeLE(&ibag, uint16(0))
			for _, g := range z {
				writeLE(&igen, uint16(g.Op))
				writeLE(&igen, g.Amount)
				genIndex++
			}
			bagIndex++
		}
	}
	writeName(&inst, soundfont.InstrumentSentinel)
	writeLE(&inst, bagIndex)
	writeLE(&ibag, genIndex)
	writeLE(&ibag, uint16(0))
	igen.Write(make([]byte, soundfont.GeneratorSize))

	name := b.Name
	if name == "" {
		name = "Test Bank"
	}
	info := List(soundfont.CIDInfo,
		Chunk(soundfont.CIDIfil, []byte{2, 0, 1, 0}),
		Chunk(soundfont.CIDIsng, nulTerminated("EMU8000")),
		Chunk(soundfont.CIDInam, nulTerminated(name)),
	)
	sdta := List(soundfont.CIDSdta, Chunk(soundfont.CIDSmpl, smpl.Bytes()))
	pdta := List(soundfont.CIDPdta,
		Chunk(soundfont.CIDPhdr, phdr.Bytes()),
		Chunk(soundfont.CIDPbag, pbag.Bytes()),
		Chunk(soundfont.CIDPmod, make([]byte, soundfont.ModulatorSize)),
		Chunk(soundfont.CIDPgen, pgen.Bytes()),
		Chunk(soundfont.CIDInst, inst.Bytes()),
		Chunk(soundfont.CIDIbag, ibag.Bytes()),
		Chunk(soundfont.CIDImod, make([]byte, soundfont.ModulatorSize)),
		Chunk(soundfont.CIDIgen, igen.Bytes()),
		Chunk(soundfont.CIDShdr, shdr.Bytes()),
	)
	return File(info, sdta, pdta)
}

// File wraps chunks in a RIFF sfbk container
func File(chunks ...[]byte) []byte {
	body := append([]byte("sfbk"), bytes.Join(chunks, nil)...)
	return Chunk([4]byte{'R', 'I', 'F', 'F'}, body)
}

// List builds a LIST chunk of the given type
func List(listType [4]byte, chunks ...[]byte) []byte {
	body := append(listType[:], bytes.Join(chunks, nil)...)
	return Chunk(soundfont.CIDList, body)
}

// Chunk builds a chunk with a little-endian size header. Odd bodies get the
// RIFF pad byte, which the size field does not count.
func Chunk(id [4]byte, body []byte) []byte {
	var buf bytes.Buffer
	buf.Write(id[:])
	writeLE(&buf, uint32(len(body)))
	buf.Write(body)
	if len(body)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func writeLE(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func writeName(buf *bytes.Buffer, name string) {
	var field [20]byte
	copy(field[:], name)
	buf.Write(field[:])
}

func nulTerminated(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}
