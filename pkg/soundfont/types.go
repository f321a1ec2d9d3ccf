// Package soundfont decodes SoundFont 2 (.sf2) and SoundFont 3 (.sf3) banks
package soundfont

// Record widths of the pdta sub-chunks, in bytes
const (
	PresetHeaderSize     = 38
	BagSize              = 4
	ModulatorSize        = 10
	GeneratorSize        = 4
	InstrumentHeaderSize = 22
	SampleHeaderSize     = 46

	nameSize = 20
)

// Sentinel record names terminating the preset, instrument and sample tables
const (
	PresetSentinel     = "EOP"
	InstrumentSentinel = "EOI"
	SampleSentinel     = "EOS"
)

// SampleTypeCompressed is set on SF3 samples holding an Ogg Vorbis stream
const SampleTypeCompressed = 0x10

// Preset is one phdr record
type Preset struct {
	Index      int // Position in the phdr table
	Name       string
	Preset     uint16 // MIDI program number
	Bank       uint16
	BagIndex   uint16 // First zone in the pbag table
	Library    uint32
	Genre      uint32
	Morphology uint32
}

// IsSentinel reports whether p is the terminal EOP record
func (p Preset) IsSentinel() bool {
	return p.Name == PresetSentinel
}

// Instrument is one inst record
type Instrument struct {
	Index    int
	Name     string
	BagIndex uint16 // First zone in the ibag table
}

// IsSentinel reports whether i is the terminal EOI record
func (i Instrument) IsSentinel() bool {
	return i.Name == InstrumentSentinel || i.Name == ""
}

// Zone is one pbag or ibag record
type Zone struct {
	GeneratorIndex uint16
	ModulatorIndex uint16
}

// Generator is one pgen or igen record
type Generator struct {
	Operator Operator
	Amount   int16
}

// Modulator is one pmod or imod record. Modulators are decoded but not interpreted.
type Modulator struct {
	SrcOperator       uint16
	DestOperator      uint16
	Amount            int16
	AmountSrcOperator uint16
	TransOperator     uint16
}

// Sample is one shdr record plus its materialized PCM data
type Sample struct {
	Index           int
	Name            string
	Start           uint32 // Frame offsets into the smpl pool (byte offsets for SF3)
	End             uint32
	StartLoop       uint32
	EndLoop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8 // Cents
	SampleLink      uint16
	SampleType      uint16
	Data            []int16 // nil when the header has no realizable range
}

// IsSentinel reports whether s is the terminal EOS record
func (s Sample) IsSentinel() bool {
	return s.Name == SampleSentinel
}

// Compressed reports whether the sample is stored as Ogg Vorbis (SF3)
func (s Sample) Compressed() bool {
	return s.SampleType&SampleTypeCompressed != 0
}

// Version is an ifil or iver version tag
type Version struct {
	Major uint16
	Minor uint16
}

// Info holds the INFO list metadata of a bank
type Info struct {
	Version   Version
	Engine    string // isng
	Name      string // INAM
	ROM       string // irom
	Date      string // ICRD
	Engineers string // IENG
	Product   string // IPRD
	Copyright string // ICOP
	Comment   string // ICMT
	Software  string // ISFT
}

// SoundFont is a decoded bank. Every table keeps its sentinel record so that
// zone ranges can be computed by index; use Presets, Instruments and SampleList
// for the user-visible records.
type SoundFont struct {
	Info Info

	PresetHeaders    []Preset
	PresetZones      []Zone
	PresetModulators []Modulator
	PresetGenerators []Generator

	InstrumentHeaders    []Instrument
	InstrumentZones      []Zone
	InstrumentModulators []Modulator
	InstrumentGenerators []Generator

	Samples []Sample

	// SampleData is the raw smpl chunk
	SampleData []byte
}

// Presets returns the presets without the EOP sentinel
func (sf *SoundFont) Presets() []Preset {
	out := make([]Preset, 0, len(sf.PresetHeaders))
	for _, p := range sf.PresetHeaders {
		if !p.IsSentinel() {
			out = append(out, p)
		}
	}
	return out
}

// Instruments returns the instruments without the EOI sentinel
func (sf *SoundFont) Instruments() []Instrument {
	out := make([]Instrument, 0, len(sf.InstrumentHeaders))
	for _, i := range sf.InstrumentHeaders {
		if !i.IsSentinel() {
			out = append(out, i)
		}
	}
	return out
}

// SampleList returns the sample headers without the EOS sentinel
func (sf *SoundFont) SampleList() []Sample {
	out := make([]Sample, 0, len(sf.Samples))
	for _, s := range sf.Samples {
		if !s.IsSentinel() {
			out = append(out, s)
		}
	}
	return out
}

// Instrument returns the instrument at index, or false when the index is out
// of range or names the sentinel
func (sf *SoundFont) Instrument(index int) (Instrument, bool) {
	if index < 0 || index >= len(sf.InstrumentHeaders) {
		return Instrument{}, false
	}
	inst := sf.InstrumentHeaders[index]
	if inst.IsSentinel() {
		return Instrument{}, false
	}
	return inst, true
}

// Sample returns the sample at index, or false when the index is out of range
// or names the sentinel
func (sf *SoundFont) Sample(index int) (Sample, bool) {
	if index < 0 || index >= len(sf.Samples) {
		return Sample{}, false
	}
	s := sf.Samples[index]
	if s.IsSentinel() {
		return Sample{}, false
	}
	return s, true
}
