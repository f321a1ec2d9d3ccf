package converter

import (
	"fmt"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// BankSummary describes a bank for listing in the CLI, TUI and API
type BankSummary struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Engine      string              `json:"engine,omitempty"`
	Copyright   string              `json:"copyright,omitempty"`
	Comment     string              `json:"comment,omitempty"`
	Software    string              `json:"software,omitempty"`
	Presets     []PresetSummary     `json:"presets"`
	Instruments []InstrumentSummary `json:"instruments"`
	Samples     []SampleSummary     `json:"samples"`
}

// PresetSummary describes one preset
type PresetSummary struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Bank    uint16 `json:"bank"`
	Program uint16 `json:"program"`
	Regions int    `json:"regions"`
}

// InstrumentSummary describes one instrument
type InstrumentSummary struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Zones int    `json:"zones"`
}

// SampleSummary describes one sample header
type SampleSummary struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	SampleRate    uint32 `json:"sample_rate"`
	Frames        int    `json:"frames"`
	OriginalPitch uint8  `json:"original_pitch"`
	Compressed    bool   `json:"compressed,omitempty"`
	HasData       bool   `json:"has_data"`
}

// Inspect summarizes a decoded bank. Sentinel records are never listed.
func Inspect(sf *soundfont.SoundFont) BankSummary {
	summary := BankSummary{
		Name:        sf.Info.Name,
		Version:     versionString(sf.Info.Version),
		Engine:      sf.Info.Engine,
		Copyright:   sf.Info.Copyright,
		Comment:     sf.Info.Comment,
		Software:    sf.Info.Software,
		Presets:     []PresetSummary{},
		Instruments: []InstrumentSummary{},
		Samples:     []SampleSummary{},
	}

	for _, p := range sf.Presets() {
		summary.Presets = append(summary.Presets, PresetSummary{
			Index:   p.Index,
			Name:    p.Name,
			Bank:    p.Bank,
			Program: p.Preset,
			Regions: len(ResolvePreset(sf, p.Index, nil)),
		})
	}

	for _, inst := range sf.Instruments() {
		zones := sf.InstrumentZoneSet(inst.Index)
		summary.Instruments = append(summary.Instruments, InstrumentSummary{
			Index: inst.Index,
			Name:  inst.Name,
			Zones: len(zones.Zones),
		})
	}

	for _, s := range sf.SampleList() {
		summary.Samples = append(summary.Samples, SampleSummary{
			Index:         s.Index,
			Name:          s.Name,
			SampleRate:    s.SampleRate,
			Frames:        len(s.Data),
			OriginalPitch: s.OriginalPitch,
			Compressed:    s.Compressed(),
			HasData:       s.Data != nil,
		})
	}

	return summary
}

func versionString(v soundfont.Version) string {
	if v == (soundfont.Version{}) {
		return ""
	}
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}

// SampleCheck is the outcome of encoding one sample and reading it back
type SampleCheck struct {
	Name   string
	Frames int
	Err    error
}

// VerifySamples WAV-encodes every sample, decodes the result and compares it
// frame by frame with the source. Samples without data report ErrEmptySample.
func VerifySamples(sf *soundfont.SoundFont) []SampleCheck {
	var checks []SampleCheck
	for _, s := range sf.SampleList() {
		check := SampleCheck{Name: s.Name, Frames: len(s.Data)}
		check.Err = verifySample(s)
		checks = append(checks, check)
	}
	return checks
}

func verifySample(s soundfont.Sample) error {
	wav, err := EncodeWAV(s.Data, int(s.SampleRate))
	if err != nil {
		return err
	}
	decoded, rate, err := DecodeWAV(wav)
	if err != nil {
		return err
	}
	if rate != int(s.SampleRate) {
		return fmt.Errorf("sample rate %d read back as %d", s.SampleRate, rate)
	}
	if len(decoded) != len(s.Data) {
		return fmt.Errorf("%d frames read back as %d", len(s.Data), len(decoded))
	}
	for i := range decoded {
		if decoded[i] != s.Data[i] {
			return fmt.Errorf("frame %d is %d, read back as %d", i, s.Data[i], decoded[i])
		}
	}
	return nil
}
