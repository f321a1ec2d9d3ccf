package converter

import (
	"io"
	"log/slog"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// Range is an inclusive key or velocity range
type Range struct {
	Low  uint8
	High uint8
}

// FullRange covers every MIDI key or velocity
var FullRange = Range{Low: 0, High: 127}

// Region is one resolved (preset zone, instrument zone, sample) triple
type Region struct {
	Instrument soundfont.Instrument
	Sample     soundfont.Sample

	// SampleFile is the file name written to the sample= directive
	SampleFile string

	// Generators is the four-layer override merge. Key and velocity ranges
	// are resolved separately into Key and Velocity.
	Generators soundfont.GeneratorMap

	Key      *Range // nil when unranged
	Velocity *Range // nil when unranged
}

// KeyRange returns the key range, defaulting to the full keyboard
func (r Region) KeyRange() Range {
	if r.Key == nil {
		return FullRange
	}
	return *r.Key
}

// KeyCenter returns the overriding root key, or the sample's original pitch
// when the generator is absent or -1. Pitches above 127 fall back to 60.
func (r Region) KeyCenter() uint8 {
	if v, ok := r.Generators.Get(soundfont.OverridingRootKey); ok && v >= 0 && v <= 127 {
		return uint8(v)
	}
	if r.Sample.OriginalPitch > 127 {
		return 60
	}
	return r.Sample.OriginalPitch
}

// Tune returns the tuning offset in cents
func (r Region) Tune() int {
	coarse, _ := r.Generators.Get(soundfont.CoarseTune)
	fine, _ := r.Generators.Get(soundfont.FineTune)
	return 100*int(coarse) + int(fine) + int(r.Sample.PitchCorrection)
}

// Loop reports whether the region loops continuously and returns the loop
// points relative to the sample start
func (r Region) Loop() (start, end uint32, ok bool) {
	mode, present := r.Generators.Get(soundfont.SampleModes)
	if !present {
		return 0, 0, false
	}
	if m := mode & 3; m != 1 && m != 3 {
		return 0, 0, false
	}
	s := r.Sample
	if s.StartLoop < s.Start || s.EndLoop < s.StartLoop {
		return 0, 0, false
	}
	return s.StartLoop - s.Start, s.EndLoop - s.Start, true
}

// ResolvePreset flattens preset presetIndex into regions. Zones that reference
// a missing instrument or a sample without data are skipped. A nil logger
// discards diagnostics.
func ResolvePreset(sf *soundfont.SoundFont, presetIndex int, logger *slog.Logger) []Region {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if presetIndex < 0 || presetIndex >= len(sf.PresetHeaders) || sf.PresetHeaders[presetIndex].IsSentinel() {
		return nil
	}
	preset := sf.PresetHeaders[presetIndex]
	log := logger.With("preset", preset.Name)

	presetZones := sf.PresetZoneSet(presetIndex)
	var regions []Region

	for pz, local := range presetZones.Zones {
		instIndex, ok := local.Index(soundfont.InstrumentID)
		if !ok {
			log.Debug("skipping preset zone without instrument", "zone", pz)
			continue
		}
		inst, ok := sf.Instrument(instIndex)
		if !ok {
			log.Debug("skipping preset zone with missing instrument", "zone", pz, "instrument", instIndex)
			continue
		}

		instZones := sf.InstrumentZoneSet(instIndex)
		for iz, instLocal := range instZones.Zones {
			sampleIndex, ok := instLocal.Index(soundfont.SampleID)
			if !ok {
				log.Debug("skipping instrument zone without sample", "instrument", inst.Name, "zone", iz)
				continue
			}
			sample, ok := sf.Sample(sampleIndex)
			if !ok || sample.Data == nil {
				log.Debug("skipping instrument zone with unusable sample",
					"instrument", inst.Name, "zone", iz, "sample", sampleIndex)
				continue
			}

			merged := soundfont.Merge(presetZones.Global, local, instZones.Global, instLocal)
			delete(merged, soundfont.KeyRange)
			delete(merged, soundfont.VelRange)

			regions = append(regions, Region{
				Instrument: inst,
				Sample:     sample,
				SampleFile: SanitizeName(sample.Name) + ".wav",
				Generators: merged,
				Key:        pickRange(soundfont.KeyRange, instLocal, instZones.Global, local, presetZones.Global),
				Velocity:   pickRange(soundfont.VelRange, instLocal, instZones.Global, local, presetZones.Global),
			})
		}
	}
	return regions
}

// pickRange returns the range from the first zone that carries op. Zones are
// passed instrument level first, each level as local zone then global zone,
// so an instrument range replaces a preset range instead of intersecting it.
func pickRange(op soundfont.Operator, zones ...soundfont.GeneratorMap) *Range {
	for _, z := range zones {
		if v, ok := z.Get(op); ok {
			lo, hi := UnpackRange(v)
			return &Range{Low: lo, High: hi}
		}
	}
	return nil
}
