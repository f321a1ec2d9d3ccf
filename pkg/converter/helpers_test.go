package converter

import (
	"testing"

	"github.com/james-see/sf2sfz/pkg/soundfont"
	"github.com/james-see/sf2sfz/pkg/soundfont/sftest"
)

func ramp(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i*250 - 12000)
	}
	return out
}

// singleSampleBank is one preset "Test" playing instrument "Inst", which
// plays the 100-frame sample "Snd" with no generators besides the references
func singleSampleBank() sftest.Bank {
	return sftest.Bank{
		Presets: []sftest.Preset{
			{Name: "Test", Zones: []sftest.Zone{{{Op: soundfont.InstrumentID, Amount: 0}}}},
		},
		Instruments: []sftest.Instrument{
			{Name: "Inst", Zones: []sftest.Zone{{{Op: soundfont.SampleID, Amount: 0}}}},
		},
		Samples: []sftest.Sample{
			{Name: "Snd", Rate: 44100, OriginalPitch: 60, Data: ramp(100)},
		},
	}
}

func decodeBank(t *testing.T, bank sftest.Bank) *soundfont.SoundFont {
	t.Helper()
	sf, err := soundfont.Decode(bank.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return sf
}
