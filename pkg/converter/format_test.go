package converter

import (
	"bytes"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"piano.sf2", FormatSF2},
		{"PIANO.SF2", FormatSF2},
		{"piano.sf3", FormatSF3},
		{"piano.sfz", FormatSFZ},
		{"snd.wav", FormatWAV},
		{"snd.wave", FormatWAV},
		{"out.zip", FormatZip},
		{"test.txt", FormatUnknown},
		{"test", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := DetectFormat(tt.filename)
			if result != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	sf2 := singleSampleBank().Bytes()

	sf3 := append([]byte(nil), sf2...)
	i := bytes.Index(sf3, []byte("ifil"))
	if i < 0 {
		t.Fatal("test bank has no ifil chunk")
	}
	sf3[i+8] = 3

	wav, err := EncodeWAV(ramp(8), 44100)
	if err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}

	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"SoundFont 2", sf2, FormatSF2},
		{"SoundFont 3", sf3, FormatSF3},
		{"WAV", wav, FormatWAV},
		{"zip", []byte("PK\x03\x04\x14\x00\x00\x00"), FormatZip},
		{"SFZ text", []byte("// piano\n<region>\nsample=a.wav\n"), FormatSFZ},
		{"other RIFF", []byte("RIFF\x04\x00\x00\x00AVI "), FormatUnknown},
		{"short data", []byte{0x00, 0x01}, FormatUnknown},
		{"binary noise", []byte{0x3C, 0x01, 0x3E, 0x02, 0x40, 0x03}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormatFromContent(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormatFromContent() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFormatIsBank(t *testing.T) {
	for _, f := range []Format{FormatSF2, FormatSF3} {
		if !f.IsBank() {
			t.Errorf("%s should be a bank format", f)
		}
	}
	for _, f := range []Format{FormatSFZ, FormatWAV, FormatZip, FormatUnknown} {
		if f.IsBank() {
			t.Errorf("%s should not be a bank format", f)
		}
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := GetSupportedFormats()
	if len(formats) != 2 || formats[0] != "sf2" || formats[1] != "sf3" {
		t.Errorf("GetSupportedFormats() = %v, want [sf2 sf3]", formats)
	}
}
