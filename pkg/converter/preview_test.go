package converter

import (
	"bytes"
	"testing"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

func TestPreviewNote(t *testing.T) {
	tests := []struct {
		name     string
		region   Region
		expected PreviewNote
	}{
		{
			"key center",
			Region{Sample: soundfont.Sample{OriginalPitch: 60}, Generators: soundfont.GeneratorMap{}},
			PreviewNote{Key: 60, Velocity: 100},
		},
		{
			"key center below range",
			Region{Sample: soundfont.Sample{OriginalPitch: 60}, Generators: soundfont.GeneratorMap{}, Key: &Range{Low: 64, High: 70}},
			PreviewNote{Key: 64, Velocity: 100},
		},
		{
			"key center above range",
			Region{Sample: soundfont.Sample{OriginalPitch: 90}, Generators: soundfont.GeneratorMap{}, Key: &Range{Low: 64, High: 70}},
			PreviewNote{Key: 70, Velocity: 100},
		},
		{
			"soft layer",
			Region{Sample: soundfont.Sample{OriginalPitch: 60}, Generators: soundfont.GeneratorMap{}, Velocity: &Range{Low: 1, High: 50}},
			PreviewNote{Key: 60, Velocity: 25},
		},
		{
			"layer containing the default velocity",
			Region{Sample: soundfont.Sample{OriginalPitch: 60}, Generators: soundfont.GeneratorMap{}, Velocity: &Range{Low: 90, High: 127}},
			PreviewNote{Key: 60, Velocity: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := previewNote(tt.region); got != tt.expected {
				t.Errorf("previewNote() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestGeneratePreview(t *testing.T) {
	regions := []Region{
		{Sample: soundfont.Sample{OriginalPitch: 48}, Generators: soundfont.GeneratorMap{}},
		{Sample: soundfont.Sample{OriginalPitch: 60}, Generators: soundfont.GeneratorMap{soundfont.OverridingRootKey: 62}},
		{Sample: soundfont.Sample{OriginalPitch: 72}, Generators: soundfont.GeneratorMap{}, Velocity: &Range{Low: 110, High: 127}},
	}

	data, err := GeneratePreview(regions)
	if err != nil {
		t.Fatalf("GeneratePreview() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Fatalf("preview is not a Standard MIDI File: % x", data[:8])
	}

	notes, err := ReadPreview(data)
	if err != nil {
		t.Fatalf("ReadPreview() error = %v", err)
	}
	expected := []PreviewNote{{48, 100}, {62, 100}, {72, 118}}
	if len(notes) != len(expected) {
		t.Fatalf("preview has %d notes, want %d", len(notes), len(expected))
	}
	for i := range expected {
		if notes[i] != expected[i] {
			t.Errorf("note %d = %+v, want %+v", i, notes[i], expected[i])
		}
	}
}

func TestGeneratePreviewEmpty(t *testing.T) {
	if _, err := GeneratePreview(nil); err == nil {
		t.Error("GeneratePreview(nil) should fail")
	}
}

func TestConvertWithPreview(t *testing.T) {
	result, err := New(Options{BaseName: "Base", Preview: true}).Convert(singleSampleBank().Bytes())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	doc := result.Documents[0]
	if doc.PreviewName() != "Base Test.mid" {
		t.Errorf("PreviewName() = %q", doc.PreviewName())
	}
	notes, err := ReadPreview(doc.Preview)
	if err != nil {
		t.Fatalf("ReadPreview() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Key != 60 {
		t.Errorf("preview notes = %+v, want one note on key 60", notes)
	}
}
