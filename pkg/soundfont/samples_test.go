package soundfont

import (
	"os"
	"testing"
)

func TestSlicePCM(t *testing.T) {
	pool := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x80, 0xFF, 0x7F}

	tests := []struct {
		name       string
		start, end uint32
		expected   []int16
		wantErr    bool
	}{
		{"whole pool", 0, 4, []int16{1, -1, -32768, 32767}, false},
		{"middle", 1, 3, []int16{-1, -32768}, false},
		{"empty range", 2, 2, nil, true},
		{"reversed range", 3, 1, nil, true},
		{"past the pool", 2, 5, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := slicePCM(pool, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("slicePCM() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("slicePCM() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("frame %d = %d, want %d", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDecodeCompressed(t *testing.T) {
	stream, err := os.ReadFile("testdata/tone.ogg")
	if err != nil {
		t.Fatal(err)
	}
	// The stream sits behind unrelated pool bytes, as it does in an SF3 smpl chunk
	pool := append(make([]byte, 6), stream...)

	frames, err := decodeCompressed(pool, 6, uint32(len(pool)))
	if err != nil {
		t.Fatalf("decodeCompressed() error = %v", err)
	}
	// tone.ogg is one second of mono audio at 44100 Hz
	if len(frames) != 44100 {
		t.Errorf("decodeCompressed() = %d frames, want 44100", len(frames))
	}
	silent := true
	for _, v := range frames {
		if v != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("decoded stream is silent")
	}
}

func TestDecodeCompressedRejectsGarbage(t *testing.T) {
	pool := []byte("OggS this is not a vorbis stream")
	if _, err := decodeCompressed(pool, 0, uint32(len(pool))); err == nil {
		t.Error("decodeCompressed() accepted a corrupt stream")
	}
	if _, err := decodeCompressed(pool, 4, 400); err == nil {
		t.Error("decodeCompressed() accepted a range past the pool")
	}
}

func TestFloatToInt16(t *testing.T) {
	tests := []struct {
		in       float32
		expected int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{1.5, 32767},
		{-2, -32768},
		{0.5, 16384},
	}
	for _, tt := range tests {
		if got := floatToInt16(tt.in); got != tt.expected {
			t.Errorf("floatToInt16(%v) = %d, want %d", tt.in, got, tt.expected)
		}
	}
}

func TestDecodeName(t *testing.T) {
	tests := []struct {
		in       []byte
		expected string
	}{
		{[]byte("Piano\x00\x00\x00"), "Piano"},
		{[]byte("Strings  \x00junk"), "Strings"},
		{[]byte("EOS"), "EOS"},
		{[]byte("\x00\x00"), ""},
	}
	for _, tt := range tests {
		if got := decodeName(tt.in); got != tt.expected {
			t.Errorf("decodeName(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
