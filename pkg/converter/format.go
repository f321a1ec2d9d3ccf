package converter

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
)

// Format represents a file format
type Format string

const (
	FormatSF2     Format = "sf2"
	FormatSF3     Format = "sf3"
	FormatSFZ     Format = "sfz"
	FormatWAV     Format = "wav"
	FormatZip     Format = "zip"
	FormatUnknown Format = "unknown"
)

// IsBank reports whether f is a SoundFont bank the converter accepts
func (f Format) IsBank() bool {
	return f == FormatSF2 || f == FormatSF3
}

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".sf2":
		return FormatSF2
	case ".sf3":
		return FormatSF3
	case ".sfz":
		return FormatSFZ
	case ".wav", ".wave":
		return FormatWAV
	case ".zip":
		return FormatZip
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects the format from the leading bytes. A
// SoundFont whose ifil version is 3 or later is reported as sf3.
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	if string(data[:4]) == "PK\x03\x04" {
		return FormatZip
	}

	if string(data[:4]) == "RIFF" && len(data) >= 12 {
		switch string(data[8:12]) {
		case "sfbk":
			if bankMajorVersion(data) >= 3 {
				return FormatSF3
			}
			return FormatSF2
		case "WAVE":
			return FormatWAV
		}
		return FormatUnknown
	}

	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if bytes.Contains(head, []byte("<region>")) || bytes.Contains(head, []byte("<control>")) ||
		bytes.Contains(head, []byte("<group>")) {
		return FormatSFZ
	}

	return FormatUnknown
}

// bankMajorVersion finds the ifil chunk near the start of a bank and returns
// its major version, or 0 when there is none
func bankMajorVersion(data []byte) uint16 {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	i := bytes.Index(head, []byte("ifil"))
	if i < 0 || i+12 > len(data) {
		return 0
	}
	return binary.LittleEndian.Uint16(data[i+8 : i+10])
}

// GetSupportedFormats returns the input formats the converter accepts
func GetSupportedFormats() []string {
	return []string{
		string(FormatSF2),
		string(FormatSF3),
	}
}
