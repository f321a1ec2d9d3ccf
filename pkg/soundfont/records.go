package soundfont

import (
	"encoding/binary"
	"fmt"
	"strings"
)

var le = binary.LittleEndian

// decodeTable splits body into fixed-width records. A body that is not a whole
// number of records means the file is corrupt.
func decodeTable[T any](id [4]byte, body []byte, width int, decode func(index int, rec []byte) T) ([]T, error) {
	if len(body)%width != 0 {
		return nil, fmt.Errorf("%w: %q chunk is %d bytes, not a multiple of the %d-byte record size",
			ErrFormat, id[:], len(body), width)
	}
	count := len(body) / width
	out := make([]T, count)
	for i := 0; i < count; i++ {
		out[i] = decode(i, body[i*width:(i+1)*width])
	}
	return out, nil
}

func decodePreset(index int, rec []byte) Preset {
	return Preset{
		Index:      index,
		Name:       decodeName(rec[0:20]),
		Preset:     le.Uint16(rec[20:22]),
		Bank:       le.Uint16(rec[22:24]),
		BagIndex:   le.Uint16(rec[24:26]),
		Library:    le.Uint32(rec[26:30]),
		Genre:      le.Uint32(rec[30:34]),
		Morphology: le.Uint32(rec[34:38]),
	}
}

func decodeInstrument(index int, rec []byte) Instrument {
	return Instrument{
		Index:    index,
		Name:     decodeName(rec[0:20]),
		BagIndex: le.Uint16(rec[20:22]),
	}
}

func decodeZone(_ int, rec []byte) Zone {
	return Zone{
		GeneratorIndex: le.Uint16(rec[0:2]),
		ModulatorIndex: le.Uint16(rec[2:4]),
	}
}

func decodeGenerator(_ int, rec []byte) Generator {
	return Generator{
		Operator: Operator(le.Uint16(rec[0:2])),
		Amount:   int16(le.Uint16(rec[2:4])),
	}
}

func decodeModulator(_ int, rec []byte) Modulator {
	return Modulator{
		SrcOperator:       le.Uint16(rec[0:2]),
		DestOperator:      le.Uint16(rec[2:4]),
		Amount:            int16(le.Uint16(rec[4:6])),
		AmountSrcOperator: le.Uint16(rec[6:8]),
		TransOperator:     le.Uint16(rec[8:10]),
	}
}

func decodeSample(index int, rec []byte) Sample {
	return Sample{
		Index:           index,
		Name:            decodeName(rec[0:20]),
		Start:           le.Uint32(rec[20:24]),
		End:             le.Uint32(rec[24:28]),
		StartLoop:       le.Uint32(rec[28:32]),
		EndLoop:         le.Uint32(rec[32:36]),
		SampleRate:      le.Uint32(rec[36:40]),
		OriginalPitch:   rec[40],
		PitchCorrection: int8(rec[41]),
		SampleLink:      le.Uint16(rec[42:44]),
		SampleType:      le.Uint16(rec[44:46]),
	}
}

// decodeName reads a fixed-width ASCII name: everything after the first NUL
// is padding, and trailing whitespace is dropped
func decodeName(b []byte) string {
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	return strings.TrimRight(string(b), " \t\r\n\x00")
}
