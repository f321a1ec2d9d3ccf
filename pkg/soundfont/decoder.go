package soundfont

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/riff"
)

// ErrFormat is returned for input that is not a well-formed SoundFont bank.
// It is always fatal for the whole decode.
var ErrFormat = errors.New("invalid soundfont")

// Chunk IDs
var (
	CIDSfbk = [4]byte{'s', 'f', 'b', 'k'}
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}
	CIDSdta = [4]byte{'s', 'd', 't', 'a'}
	CIDPdta = [4]byte{'p', 'd', 't', 'a'}
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	CIDPhdr = [4]byte{'p', 'h', 'd', 'r'}
	CIDPbag = [4]byte{'p', 'b', 'a', 'g'}
	CIDPmod = [4]byte{'p', 'm', 'o', 'd'}
	CIDPgen = [4]byte{'p', 'g', 'e', 'n'}
	CIDInst = [4]byte{'i', 'n', 's', 't'}
	CIDIbag = [4]byte{'i', 'b', 'a', 'g'}
	CIDImod = [4]byte{'i', 'm', 'o', 'd'}
	CIDIgen = [4]byte{'i', 'g', 'e', 'n'}
	CIDShdr = [4]byte{'s', 'h', 'd', 'r'}
)

// Option configures Decode
type Option func(*decoder)

// WithLogger routes decoder diagnostics to logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *decoder) {
		if logger != nil {
			d.log = logger
		}
	}
}

type decoder struct {
	log *slog.Logger
	sf  *SoundFont
}

// DecodeReader reads r to the end and decodes it
func DecodeReader(r io.Reader, opts ...Option) (*SoundFont, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read soundfont: %w", err)
	}
	return Decode(data, opts...)
}

// Decode parses a complete SF2/SF3 file held in data. data is not modified.
func Decode(data []byte, opts ...Option) (*SoundFont, error) {
	d := &decoder{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sf:  &SoundFont{},
	}
	for _, opt := range opts {
		opt(d)
	}

	r := bytes.NewReader(data)
	p := riff.New(r)

	id, size, err := p.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read RIFF header: %v", ErrFormat, err)
	}
	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: expected RIFF tag, got %q", ErrFormat, id[:])
	}
	p.ID = id
	p.Size = size

	if err := binary.Read(r, binary.BigEndian, &p.Format); err != nil {
		return nil, fmt.Errorf("%w: failed to read form type: %v", ErrFormat, err)
	}
	if p.Format != CIDSfbk {
		return nil, fmt.Errorf("%w: expected sfbk form, got %q", ErrFormat, p.Format[:])
	}

	if err := d.walk(r, d.visitTop); err != nil {
		return nil, err
	}
	d.materializeSamples()

	d.log.Debug("decoded soundfont",
		"presets", len(d.sf.PresetHeaders),
		"instruments", len(d.sf.InstrumentHeaders),
		"samples", len(d.sf.Samples),
		"pcm_bytes", len(d.sf.SampleData))

	return d.sf, nil
}

// walk reads chunks from r until it is exhausted and hands each chunk body
// to visit. Bodies exclude the RIFF pad byte that follows odd-sized chunks.
func (d *decoder) walk(r *bytes.Reader, visit func(id [4]byte, body []byte) error) error {
	p := riff.New(r)
	for r.Len() > 0 {
		id, size, err := p.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				d.log.Debug("ignoring truncated chunk header", "remaining", r.Len())
				return nil
			}
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}

		ch := &riff.Chunk{
			ID:   id,
			Size: int(size),
			R:    io.LimitReader(r, int64(size)),
		}
		body, err := io.ReadAll(ch)
		if err != nil {
			return fmt.Errorf("%w: failed to read %q chunk: %v", ErrFormat, id[:], err)
		}
		if len(body) != ch.Size {
			return fmt.Errorf("%w: %q chunk truncated: declared %d bytes, got %d",
				ErrFormat, id[:], ch.Size, len(body))
		}
		if size%2 == 1 {
			_, _ = r.ReadByte()
		}

		if err := visit(id, body); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) visitTop(id [4]byte, body []byte) error {
	if id != CIDList {
		d.log.Debug("skipping chunk", "id", string(id[:]), "size", len(body))
		return nil
	}
	if len(body) < 4 {
		return fmt.Errorf("%w: LIST chunk too short", ErrFormat)
	}

	var listType [4]byte
	copy(listType[:], body[:4])
	sub := bytes.NewReader(body[4:])

	switch listType {
	case CIDPdta:
		return d.walk(sub, d.visitPdta)
	case CIDSdta:
		return d.walk(sub, d.visitSdta)
	case CIDInfo:
		return d.walk(sub, d.visitInfo)
	default:
		d.log.Debug("skipping list", "type", string(listType[:]), "size", len(body))
		return nil
	}
}

func (d *decoder) visitSdta(id [4]byte, body []byte) error {
	if id != CIDSmpl {
		d.log.Debug("skipping sdta sub-chunk", "id", string(id[:]), "size", len(body))
		return nil
	}
	d.sf.SampleData = body
	return nil
}

func (d *decoder) visitPdta(id [4]byte, body []byte) error {
	var err error
	switch id {
	case CIDPhdr:
		d.sf.PresetHeaders, err = decodeTable(id, body, PresetHeaderSize, decodePreset)
	case CIDPbag:
		d.sf.PresetZones, err = decodeTable(id, body, BagSize, decodeZone)
	case CIDPmod:
		d.sf.PresetModulators, err = decodeTable(id, body, ModulatorSize, decodeModulator)
	case CIDPgen:
		d.sf.PresetGenerators, err = decodeTable(id, body, GeneratorSize, decodeGenerator)
	case CIDInst:
		d.sf.InstrumentHeaders, err = decodeTable(id, body, InstrumentHeaderSize, decodeInstrument)
	case CIDIbag:
		d.sf.InstrumentZones, err = decodeTable(id, body, BagSize, decodeZone)
	case CIDImod:
		d.sf.InstrumentModulators, err = decodeTable(id, body, ModulatorSize, decodeModulator)
	case CIDIgen:
		d.sf.InstrumentGenerators, err = decodeTable(id, body, GeneratorSize, decodeGenerator)
	case CIDShdr:
		d.sf.Samples, err = decodeTable(id, body, SampleHeaderSize, decodeSample)
	default:
		d.log.Debug("skipping pdta sub-chunk", "id", string(id[:]), "size", len(body))
	}
	return err
}
