// Package converter turns decoded SoundFont banks into SFZ documents and WAV samples
package converter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// ErrNotBank is returned when an input is not a SoundFont bank
var ErrNotBank = errors.New("input is not a soundfont bank")

// defaultBaseName names the output when neither the options nor the bank
// provide a name
const defaultBaseName = "SoundFont"

// Options configures a Converter
type Options struct {
	// BaseName prefixes every document and sample folder. Empty means the
	// bank's INAM name, or the input file name in ConvertFile.
	BaseName string
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Preview adds a MIDI audition file to every document
	Preview bool
}

// Converter converts SoundFont banks
type Converter struct {
	opts Options
	log  *slog.Logger
}

// New creates a new converter
func New(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{opts: opts, log: logger}
}

// SampleFile is one encoded WAV sample
type SampleFile struct {
	Index      int    // Position in the shdr table
	Name       string // File name, unique within the bank
	SampleRate int
	Frames     int
	Data       []byte
}

// Document is the SFZ rendering of one preset
type Document struct {
	Preset    string
	Bank      uint16
	Program   uint16
	Filename  string // "<base> <preset>.sfz"
	SampleDir string // "<base> <preset> Samples"
	Text      string
	Regions   int
	Samples   []string // Sample file names referenced by Text, without duplicates
	Preview   []byte   // Standard MIDI File, nil unless Options.Preview is set
}

// PreviewName returns the file name of the document's MIDI preview
func (d Document) PreviewName() string {
	return strings.TrimSuffix(d.Filename, ".sfz") + ".mid"
}

// Result is a converted bank
type Result struct {
	Bank      *soundfont.SoundFont
	BaseName  string
	Documents []Document
	Samples   []SampleFile
}

// Sample returns the encoded sample with the given file name
func (r *Result) Sample(name string) (SampleFile, bool) {
	for _, s := range r.Samples {
		if s.Name == name {
			return s, true
		}
	}
	return SampleFile{}, false
}

// Convert decodes a bank and renders every preset
func (c *Converter) Convert(data []byte) (*Result, error) {
	return c.convert(data, c.opts.BaseName)
}

func (c *Converter) convert(data []byte, baseName string) (*Result, error) {
	sf, err := soundfont.Decode(data, soundfont.WithLogger(c.log))
	if err != nil {
		return nil, fmt.Errorf("failed to decode bank: %w", err)
	}

	if baseName == "" {
		baseName = sf.Info.Name
	}
	if baseName == "" {
		baseName = defaultBaseName
	}

	result := &Result{Bank: sf, BaseName: baseName}

	files := make(map[int]string)
	taken := make(map[string]bool)
	for _, s := range sf.SampleList() {
		if s.Data == nil {
			continue
		}
		name := uniqueSampleName(s, taken)
		wav, err := EncodeWAV(s.Data, int(s.SampleRate))
		if err != nil {
			c.log.Warn("failed to encode sample", "sample", s.Name, "error", err)
			continue
		}
		files[s.Index] = name
		taken[name] = true
		result.Samples = append(result.Samples, SampleFile{
			Index:      s.Index,
			Name:       name,
			SampleRate: int(s.SampleRate),
			Frames:     len(s.Data),
			Data:       wav,
		})
	}

	for _, p := range sf.Presets() {
		resolved := ResolvePreset(sf, p.Index, c.log)

		regions := resolved[:0]
		var used []string
		seen := make(map[string]bool)
		for _, r := range resolved {
			name, ok := files[r.Sample.Index]
			if !ok {
				c.log.Debug("dropping region without an encoded sample", "preset", p.Name, "sample", r.Sample.Name)
				continue
			}
			r.SampleFile = name
			regions = append(regions, r)
			if !seen[name] {
				seen[name] = true
				used = append(used, name)
			}
		}

		doc := Document{
			Preset:    p.Name,
			Bank:      p.Bank,
			Program:   p.Preset,
			Filename:  DocumentName(baseName, p.Name),
			SampleDir: SampleDir(baseName, p.Name),
			Text:      EmitSFZ(p, regions, baseName),
			Regions:   len(regions),
			Samples:   used,
		}
		if c.opts.Preview && len(regions) > 0 {
			midi, err := GeneratePreview(regions)
			if err != nil {
				c.log.Warn("failed to generate preview", "preset", p.Name, "error", err)
			} else {
				doc.Preview = midi
			}
		}
		result.Documents = append(result.Documents, doc)
	}

	c.log.Info("converted bank",
		"bank", baseName,
		"presets", len(result.Documents),
		"samples", len(result.Samples))

	return result, nil
}

// uniqueSampleName returns the sanitized WAV name of s, suffixed with the
// sample index when an earlier sample already took the name
func uniqueSampleName(s soundfont.Sample, taken map[string]bool) string {
	base := SanitizeName(s.Name)
	if base == "" {
		base = "sample"
	}
	name := base + ".wav"
	for taken[name] {
		base = fmt.Sprintf("%s_%d", base, s.Index)
		name = base + ".wav"
	}
	return name
}

// ConvertFile converts the bank at inputPath. Output ending in .zip is
// written as an archive, anything else as a directory.
func (c *Converter) ConvertFile(inputPath, outputPath string) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	if !DetectFormat(inputPath).IsBank() && !DetectFormatFromContent(data).IsBank() {
		return nil, fmt.Errorf("%w: %s", ErrNotBank, inputPath)
	}

	baseName := c.opts.BaseName
	if baseName == "" {
		baseName = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	result, err := c.convert(data, baseName)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}

	if DetectFormat(outputPath) == FormatZip {
		err = result.WriteZipFile(outputPath)
	} else {
		err = result.WriteDir(outputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	return result, nil
}
