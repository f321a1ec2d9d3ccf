package converter

import (
	"fmt"
	"strings"

	"github.com/james-see/sf2sfz/pkg/soundfont"
)

// filterOpen is the initialFilterFc default, meaning the filter is fully open
const filterOpen = 13500

// SampleDir returns the per-preset sample folder, "<base> <preset> Samples".
// Path separators in either name are replaced so the folder stays a single
// path element.
func SampleDir(baseName, presetName string) string {
	return pathSafe(strings.TrimSpace(baseName+" "+presetName) + " Samples")
}

// DocumentName returns the SFZ file name of a preset, "<base> <preset>.sfz"
func DocumentName(baseName, presetName string) string {
	return pathSafe(strings.TrimSpace(baseName+" "+presetName)) + ".sfz"
}

func pathSafe(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}

// EmitSFZ renders one preset as an SFZ document: a header comment, a
// <control> block pointing at the preset's sample folder and one <region>
// block per region. The header and control block are written even when
// regions is empty.
func EmitSFZ(preset soundfont.Preset, regions []Region, baseName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// %s\n", preset.Name)
	fmt.Fprintf(&b, "// bank %d, program %d\n", preset.Bank, preset.Preset)
	b.WriteString("\n<control>\n")
	fmt.Fprintf(&b, "default_path=%s/\n", SampleDir(baseName, preset.Name))

	for _, r := range regions {
		b.WriteString("\n<region>\n")
		writeRegion(&b, r)
	}
	return b.String()
}

func writeRegion(b *strings.Builder, r Region) {
	g := r.Generators

	fmt.Fprintf(b, "sample=%s\n", r.SampleFile)

	key := r.KeyRange()
	if key.Low == key.High {
		fmt.Fprintf(b, "key=%d\n", key.Low)
	} else {
		fmt.Fprintf(b, "lokey=%d\n", key.Low)
		fmt.Fprintf(b, "hikey=%d\n", key.High)
	}
	if r.Velocity != nil {
		fmt.Fprintf(b, "lovel=%d\n", r.Velocity.Low)
		fmt.Fprintf(b, "hivel=%d\n", r.Velocity.High)
	}

	fmt.Fprintf(b, "pitch_keycenter=%d\n", r.KeyCenter())
	if tune := r.Tune(); tune != 0 {
		fmt.Fprintf(b, "tune=%d\n", tune)
	}

	if v, ok := g.Get(soundfont.InitialAttenuation); ok {
		fmt.Fprintf(b, "volume=%.2f\n", float64(-int32(v))/10)
	}
	if v, ok := g.Get(soundfont.Pan); ok {
		fmt.Fprintf(b, "pan=%.2f\n", PanPercent(v))
	}

	envelope := []struct {
		op        soundfont.Operator
		directive string
	}{
		{soundfont.DelayVolEnv, "ampeg_delay"},
		{soundfont.AttackVolEnv, "ampeg_attack"},
		{soundfont.HoldVolEnv, "ampeg_hold"},
		{soundfont.DecayVolEnv, "ampeg_decay"},
	}
	for _, e := range envelope {
		if v, ok := g.Get(e.op); ok {
			fmt.Fprintf(b, "%s=%.4f\n", e.directive, TimecentsToSeconds(v))
		}
	}
	if v, ok := g.Get(soundfont.SustainVolEnv); ok {
		fmt.Fprintf(b, "ampeg_sustain=%.2f\n", CentibelsToPercent(v))
	}
	if v, ok := g.Get(soundfont.ReleaseVolEnv); ok {
		fmt.Fprintf(b, "ampeg_release=%.4f\n", TimecentsToSeconds(v))
	}

	if v, ok := g.Get(soundfont.InitialFilterFc); ok && v != filterOpen {
		fmt.Fprintf(b, "cutoff=%.2f\n", AbsoluteCentsToHz(v))
	}
	if v, ok := g.Get(soundfont.InitialFilterQ); ok {
		fmt.Fprintf(b, "resonance=%.2f\n", float64(v)/10)
	}

	if v, ok := g.Get(soundfont.ExclusiveClass); ok && v != 0 {
		fmt.Fprintf(b, "group=%d\n", v)
		fmt.Fprintf(b, "off_by=%d\n", v)
	}

	if start, end, ok := r.Loop(); ok {
		b.WriteString("loop_mode=loop_continuous\n")
		fmt.Fprintf(b, "loop_start=%d\n", start)
		fmt.Fprintf(b, "loop_end=%d\n", end)
	}
}
