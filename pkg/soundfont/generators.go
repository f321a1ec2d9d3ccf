package soundfont

import "fmt"

// Operator identifies a generator (SF2.01 section 8.1.2)
type Operator uint16

const (
	StartAddrsOffset Operator = iota
	EndAddrsOffset
	StartloopAddrsOffset
	EndloopAddrsOffset
	StartAddrsCoarseOffset
	ModLfoToPitch
	VibLfoToPitch
	ModEnvToPitch
	InitialFilterFc
	InitialFilterQ
	ModLfoToFilterFc
	ModEnvToFilterFc
	EndAddrsCoarseOffset
	ModLfoToVolume
	Unused1
	ChorusEffectsSend
	ReverbEffectsSend
	Pan
	Unused2
	Unused3
	Unused4
	DelayModLFO
	FreqModLFO
	DelayVibLFO
	FreqVibLFO
	DelayModEnv
	AttackModEnv
	HoldModEnv
	DecayModEnv
	SustainModEnv
	ReleaseModEnv
	KeynumToModEnvHold
	KeynumToModEnvDecay
	DelayVolEnv
	AttackVolEnv
	HoldVolEnv
	DecayVolEnv
	SustainVolEnv
	ReleaseVolEnv
	KeynumToVolEnvHold
	KeynumToVolEnvDecay
	InstrumentID // Terminates a preset zone
	Reserved1
	KeyRange
	VelRange
	StartloopAddrsCoarseOffset
	Keynum
	Velocity
	InitialAttenuation
	Reserved2
	EndloopAddrsCoarseOffset
	CoarseTune
	FineTune
	SampleID // Terminates an instrument zone
	SampleModes
	Reserved3
	ScaleTuning
	ExclusiveClass
	OverridingRootKey
	Unused5
	EndOper
)

var operatorNames = [...]string{
	"startAddrsOffset", "endAddrsOffset", "startloopAddrsOffset", "endloopAddrsOffset",
	"startAddrsCoarseOffset", "modLfoToPitch", "vibLfoToPitch", "modEnvToPitch",
	"initialFilterFc", "initialFilterQ", "modLfoToFilterFc", "modEnvToFilterFc",
	"endAddrsCoarseOffset", "modLfoToVolume", "unused1", "chorusEffectsSend",
	"reverbEffectsSend", "pan", "unused2", "unused3", "unused4", "delayModLFO",
	"freqModLFO", "delayVibLFO", "freqVibLFO", "delayModEnv", "attackModEnv",
	"holdModEnv", "decayModEnv", "sustainModEnv", "releaseModEnv", "keynumToModEnvHold",
	"keynumToModEnvDecay", "delayVolEnv", "attackVolEnv", "holdVolEnv", "decayVolEnv",
	"sustainVolEnv", "releaseVolEnv", "keynumToVolEnvHold", "keynumToVolEnvDecay",
	"instrument", "reserved1", "keyRange", "velRange", "startloopAddrsCoarseOffset",
	"keynum", "velocity", "initialAttenuation", "reserved2", "endloopAddrsCoarseOffset",
	"coarseTune", "fineTune", "sampleID", "sampleModes", "reserved3", "scaleTuning",
	"exclusiveClass", "overridingRootKey", "unused5", "endOper",
}

func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return fmt.Sprintf("operator(%d)", uint16(o))
}

// GeneratorMap holds one zone's generators keyed by operator
type GeneratorMap map[Operator]int16

// Has reports whether op is present
func (m GeneratorMap) Has(op Operator) bool {
	_, ok := m[op]
	return ok
}

// Get returns the amount of op and whether it is present
func (m GeneratorMap) Get(op Operator) (int16, bool) {
	v, ok := m[op]
	return v, ok
}

// Index returns the unsigned amount of op, used for instrument and sample references
func (m GeneratorMap) Index(op Operator) (int, bool) {
	v, ok := m[op]
	return int(uint16(v)), ok
}

// Merge layers maps in increasing precedence: a key present in a later map
// replaces the value from an earlier one. Nil maps are skipped.
func Merge(layers ...GeneratorMap) GeneratorMap {
	out := make(GeneratorMap)
	for _, layer := range layers {
		for op, v := range layer {
			out[op] = v
		}
	}
	return out
}
