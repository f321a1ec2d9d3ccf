package soundfont

// ZoneSet is the zone list of one preset or instrument after global zone
// detection
type ZoneSet struct {
	Global GeneratorMap   // nil when the first zone is not a global zone
	Zones  []GeneratorMap // every other zone, in file order
}

// PresetZoneRange returns the half-open pbag range [start, end) of preset i.
// The range ends at the next record's bag index, or at the end of the bag
// table for the last record.
func (sf *SoundFont) PresetZoneRange(i int) (start, end int) {
	if i < 0 || i >= len(sf.PresetHeaders) {
		return 0, 0
	}
	start = int(sf.PresetHeaders[i].BagIndex)
	end = len(sf.PresetZones)
	if i+1 < len(sf.PresetHeaders) {
		end = int(sf.PresetHeaders[i+1].BagIndex)
	}
	return clampRange(start, end, len(sf.PresetZones))
}

// InstrumentZoneRange returns the half-open ibag range [start, end) of instrument i
func (sf *SoundFont) InstrumentZoneRange(i int) (start, end int) {
	if i < 0 || i >= len(sf.InstrumentHeaders) {
		return 0, 0
	}
	start = int(sf.InstrumentHeaders[i].BagIndex)
	end = len(sf.InstrumentZones)
	if i+1 < len(sf.InstrumentHeaders) {
		end = int(sf.InstrumentHeaders[i+1].BagIndex)
	}
	return clampRange(start, end, len(sf.InstrumentZones))
}

// PresetZoneGenerators returns the generators of pbag zone j
func (sf *SoundFont) PresetZoneGenerators(j int) GeneratorMap {
	return zoneGenerators(sf.PresetZones, sf.PresetGenerators, j)
}

// InstrumentZoneGenerators returns the generators of ibag zone j
func (sf *SoundFont) InstrumentZoneGenerators(j int) GeneratorMap {
	return zoneGenerators(sf.InstrumentZones, sf.InstrumentGenerators, j)
}

// PresetZoneSet resolves the zones of preset i. A first zone without an
// instrument generator is the global zone.
func (sf *SoundFont) PresetZoneSet(i int) ZoneSet {
	start, end := sf.PresetZoneRange(i)
	return splitZones(sf.PresetZoneGenerators, start, end, InstrumentID)
}

// InstrumentZoneSet resolves the zones of instrument i. A first zone without a
// sampleID generator is the global zone.
func (sf *SoundFont) InstrumentZoneSet(i int) ZoneSet {
	start, end := sf.InstrumentZoneRange(i)
	return splitZones(sf.InstrumentZoneGenerators, start, end, SampleID)
}

// IsGlobalZone reports whether the first zone of a preset or instrument is a
// global zone: it lacks the terminating generator and is followed by at least
// one more zone. A lone zone is never global.
func IsGlobalZone(first GeneratorMap, zoneCount int, terminator Operator) bool {
	return zoneCount > 1 && !first.Has(terminator)
}

func splitZones(generators func(int) GeneratorMap, start, end int, terminator Operator) ZoneSet {
	var set ZoneSet
	if start >= end {
		return set
	}
	first := generators(start)
	if IsGlobalZone(first, end-start, terminator) {
		set.Global = first
	} else {
		set.Zones = append(set.Zones, first)
	}
	for j := start + 1; j < end; j++ {
		set.Zones = append(set.Zones, generators(j))
	}
	return set
}

// zoneGenerators collects the generator range [zones[j], zones[j+1]) of zone j
func zoneGenerators(zones []Zone, gens []Generator, j int) GeneratorMap {
	m := make(GeneratorMap)
	if j < 0 || j >= len(zones) {
		return m
	}
	start := int(zones[j].GeneratorIndex)
	end := len(gens)
	if j+1 < len(zones) {
		end = int(zones[j+1].GeneratorIndex)
	}
	start, end = clampRange(start, end, len(gens))
	for _, g := range gens[start:end] {
		m[g.Operator] = g.Amount
	}
	return m
}

func clampRange(start, end, limit int) (int, int) {
	if end > limit {
		end = limit
	}
	if start > end {
		start = end
	}
	return start, end
}
