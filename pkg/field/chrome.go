package field

// ChromeOffsets are the measured widths of the prefix and suffix chrome.
type ChromeOffsets struct {
	PrefixWidth float64
	SuffixWidth float64
}

// Measurer reports chrome sizes after a renderer's first layout pass.
type Measurer interface {
	// PrefixWidth returns the rendered width of the prefix chrome.
	PrefixWidth() float64
	// SuffixWidth returns the rendered width of the suffix chrome.
	SuffixWidth() float64
	// NaturalContentHeight returns the height of a representative content
	// rendering, if the renderer can produce one.
	NaturalContentHeight() (float64, bool)
}

// Measurements is a Measurer with fixed values.
type Measurements struct {
	Prefix           float64
	Suffix           float64
	NaturalHeight    float64
	HasNaturalHeight bool
}

func (m Measurements) PrefixWidth() float64 { return m.Prefix }
func (m Measurements) SuffixWidth() float64 { return m.Suffix }

func (m Measurements) NaturalContentHeight() (float64, bool) {
	return m.NaturalHeight, m.HasNaturalHeight
}

// ChromeMeasurer records chrome measurements once. Later records are ignored
// until Reset.
type ChromeMeasurer struct {
	offsets    ChromeOffsets
	prefixSet  bool
	suffixSet  bool
	natural    float64
	naturalSet bool
}

// RecordPrefixWidth records the prefix width if none has been recorded yet.
func (m *ChromeMeasurer) RecordPrefixWidth(w float64) bool {
	if m.prefixSet {
		return false
	}
	m.offsets.PrefixWidth = nonNegative(w)
	m.prefixSet = true
	return true
}

// RecordSuffixWidth records the suffix width if none has been recorded yet.
func (m *ChromeMeasurer) RecordSuffixWidth(w float64) bool {
	if m.suffixSet {
		return false
	}
	m.offsets.SuffixWidth = nonNegative(w)
	m.suffixSet = true
	return true
}

// RecordContentNaturalHeight records the natural content height if none has
// been recorded yet.
func (m *ChromeMeasurer) RecordContentNaturalHeight(h float64) bool {
	if m.naturalSet {
		return false
	}
	m.natural = nonNegative(h)
	m.naturalSet = true
	return true
}

// Offsets returns the recorded offsets. Unrecorded sides are zero.
func (m *ChromeMeasurer) Offsets() ChromeOffsets {
	return m.offsets
}

// NaturalHeight returns the recorded natural content height.
func (m *ChromeMeasurer) NaturalHeight() (float64, bool) {
	return m.natural, m.naturalSet
}

// Measured reports whether both prefix and suffix have been recorded.
func (m *ChromeMeasurer) Measured() bool {
	return m.prefixSet && m.suffixSet
}

// Reset forgets all measurements so the next records take effect.
func (m *ChromeMeasurer) Reset() {
	*m = ChromeMeasurer{}
}
