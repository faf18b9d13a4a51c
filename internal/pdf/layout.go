package pdf

// HeaderStyle selects how the page-top block is arranged.
type HeaderStyle int

const (
	// HeaderCompact draws a short school banner with the paper details in
	// a separate bordered box below it.
	HeaderCompact HeaderStyle = iota
	// HeaderExpanded folds the detail lines into one taller header box.
	HeaderExpanded
)

// Layout is the geometry configuration of the engine. All values are in
// points on an A4 page.
type Layout struct {
	Margin float64

	HeaderStyle          HeaderStyle
	HeaderHeightCompact  float64
	HeaderHeightExpanded float64
	DetailBoxHeight      float64

	SectionBandHeight  float64
	SectionBandAdvance float64

	LineAdvance      float64
	ImageSize        float64
	ImageAdvance     float64
	OptionRowAdvance float64

	// MarkGaps maps a section's per-question mark value to the blank
	// answer space left after each written question. Values not present
	// fall back to DefaultGap.
	MarkGaps   map[float64]float64
	DefaultGap float64

	AnswerLineAdvance float64

	// BreakMargin is the bottom zone that triggers a page break; the
	// cursor resets to ResetY on the fresh page.
	BreakMargin float64
	ResetY      float64

	PageNumberOffset float64
}

// DefaultLayout returns the canonical A4 geometry.
func DefaultLayout() Layout {
	return Layout{
		Margin:               50,
		HeaderStyle:          HeaderCompact,
		HeaderHeightCompact:  120,
		HeaderHeightExpanded: 180,
		DetailBoxHeight:      120,
		SectionBandHeight:    25,
		SectionBandAdvance:   35,
		LineAdvance:          20,
		ImageSize:            100,
		ImageAdvance:         110,
		OptionRowAdvance:     15,
		MarkGaps:             map[float64]float64{3: 30, 5: 50},
		DefaultGap:           50,
		AnswerLineAdvance:    25,
		BreakMargin:          80,
		ResetY:               55,
		PageNumberOffset:     30,
	}
}

// gapFor returns the answer space for a written question worth the given marks.
func (l Layout) gapFor(marks float64) float64 {
	if gap, ok := l.MarkGaps[marks]; ok {
		return gap
	}
	return l.DefaultGap
}
