package pdf

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// PageWriter owns the vertical cursor on the current page. Page breaks
// happen only through Break, so callers decide where a break is legal.
type PageWriter struct {
	canvas Canvas
	layout Layout
	y      float64
}

// NewPageWriter wraps a canvas with cursor state starting at y.
func NewPageWriter(canvas Canvas, layout Layout, y float64) *PageWriter {
	return &PageWriter{canvas: canvas, layout: layout, y: y}
}

// Y returns the current cursor position.
func (p *PageWriter) Y() float64 { return p.y }

// Advance moves the cursor down.
func (p *PageWriter) Advance(dy float64) { p.y += dy }

// NeedsBreak reports whether the cursor has entered the bottom break zone.
func (p *PageWriter) NeedsBreak() bool {
	_, h := p.canvas.PageSize()
	return p.y > h-p.layout.BreakMargin
}

// Break starts a fresh page with an empty content border and resets the
// cursor to the continuation offset.
func (p *PageWriter) Break(borderX float64) {
	w, h := p.canvas.PageSize()
	p.canvas.AddPage()
	p.canvas.Box(borderX, 40, w-2*p.layout.Margin, h-100)
	p.y = p.layout.ResetY
}

// Engine lays out a Document as a sequence of positioned draw operations.
// One Render call is a single linear pass; the engine holds no per-document
// state and may be shared.
type Engine struct {
	layout Layout
	log    zerolog.Logger
}

// NewEngine creates an Engine with the given geometry.
func NewEngine(layout Layout, log zerolog.Logger) *Engine {
	return &Engine{
		layout: layout,
		log:    log.With().Str("component", "pdf_engine").Logger(),
	}
}

// Render draws the whole document onto the canvas: header, sections with
// page-broken continuation, page numbers, and the optional answer key with
// its own numbering sequence.
func (e *Engine) Render(c Canvas, doc *Document) {
	w, h := c.PageSize()
	margin := e.layout.Margin
	contentWidth := w - 2*margin

	c.AddPage()

	var bodyTop float64
	if e.layout.HeaderStyle == HeaderExpanded {
		bodyTop = e.drawExpandedHeader(c, doc)
	} else {
		bodyTop = e.drawCompactHeader(c, doc)
	}

	c.Box(margin, bodyTop, contentWidth, h-bodyTop-30)
	pw := NewPageWriter(c, e.layout, bodyTop+10)

	for _, sec := range doc.Sections {
		e.renderSection(c, pw, sec, contentWidth)
	}

	mainPages := c.PageCount()
	c.SetFont(FontDefault, "", 10)
	for i := 1; i <= mainPages; i++ {
		c.SetPage(i)
		c.CenterText(h-e.layout.PageNumberOffset, fmt.Sprintf("Page %d of %d", i, mainPages))
	}

	if doc.IncludeAnswers {
		e.renderAnswerKey(c, doc, contentWidth, mainPages)
	}
}

// drawCompactHeader draws the short school banner plus a separate details
// box and returns the y offset where the question body begins.
func (e *Engine) drawCompactHeader(c Canvas, doc *Document) float64 {
	w, _ := c.PageSize()
	margin := e.layout.Margin
	usable := w - 2*margin
	y := margin

	c.Box(margin, y, usable, e.layout.HeaderHeightCompact)
	if doc.SchoolLogoPath != "" {
		if err := c.Image(doc.SchoolLogoPath, margin+10, y+25, 70, 70); err != nil {
			e.log.Warn().Err(err).Msg("school logo skipped")
		}
	}
	name := doc.SchoolName
	if name == "" {
		name = "School Name"
	}
	c.SetFont(FontDefault, "B", 18)
	c.Text(margin+90, y+50, name)

	detailY := y + e.layout.HeaderHeightCompact + 20
	c.Box(margin, detailY, usable, e.layout.DetailBoxHeight)

	c.SetFont(FontDefault, "", 11)
	c.Text(margin+20, detailY+10, fmt.Sprintf("Board: %s", doc.BoardName))
	c.Text(margin+20, detailY+25, fmt.Sprintf("Subject: %s", strings.Join(doc.Subjects, ", ")))
	c.Text(margin+20, detailY+40, fmt.Sprintf("Chapters: %s", strings.Join(doc.Chapters, ", ")))
	c.Text(margin+20, detailY+55, fmt.Sprintf("Exam: %s", doc.ExamName))

	rightX := w/2 + 20
	c.Text(rightX, detailY+10, fmt.Sprintf("Total Marks: %d", doc.TotalMarks))
	c.Text(rightX, detailY+25, fmt.Sprintf("Duration: %s", durationOrDefault(doc.Duration)))
	c.Text(rightX, detailY+40, fmt.Sprintf("Difficulty: %s", doc.Difficulty))

	e.drawInstructions(c, doc, margin+20, detailY+75)

	return detailY + e.layout.DetailBoxHeight + 10
}

// drawExpandedHeader folds the detail lines into one taller header box and
// returns the y offset where the question body begins.
func (e *Engine) drawExpandedHeader(c Canvas, doc *Document) float64 {
	w, _ := c.PageSize()
	margin := e.layout.Margin
	usable := w - 2*margin
	y := margin

	c.Box(margin, y, usable, e.layout.HeaderHeightExpanded)
	if doc.SchoolLogoPath != "" {
		if err := c.Image(doc.SchoolLogoPath, margin+10, y+10, 70, 70); err != nil {
			e.log.Warn().Err(err).Msg("school logo skipped")
		}
	}
	name := doc.SchoolName
	if name == "" {
		name = "School Name"
	}
	c.SetFont(FontDefault, "B", 18)
	c.CenterText(y+15, name)
	if doc.ExamName != "" {
		c.SetFont(FontDefault, "B", 12)
		c.CenterText(y+40, doc.ExamName)
	}

	c.SetFont(FontDefault, "", 11)
	c.CenterText(y+60, fmt.Sprintf("Board: %s   Class: %d   Subject: %s",
		doc.BoardName, doc.Class, strings.Join(doc.Subjects, ", ")))
	c.CenterText(y+75, fmt.Sprintf("Chapters: %s", strings.Join(doc.Chapters, ", ")))
	c.CenterText(y+90, fmt.Sprintf("Total Marks: %d   Duration: %s   Difficulty: %s",
		doc.TotalMarks, durationOrDefault(doc.Duration), doc.Difficulty))

	e.drawInstructions(c, doc, margin+20, y+110)

	return y + e.layout.HeaderHeightExpanded + 10
}

// drawInstructions writes the bold label, the localized first line, and the
// fixed second line. Only the first line switches typeface.
func (e *Engine) drawInstructions(c Canvas, doc *Document, x, y float64) {
	c.SetFont(FontDefault, "B", 11)
	c.Text(x, y, "Instructions:")

	line, family := InstructionLine(doc.Language)
	c.SetFont(family, "", 10)
	c.Text(x+20, y+15, line)
	c.SetFont(FontDefault, "", 10)
	c.Text(x+20, y+30, "2. Marks for each question are indicated against it.")
}

// renderSection draws the shaded title band and every question of one
// type-partition, breaking pages only between whole questions.
func (e *Engine) renderSection(c Canvas, pw *PageWriter, sec Section, contentWidth float64) {
	if len(sec.Entries) == 0 {
		return
	}
	margin := e.layout.Margin

	c.ShadeBox(margin+10, pw.Y(), contentWidth-20, e.layout.SectionBandHeight)
	c.SetFont(FontDefault, "B", 12)
	c.Text(margin+30, pw.Y()+7, sec.Title)
	pw.Advance(e.layout.SectionBandAdvance)
	c.SetFont(FontDefault, "", 11)

	for i, entry := range sec.Entries {
		c.Text(margin+30, pw.Y(), fmt.Sprintf("%d. %s (%s Marks)", i+1, entry.Text, formatMarks(entry.Marks)))
		pw.Advance(e.layout.LineAdvance)

		if entry.ImagePath != "" {
			if err := c.Image(entry.ImagePath, margin+40, pw.Y(), e.layout.ImageSize, e.layout.ImageSize); err != nil {
				e.log.Warn().Err(err).Msg("question image skipped")
			} else {
				pw.Advance(e.layout.ImageAdvance)
			}
		}

		if sec.MCQ && len(entry.Options) > 0 {
			e.renderOptions(c, pw, entry, contentWidth)
		}

		if !sec.MCQ {
			pw.Advance(e.layout.gapFor(sec.Marks))
		}

		if pw.NeedsBreak() {
			pw.Break(margin)
			c.SetFont(FontDefault, "", 11)
		}
	}
}

// renderOptions draws MCQ options in a two-column grid. Option letters come
// from the absolute option index. A row of images is added below an option
// pair only when at least one of the pair has an image; a failed image load
// still consumes that row's space so its partner stays aligned.
func (e *Engine) renderOptions(c Canvas, pw *PageWriter, entry Entry, contentWidth float64) {
	margin := e.layout.Margin
	optionWidth := (contentWidth - 60) / 2

	for i := 0; i < len(entry.Options); i += 2 {
		for j := 0; j < 2 && i+j < len(entry.Options); j++ {
			letter := rune('A' + i + j)
			c.Text(margin+40+float64(j)*optionWidth, pw.Y(),
				fmt.Sprintf("%c) %s", letter, entry.Options[i+j]))
		}
		pw.Advance(e.layout.OptionRowAdvance)

		hasImage := false
		for j := 0; j < 2 && i+j < len(entry.Options); j++ {
			path := optionImageAt(entry, i+j)
			if path == "" {
				continue
			}
			hasImage = true
			if err := c.Image(path, margin+40+float64(j)*optionWidth, pw.Y(), e.layout.ImageSize, e.layout.ImageSize); err != nil {
				e.log.Warn().Err(err).Msg("option image skipped")
			}
		}
		if hasImage {
			pw.Advance(e.layout.ImageAdvance)
		}
	}
}

// renderAnswerKey appends the answer pages and stamps them with their own
// numbering sequence starting at 1.
func (e *Engine) renderAnswerKey(c Canvas, doc *Document, contentWidth float64, mainPages int) {
	_, h := c.PageSize()
	margin := e.layout.Margin

	c.AddPage()
	c.SetFont(FontDefault, "BU", 16)
	c.CenterText(margin, "ANSWER KEY")

	top := margin + 40
	c.Box(margin+10, top, contentWidth, h-top-60)
	pw := NewPageWriter(c, e.layout, top+15)

	for _, sec := range doc.Sections {
		if len(sec.Entries) == 0 {
			continue
		}
		c.ShadeBox(margin+20, pw.Y(), contentWidth-20, e.layout.SectionBandHeight)
		c.SetFont(FontDefault, "B", 12)
		c.Text(margin+30, pw.Y()+7, sec.AnswerTitle)
		pw.Advance(e.layout.SectionBandAdvance)
		c.SetFont(FontDefault, "", 11)

		for i, entry := range sec.Entries {
			c.Text(margin+30, pw.Y(), fmt.Sprintf("%d. %s", i+1, entry.Answer))
			pw.Advance(e.layout.AnswerLineAdvance)
			if pw.NeedsBreak() {
				pw.Break(margin + 10)
				c.SetFont(FontDefault, "", 11)
			}
		}
	}

	answerPages := c.PageCount() - mainPages
	c.SetFont(FontDefault, "", 10)
	for k := 1; k <= answerPages; k++ {
		c.SetPage(mainPages + k)
		c.CenterText(h-e.layout.PageNumberOffset, fmt.Sprintf("Answer Key - Page %d of %d", k, answerPages))
	}
}

func durationOrDefault(d string) string {
	if d == "" {
		return "3 Hours"
	}
	return d
}

func formatMarks(marks float64) string {
	if marks == float64(int(marks)) {
		return fmt.Sprintf("%d", int(marks))
	}
	return fmt.Sprintf("%g", marks)
}

func optionImageAt(entry Entry, i int) string {
	if i < len(entry.OptionImages) {
		return entry.OptionImages[i]
	}
	return ""
}
