package pdf

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type drawOp struct {
	kind string // "text", "center", "image", "box", "shade", "font"
	page int
	x, y float64
	text string
	path string
	err  error
}

// fakeCanvas records draw operations with the page they landed on.
// failImages lists paths whose Image call reports a load failure.
type fakeCanvas struct {
	w, h       float64
	page       int
	pages      int
	ops        []drawOp
	failImages map[string]bool
}

func newFakeCanvas(w, h float64) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, failImages: map[string]bool{}}
}

func (f *fakeCanvas) PageSize() (float64, float64) { return f.w, f.h }

func (f *fakeCanvas) AddPage() {
	f.pages++
	f.page = f.pages
}

func (f *fakeCanvas) PageCount() int { return f.pages }

func (f *fakeCanvas) SetPage(page int) { f.page = page }

func (f *fakeCanvas) SetFont(family, style string, size float64) {
	f.ops = append(f.ops, drawOp{kind: "font", page: f.page, text: family + "/" + style})
}

func (f *fakeCanvas) Text(x, y float64, text string) {
	f.ops = append(f.ops, drawOp{kind: "text", page: f.page, x: x, y: y, text: text})
}

func (f *fakeCanvas) CenterText(y float64, text string) {
	f.ops = append(f.ops, drawOp{kind: "center", page: f.page, y: y, text: text})
}

func (f *fakeCanvas) Box(x, y, w, h float64) {
	f.ops = append(f.ops, drawOp{kind: "box", page: f.page, x: x, y: y})
}

func (f *fakeCanvas) ShadeBox(x, y, w, h float64) {
	f.ops = append(f.ops, drawOp{kind: "shade", page: f.page, x: x, y: y})
}

func (f *fakeCanvas) Image(path string, x, y, w, h float64) error {
	op := drawOp{kind: "image", page: f.page, x: x, y: y, path: path}
	if f.failImages[path] {
		op.err = fmt.Errorf("cannot load %s", path)
		f.ops = append(f.ops, op)
		return op.err
	}
	f.ops = append(f.ops, op)
	return nil
}

func (f *fakeCanvas) texts(pattern string) []drawOp {
	re := regexp.MustCompile(pattern)
	var out []drawOp
	for _, op := range f.ops {
		if (op.kind == "text" || op.kind == "center") && re.MatchString(op.text) {
			out = append(out, op)
		}
	}
	return out
}

func testEngine() *Engine {
	return NewEngine(DefaultLayout(), zerolog.Nop())
}

func manyShortQuestions(n int) Section {
	sec := Section{Title: "Section B: Short Answer Questions", AnswerTitle: "Section B Answers:", Marks: 3}
	for i := 0; i < n; i++ {
		sec.Entries = append(sec.Entries, Entry{
			Text:   fmt.Sprintf("Explain concept %d.", i+1),
			Marks:  3,
			Answer: fmt.Sprintf("Because of reason %d.", i+1),
		})
	}
	return sec
}

func baseDoc(sections ...Section) *Document {
	return &Document{
		SchoolName: "Test High School",
		ExamName:   "Midterm",
		BoardName:  "CBSE",
		Class:      10,
		Subjects:   []string{"Science"},
		Chapters:   []string{"Light"},
		Difficulty: "all",
		TotalMarks: 60,
		Sections:   sections,
	}
}

func TestRenderPageNumbersCoverAllMainPages(t *testing.T) {
	c := newFakeCanvas(595, 842)
	testEngine().Render(c, baseDoc(manyShortQuestions(20)))

	if c.pages < 2 {
		t.Fatalf("expected the document to spill over, got %d page(s)", c.pages)
	}
	stamps := c.texts(`^Page \d+ of \d+$`)
	if len(stamps) != c.pages {
		t.Fatalf("got %d page stamps, want %d", len(stamps), c.pages)
	}
	for i, op := range stamps {
		want := fmt.Sprintf("Page %d of %d", i+1, c.pages)
		if op.text != want {
			t.Errorf("stamp %d: %q, want %q", i, op.text, want)
		}
		if op.page != i+1 {
			t.Errorf("stamp %q landed on page %d", op.text, op.page)
		}
	}
}

func TestRenderBreaksOnlyBetweenQuestions(t *testing.T) {
	layout := DefaultLayout()
	c := newFakeCanvas(595, 842)
	testEngine().Render(c, baseDoc(manyShortQuestions(30)))

	// A question line is never drawn inside the bottom break zone; breaks
	// happen after a whole question, never inside one.
	limit := c.h - layout.BreakMargin
	for _, op := range c.texts(`^\d+\. Explain`) {
		if op.y > limit {
			t.Errorf("question %q drawn at y=%.0f, past break limit %.0f", op.text, op.y, limit)
		}
	}
}

func TestRenderAnswerKeyNumberingIsIndependent(t *testing.T) {
	c := newFakeCanvas(595, 842)
	doc := baseDoc(manyShortQuestions(20))
	doc.IncludeAnswers = true
	testEngine().Render(c, doc)

	if len(c.texts(`^ANSWER KEY$`)) != 1 {
		t.Fatal("missing ANSWER KEY heading")
	}

	mainStamps := c.texts(`^Page \d+ of \d+$`)
	answerStamps := c.texts(`^Answer Key - Page \d+ of \d+$`)
	if len(mainStamps) == 0 || len(answerStamps) == 0 {
		t.Fatalf("got %d main and %d answer stamps, want both non-zero", len(mainStamps), len(answerStamps))
	}

	mainPages := len(mainStamps)
	// Main numbering counts only the question pages.
	if got := mainStamps[len(mainStamps)-1].text; got != fmt.Sprintf("Page %d of %d", mainPages, mainPages) {
		t.Errorf("last main stamp %q does not match %d main pages", got, mainPages)
	}
	// Answer numbering restarts at 1 on the first answer page.
	first := answerStamps[0]
	if !strings.HasPrefix(first.text, "Answer Key - Page 1 of ") {
		t.Errorf("first answer stamp %q, want restart at 1", first.text)
	}
	if first.page != mainPages+1 {
		t.Errorf("first answer stamp on page %d, want %d", first.page, mainPages+1)
	}
}

func TestRenderFailedQuestionImageConsumesNoSpace(t *testing.T) {
	layout := DefaultLayout()

	render := func(imagePath string, fail bool) (first, second drawOp) {
		c := newFakeCanvas(595, 842)
		if fail {
			c.failImages[imagePath] = true
		}
		sec := Section{Title: "Section B: Short Answer Questions", Marks: 3, Entries: []Entry{
			{Text: "With picture.", ImagePath: imagePath},
			{Text: "Plain follow-up."},
		}}
		testEngine().Render(c, baseDoc(sec))
		return c.texts(`^1\. With picture`)[0], c.texts(`^2\. Plain follow-up`)[0]
	}

	perQuestion := layout.LineAdvance + layout.gapFor(3)

	q1, q2 := render("diagram.png", false)
	if got, want := q2.y-q1.y, perQuestion+layout.ImageAdvance; got != want {
		t.Errorf("loaded image: advance %.0f, want %.0f", got, want)
	}

	q1, q2 = render("missing.png", true)
	if got := q2.y - q1.y; got != perQuestion {
		t.Errorf("failed image: advance %.0f, want %.0f", got, perQuestion)
	}
}

func TestRenderOptionImageRowHoldsSpaceOnFailure(t *testing.T) {
	layout := DefaultLayout()

	render := func(optionImages []string, fail string) (first, next drawOp) {
		c := newFakeCanvas(595, 842)
		if fail != "" {
			c.failImages[fail] = true
		}
		sec := Section{Title: "Section A: Multiple Choice Questions", Marks: 1, MCQ: true, Entries: []Entry{
			{Text: "Pick one.", Options: []string{"a", "b"}, OptionImages: optionImages},
			{Text: "Next one.", Options: []string{"a", "b"}},
		}}
		testEngine().Render(c, baseDoc(sec))
		return c.texts(`^1\. Pick one`)[0], c.texts(`^2\. Next one`)[0]
	}

	base := layout.LineAdvance + layout.OptionRowAdvance

	// No images: just the question line and one option row.
	q1, q2 := render(nil, "")
	if got := q2.y - q1.y; got != base {
		t.Errorf("no images: advance %.0f, want %.0f", got, base)
	}

	// One failing image in the pair still reserves the image row so the
	// sibling option stays aligned.
	q1, q2 = render([]string{"broken.png", ""}, "broken.png")
	if got, want := q2.y-q1.y, base+layout.ImageAdvance; got != want {
		t.Errorf("failed option image: advance %.0f, want %.0f", got, want)
	}
}

func TestRenderInstructionLocalization(t *testing.T) {
	tests := []struct {
		language   string
		wantLine   string
		wantFamily string
	}{
		{"Hindi", "1. सभी प्रश्न अनिवार्य हैं।", FontHindi},
		{"Gujarati", "1. બધા પ્રશ્નો ફરજિયાત છે.", FontGujarati},
		{"English", "1. All questions are compulsory.", FontDefault},
		{"", "1. All questions are compulsory.", FontDefault},
	}
	for _, tt := range tests {
		line, family := InstructionLine(tt.language)
		if line != tt.wantLine || family != tt.wantFamily {
			t.Errorf("InstructionLine(%q) = %q/%q, want %q/%q", tt.language, line, family, tt.wantLine, tt.wantFamily)
			continue
		}

		c := newFakeCanvas(595, 842)
		doc := baseDoc(manyShortQuestions(1))
		doc.Language = tt.language
		testEngine().Render(c, doc)

		// The localized line is drawn right after a switch to its family,
		// and the fixed second line reverts to the default face.
		idx := -1
		for i, op := range c.ops {
			if op.kind == "text" && op.text == tt.wantLine {
				idx = i
				break
			}
		}
		if idx < 1 {
			t.Errorf("language %q: instruction line not drawn", tt.language)
			continue
		}
		if got := c.ops[idx-1]; got.kind != "font" || got.text != tt.wantFamily+"/" {
			t.Errorf("language %q: font before line = %+v, want %s", tt.language, got, tt.wantFamily)
		}
		if got := c.ops[idx+1]; got.kind != "font" || got.text != FontDefault+"/" {
			t.Errorf("language %q: font after line = %+v, want default", tt.language, got)
		}
	}
}

func TestRenderSkipsEmptySections(t *testing.T) {
	c := newFakeCanvas(595, 842)
	empty := Section{Title: "Section C: Long Answer Questions", Marks: 5}
	testEngine().Render(c, baseDoc(empty, manyShortQuestions(2)))

	if got := c.texts(`^Section C`); len(got) != 0 {
		t.Errorf("empty section title drawn %d times, want 0", len(got))
	}
	if got := c.texts(`^Section B`); len(got) != 1 {
		t.Errorf("populated section title drawn %d times, want 1", len(got))
	}
}

func TestRenderFallbackSchoolName(t *testing.T) {
	c := newFakeCanvas(595, 842)
	doc := baseDoc(manyShortQuestions(1))
	doc.SchoolName = ""
	testEngine().Render(c, doc)

	if got := c.texts(`^School Name$`); len(got) != 1 {
		t.Errorf("fallback school name drawn %d times, want 1", len(got))
	}
}

func TestDurationDefault(t *testing.T) {
	c := newFakeCanvas(595, 842)
	doc := baseDoc(manyShortQuestions(1))
	doc.Duration = ""
	testEngine().Render(c, doc)

	if got := c.texts(`^Duration: 3 Hours$`); len(got) != 1 {
		t.Errorf("default duration drawn %d times, want 1", len(got))
	}
}
