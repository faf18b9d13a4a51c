package pdf

// Font family names understood by a Canvas. The non-default families are
// only used for the localized instruction line.
const (
	FontDefault  = "default"
	FontHindi    = "hindi"
	FontGujarati = "gujarati"
)

// Entry is one question as it appears on the paper. ImagePath and
// OptionImages hold local file paths; empty strings mean no image.
// OptionImages is index-aligned with Options.
type Entry struct {
	Text         string
	Marks        float64
	ImagePath    string
	Options      []string
	OptionImages []string
	Answer       string
}

// Section is one type-partition of the paper. Marks is the per-type mark
// value and drives the post-question gap for written answers.
type Section struct {
	Title       string
	AnswerTitle string
	Marks       float64
	MCQ         bool
	Entries     []Entry
}

// Document is everything the layout engine needs to render one paper.
type Document struct {
	SchoolName     string
	SchoolLogoPath string
	ExamName       string
	BoardName      string
	Class          int
	Subjects       []string
	Chapters       []string
	Difficulty     string
	Duration       string
	TotalMarks     int
	Language       string
	IncludeAnswers bool
	Sections       []Section
}

// InstructionLine picks the first instruction string and its font family
// from the paper language. Unknown languages fall back to English in the
// default typeface.
func InstructionLine(language string) (text, fontFamily string) {
	switch language {
	case "Hindi":
		return "1. सभी प्रश्न अनिवार्य हैं।", FontHindi
	case "Gujarati":
		return "1. બધા પ્રશ્નો ફરજિયાત છે.", FontGujarati
	default:
		return "1. All questions are compulsory.", FontDefault
	}
}
