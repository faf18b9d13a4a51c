package pdf

// Canvas is the drawing surface the layout engine renders onto. Pages are
// 1-based. Implementations must support revisiting earlier pages so page
// numbers can be stamped after the full document is laid out.
type Canvas interface {
	// PageSize returns the page width and height in points.
	PageSize() (w, h float64)

	// AddPage appends a blank page and makes it current.
	AddPage()

	// PageCount returns the number of pages added so far.
	PageCount() int

	// SetPage makes an existing page current for further drawing.
	SetPage(page int)

	// SetFont selects a font family ("default", "hindi", "gujarati"),
	// style ("", "B", "BU") and size for subsequent text.
	SetFont(family, style string, size float64)

	// Text draws a string with its top-left corner at (x, y).
	Text(x, y float64, text string)

	// CenterText draws a string horizontally centered at vertical offset y.
	CenterText(y float64, text string)

	// Box strokes a rectangle border.
	Box(x, y, w, h float64)

	// ShadeBox fills a rectangle with the section-band shade.
	ShadeBox(x, y, w, h float64)

	// Image draws an image file scaled to w×h at (x, y). A failed load
	// returns an error and draws nothing.
	Image(path string, x, y, w, h float64) error
}
