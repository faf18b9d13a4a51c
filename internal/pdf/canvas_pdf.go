package pdf

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Script font files looked up under the configured font directory.
var scriptFontFiles = map[string]string{
	FontHindi:    "NotoSansDevanagari-Regular.ttf",
	FontGujarati: "NotoSansGujarati-Regular.ttf",
}

// PDFCanvas renders onto an A4 PDF document. Script fonts found in fontDir
// are registered at construction; a missing font file degrades that family
// to the built-in default instead of failing the render.
type PDFCanvas struct {
	f        *gofpdf.Fpdf
	families map[string]string
	fontSize float64
}

// NewPDFCanvas creates a buffered A4 canvas in point units.
func NewPDFCanvas(fontDir string) *PDFCanvas {
	f := gofpdf.New("P", "pt", "A4", fontDir)
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)

	families := map[string]string{FontDefault: "Helvetica"}
	for family, file := range scriptFontFiles {
		if _, err := os.Stat(filepath.Join(fontDir, file)); err != nil {
			families[family] = "Helvetica"
			continue
		}
		f.AddUTF8Font(family, "", file)
		families[family] = family
	}

	return &PDFCanvas{f: f, families: families}
}

// PageSize returns the page dimensions in points.
func (c *PDFCanvas) PageSize() (float64, float64) {
	w, h := c.f.GetPageSize()
	return w, h
}

// AddPage appends a blank page.
func (c *PDFCanvas) AddPage() {
	c.f.AddPage()
}

// PageCount returns the number of pages added so far.
func (c *PDFCanvas) PageCount() int {
	return c.f.PageCount()
}

// SetPage revisits an existing page for overlay drawing.
func (c *PDFCanvas) SetPage(page int) {
	c.f.SetPage(page)
}

// SetFont selects the font for subsequent text. Script families registered
// as UTF-8 fonts ignore the bold style.
func (c *PDFCanvas) SetFont(family, style string, size float64) {
	name := c.families[family]
	if name == "" {
		name = "Helvetica"
	}
	if name != "Helvetica" {
		style = ""
	}
	c.f.SetFont(name, style, size)
	c.fontSize = size
}

// Text draws a string anchored at its top-left corner.
func (c *PDFCanvas) Text(x, y float64, text string) {
	c.f.Text(x, y+c.fontSize*0.8, text)
}

// CenterText draws a string horizontally centered on the page.
func (c *PDFCanvas) CenterText(y float64, text string) {
	w, _ := c.f.GetPageSize()
	tw := c.f.GetStringWidth(text)
	c.f.Text((w-tw)/2, y+c.fontSize*0.8, text)
}

// Box strokes a rectangle border.
func (c *PDFCanvas) Box(x, y, w, h float64) {
	c.f.Rect(x, y, w, h, "D")
}

// ShadeBox fills a rectangle with the light section-band grey.
func (c *PDFCanvas) ShadeBox(x, y, w, h float64) {
	c.f.SetFillColor(240, 240, 240)
	c.f.Rect(x, y, w, h, "F")
}

// Image draws an image file scaled to w×h. The file is decoded up front so
// a corrupt or unsupported image reports an error here instead of poisoning
// the document state.
func (c *PDFCanvas) Image(path string, x, y, w, h float64) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	_, format, err := image.DecodeConfig(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	}

	opts := gofpdf.ImageOptions{ImageType: format, ReadDpi: false}
	c.f.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	if c.f.Err() {
		err := c.f.Error()
		c.f.ClearError()
		return fmt.Errorf("draw image %s: %w", path, err)
	}
	return nil
}

// Output finalizes the document and writes the PDF bytes.
func (c *PDFCanvas) Output(w io.Writer) error {
	return c.f.Output(w)
}
