package report

import (
	"bytes"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

const (
	defaultFontSize   = 12.0
	defaultLineHeight = 20.0
	defaultMargin     = 72.0

	utf8FontFamily = "report"
)

// PDF renders reports as A4 PDF documents measured in points. Without a
// UTF-8 font the core Helvetica font is used and text outside cp1252 is
// not representable.
type PDF struct {
	fontSize   float64
	lineHeight float64
	fontPath   string
}

var _ interfaces.ReportRenderer = (*PDF)(nil)

type Option func(*PDF)

func WithFontSize(size float64) Option {
	return func(p *PDF) {
		p.fontSize = size
	}
}

// WithUTF8Font embeds the TrueType font at path so any Unicode text renders
func WithUTF8Font(path string) Option {
	return func(p *PDF) {
		p.fontPath = path
	}
}

func NewPDF(opts ...Option) *PDF {
	p := &PDF{
		fontSize:   defaultFontSize,
		lineHeight: defaultLineHeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PDF) NewCanvas() interfaces.ReportCanvas {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(defaultMargin, defaultMargin, defaultMargin)
	// Lines past the bottom margin continue on a new page
	doc.SetAutoPageBreak(true, defaultMargin)

	tr := func(s string) string { return s }
	if p.fontPath != "" {
		doc.AddUTF8Font(utf8FontFamily, "", p.fontPath)
		doc.SetFont(utf8FontFamily, "", p.fontSize)
	} else {
		doc.SetFont("Helvetica", "", p.fontSize)
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.AddPage()

	return &canvas{
		doc:        doc,
		lineHeight: p.lineHeight,
		tr:         tr,
	}
}

type canvas struct {
	doc        *fpdf.Fpdf
	lineHeight float64
	tr         func(string) string
}

func (c *canvas) WriteLine(text string) {
	c.doc.CellFormat(0, c.lineHeight, c.tr(text), "", 1, "L", false, 0, "")
}

func (c *canvas) NewPage() {
	c.doc.AddPage()
}

func (c *canvas) Finalize() ([]byte, error) {
	if err := c.doc.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to build PDF")
	}
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to render PDF")
	}
	return buf.Bytes(), nil
}
