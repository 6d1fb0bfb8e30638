package markup

import (
	"bytes"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/interfaces"
)

// Markdown renders Markdown to HTML. Raw HTML in the source is escaped.
type Markdown struct {
	md goldmark.Markdown
}

var _ interfaces.MarkupRenderer = (*Markdown)(nil)

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (m *Markdown) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", goerr.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}
