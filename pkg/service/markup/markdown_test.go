package markup_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/service/markup"
)

func TestMarkdown_Render(t *testing.T) {
	m := markup.NewMarkdown()

	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{name: "emphasis", src: "**great** work", contains: "<strong>great</strong>"},
		{name: "paragraph", src: "thanks", contains: "<p>thanks</p>"},
		{name: "list", src: "- one\n- two", contains: "<li>one</li>"},
		{name: "link", src: "[docs](https://example.com)", contains: `<a href="https://example.com">docs</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.Render(tt.src)
			gt.NoError(t, err).Required()
			gt.String(t, out).Contains(tt.contains)
		})
	}

	t.Run("raw html is not passed through", func(t *testing.T) {
		out, err := m.Render("<script>alert(1)</script>")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("raw HTML omitted")
	})
}
