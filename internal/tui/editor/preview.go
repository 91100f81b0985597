package editor

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/fernnotes/fern/internal/cache"
)

// previews memoizes rendered output; glamour re-renders are costly enough to
// notice on every repaint of the preview pane.
var previews = cache.New(16)

func glamourStyle(theme string) string {
	if theme == "light" {
		return "light"
	}
	return "dracula"
}

// renderPreview renders the in-memory buffer, not the on-disk file, so unsaved
// edits show up immediately.
func renderPreview(content string, width int, theme string) string {
	if width <= 0 {
		width = 80
	}

	key := fmt.Sprintf("%s|%d|%s", theme, width, content)
	if rendered, ok := previews.Get(key); ok {
		return rendered
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle(theme)),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "Error rendering markdown"
	}

	markdown, err := r.Render(content)
	if err != nil {
		return "Error rendering markdown"
	}

	previews.Put(key, markdown)
	return markdown
}
