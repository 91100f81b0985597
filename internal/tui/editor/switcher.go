package editor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v2"

	"github.com/fernnotes/fern/internal/finder"
	"github.com/fernnotes/fern/internal/vault"
)

var frontMatterPattern = regexp.MustCompile(`(?s)\A---\n(.+?)\n---`)

type switcherItem struct {
	record vault.FileRecord
	title  string
	stamp  time.Time
}

// switcherModel is the quick-switch palette: a text input over the vault
// index, ranked by fuzzy score while typing and by front-matter recency when
// the query is empty.
type switcherModel struct {
	input   textinput.Model
	items   []switcherItem
	results []switcherItem
	cursor  int
}

func newSwitcher() switcherModel {
	t := textinput.New()
	t.Prompt = "> "
	t.Placeholder = "note name or path"
	t.Cursor.Style = selectedItemStyle
	t.PromptStyle = titleStyle
	t.Focus()

	return switcherModel{input: t}
}

func (m switcherModel) Init() tea.Cmd {
	return textinput.Blink
}

// load rebuilds the palette entries from an index snapshot. read fetches a
// note body for front-matter metadata; a read failure falls back to the bare
// file name.
func (m *switcherModel) load(idx *vault.Index, read func(string) (string, error)) {
	records := idx.Records()
	items := make([]switcherItem, 0, len(records))

	for _, rec := range records {
		item := switcherItem{record: rec, title: rec.Name}
		if read != nil {
			if content, err := read(rec.AbsolutePath); err == nil {
				item.title, item.stamp = noteMetadata([]byte(content), rec.Name)
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].stamp.Equal(items[j].stamp) {
			return items[i].stamp.After(items[j].stamp)
		}
		return items[i].record.RelativePath < items[j].record.RelativePath
	})

	m.items = items
	m.refresh(idx)
}

// refresh recomputes the visible results for the current query.
func (m *switcherModel) refresh(idx *vault.Index) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.results = m.items
	} else {
		byPath := make(map[string]switcherItem, len(m.items))
		for _, item := range m.items {
			byPath[item.record.RelativePath] = item
		}

		ranked := finder.Rank(query, idx)
		results := make([]switcherItem, 0, len(ranked))
		for _, rec := range ranked {
			if item, ok := byPath[rec.RelativePath]; ok {
				results = append(results, item)
			} else {
				results = append(results, switcherItem{record: rec, title: rec.Name})
			}
		}
		m.results = results
	}

	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *switcherModel) moveCursor(delta int) {
	if len(m.results) == 0 {
		m.cursor = 0
		return
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
}

func (m *switcherModel) selected() (vault.FileRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return vault.FileRecord{}, false
	}
	return m.results[m.cursor].record, true
}

func (m switcherModel) view(maxRows int) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(itemStyle.Render("no matching notes"))
		return switcherStyle.Render(b.String())
	}

	rows := len(m.results)
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	for i := 0; i < rows; i++ {
		item := m.results[i]
		line := fmt.Sprintf("%s  %s", item.title, item.record.RelativePath)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		if i < rows-1 {
			b.WriteString("\n")
		}
	}

	return switcherStyle.Render(b.String())
}

// noteMetadata extracts a display title and recency stamp from a note's YAML
// front matter. Missing or malformed front matter yields the fallback title
// and a zero stamp.
func noteMetadata(content []byte, fallback string) (string, time.Time) {
	match := frontMatterPattern.FindSubmatch(content)
	if match == nil {
		return fallback, time.Time{}
	}

	var data struct {
		Title    string `yaml:"title"`
		Modified string `yaml:"modified"`
		Created  string `yaml:"created"`
	}
	if err := yaml.Unmarshal(match[1], &data); err != nil {
		return fallback, time.Time{}
	}

	title := strings.TrimSpace(data.Title)
	if title == "" {
		title = fallback
	}

	for _, raw := range []string{data.Modified, data.Created} {
		if raw == "" {
			continue
		}
		if stamp, err := dateparse.ParseAny(raw); err == nil {
			return title, stamp
		}
	}

	return title, time.Time{}
}
