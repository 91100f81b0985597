// Package editor is the full-screen note editing loop: a textarea bound to
// the document session, a quick-switch palette over the vault index, link
// navigation with history, and a rendered markdown preview.
package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fernnotes/fern/internal/session"
	"github.com/fernnotes/fern/internal/state"
	"github.com/fernnotes/fern/internal/vault"
	"github.com/fernnotes/fern/internal/wikilink"
)

type viewMode int

const (
	modeEdit viewMode = iota
	modeSwitcher
	modePreview
)

type sessionUpdateMsg struct{}

type externalReloadMsg struct {
	content string
}

type Model struct {
	state    *state.State
	keys     *editorKeyMap
	area     textarea.Model
	switcher switcherModel
	mode     viewMode

	index       *vault.Index
	related     []relatedEntry
	showRelated bool

	// lastBuffer mirrors what the session last saw, so textarea updates that
	// did not change the text (cursor motion) do not restart the save timer.
	lastBuffer string

	banner  string
	notice  string
	updates chan tea.Msg

	width  int
	height int
}

func NewModel(s *state.State) (*Model, error) {
	idx, err := s.Index.AcquireSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to index vault: %w", err)
	}

	area := textarea.New()
	area.CharLimit = 0
	area.Placeholder = "..."
	area.Focus()

	sw := newSwitcher()
	sw.load(idx, s.Handler.ReadFile)

	m := &Model{
		state:    s,
		keys:     newEditorKeyMap(),
		area:     area,
		switcher: sw,
		mode:     modeSwitcher,
		index:    idx,
		updates:  make(chan tea.Msg, 32),
	}

	s.Session.OnUpdate(func() {
		select {
		case m.updates <- sessionUpdateMsg{}:
		default:
		}
	})
	s.Session.OnExternalReload(func(content string) {
		m.updates <- externalReloadMsg{content: content}
	})

	return m, nil
}

// OpenInitial activates a note before the program starts, bypassing the
// switcher, for launches that already know the target.
func (m *Model) OpenInitial(rec vault.FileRecord) {
	m.openFile(rec, false)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.state.Watcher.Start(), m.listen())
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.area.SetWidth(m.bodyWidth() - h)
		m.area.SetHeight(msg.Height - v - 4)
		return m, nil

	case sessionUpdateMsg:
		m.refreshRelated()
		return m, m.listen()

	case externalReloadMsg:
		m.area.SetValue(msg.content)
		m.lastBuffer = msg.content
		m.refreshRelated()
		return m, m.listen()

	case state.NoteChangedMsg:
		if idx, err := m.state.Index.AcquireSnapshot(); err == nil {
			m.index = idx
			m.switcher.load(idx, m.state.Handler.ReadFile)
			m.refreshRelated()
		}
		return m, m.state.Watcher.Start()

	case state.VaultWatcherErrMsg:
		m.banner = fmt.Sprintf("watcher error: %v", msg.Err)
		return m, m.state.Watcher.Start()

	case tea.KeyMsg:
		switch m.mode {
		case modeSwitcher:
			return m.updateSwitcher(msg)
		case modePreview:
			return m.updatePreview(msg)
		default:
			return m.updateEditor(msg)
		}
	}

	return m, nil
}

// requestQuit flushes the open note before exiting. If the flush fails the
// program stays up with the save error on screen instead of dropping the
// unsaved buffer.
func (m *Model) requestQuit() (tea.Model, tea.Cmd) {
	if !m.state.Session.SwitchAway() {
		m.mode = modeEdit
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.openSwitcher):
		if idx, err := m.state.Index.AcquireSnapshot(); err == nil {
			m.index = idx
			m.switcher.load(idx, m.state.Handler.ReadFile)
		}
		m.switcher.input.SetValue("")
		m.switcher.refresh(m.index)
		m.mode = modeSwitcher
		return m, m.switcher.Init()

	case key.Matches(msg, m.keys.followLink):
		m.followLink()
		return m, nil

	case key.Matches(msg, m.keys.goBack):
		snap := m.state.Session.Snapshot()
		if rec, ok := m.state.History.GoBack(snap.ActiveFile); ok {
			m.openFile(rec, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.goForward):
		if rec, ok := m.state.History.GoForward(); ok {
			m.openFile(rec, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.togglePreview):
		m.mode = modePreview
		return m, nil

	case key.Matches(msg, m.keys.toggleRelated):
		m.showRelated = !m.showRelated
		if m.showRelated {
			m.refreshRelated()
		}
		m.area.SetWidth(m.bodyWidth())
		return m, nil

	case key.Matches(msg, m.keys.yankLink):
		m.yankLink()
		return m, nil

	case key.Matches(msg, m.keys.save):
		m.state.Session.Persist()
		return m, nil

	case key.Matches(msg, m.keys.dismiss):
		m.banner = ""
		m.notice = ""
		m.state.Session.ClearError()
		return m, nil
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)

	if value := m.area.Value(); value != m.lastBuffer {
		m.lastBuffer = value
		m.notice = ""
		m.state.Session.Edit(value)
		if m.showRelated {
			m.refreshRelated()
		}
	}

	return m, cmd
}

func (m *Model) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.dismiss):
		if m.state.Session.Snapshot().ActiveFile != nil {
			m.mode = modeEdit
		}
		return m, nil

	case key.Matches(msg, m.keys.submit):
		if rec, ok := m.switcher.selected(); ok {
			m.openFile(rec, true)
		}
		return m, nil

	case key.Matches(msg, m.keys.cursorUp):
		m.switcher.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.cursorDown):
		m.switcher.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.switcher.input, cmd = m.switcher.input.Update(msg)
	m.switcher.refresh(m.index)
	return m, cmd
}

func (m *Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.togglePreview), key.Matches(msg, m.keys.dismiss):
		m.mode = modeEdit
		return m, nil
	}

	return m, nil
}

// openFile activates a note in the session. push records the departing note
// in navigation history; history-driven moves pass false so replaying the
// stack does not rewrite it.
func (m *Model) openFile(rec vault.FileRecord, push bool) {
	snap := m.state.Session.Snapshot()
	if push && snap.ActiveFile != nil && snap.ActiveFile.AbsolutePath != rec.AbsolutePath {
		m.state.History.Push(*snap.ActiveFile)
	}

	m.state.Session.Open(rec)

	after := m.state.Session.Snapshot()
	if after.LoadState != session.Loaded || after.ActiveFile == nil ||
		after.ActiveFile.AbsolutePath != rec.AbsolutePath {
		// Failed open keeps the previous document; the session carries the
		// error banner.
		return
	}

	m.area.SetValue(after.Buffer)
	m.area.CursorStart()
	m.lastBuffer = after.Buffer
	m.mode = modeEdit
	m.notice = ""
	m.refreshRelated()
}

func (m *Model) followLink() {
	lines := strings.Split(m.area.Value(), "\n")
	row := m.area.Line()
	if row < 0 || row >= len(lines) {
		return
	}

	info := m.area.LineInfo()
	col := info.StartColumn + info.ColumnOffset

	link, ok := wikilink.At(lines[row], byteColumn(lines[row], col))
	if !ok {
		m.notice = "no link under cursor"
		return
	}

	res := wikilink.Resolve(link.Target, m.index)
	if !res.Exists {
		m.banner = fmt.Sprintf("broken link: %s", link.Target)
		return
	}

	m.banner = ""
	m.openFile(*res.File, true)
}

// byteColumn converts the textarea's rune-counted cursor column into a byte
// offset into line, so multibyte characters before the cursor do not shift
// the link hit test.
func byteColumn(line string, col int) int {
	offset := 0
	for i := 0; i < col && offset < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[offset:])
		offset += size
	}
	return offset
}

func (m *Model) yankLink() {
	snap := m.state.Session.Snapshot()
	if snap.ActiveFile == nil {
		return
	}

	name := strings.TrimSuffix(snap.ActiveFile.Name, ".md")
	if err := clipboard.WriteAll("[[" + name + "]]"); err != nil {
		m.banner = fmt.Sprintf("failed to copy link: %v", err)
		return
	}
	m.notice = fmt.Sprintf("copied [[%s]]", name)
}

func (m *Model) refreshRelated() {
	m.related = collectRelated(m.state.Session.Snapshot().Buffer, m.index)
}

func (m *Model) bodyWidth() int {
	if !m.showRelated {
		return m.width
	}
	return m.width * 2 / 3
}

func (m *Model) View() string {
	snap := m.state.Session.Snapshot()

	header := m.headerView(snap)
	status := m.statusView(snap)

	var body string
	switch m.mode {
	case modeSwitcher:
		body = m.switcher.view(m.height - 8)
	case modePreview:
		body = renderPreview(snap.Buffer, m.bodyWidth(), m.state.Config.Theme)
	default:
		body = m.area.View()
	}

	if m.showRelated && m.mode != modeSwitcher {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.relatedView())
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, status))
}

func (m *Model) headerView(snap session.Snapshot) string {
	title := "fern"
	if snap.ActiveFile != nil {
		title = snap.ActiveFile.RelativePath
	}

	header := titleStyle.Render(title)
	if snap.Dirty {
		header += dirtyStyle.Render(" ●")
	}
	return header
}

func (m *Model) statusView(snap session.Snapshot) string {
	if snap.Err != "" {
		return errorStyle.Render(snap.Err)
	}
	if m.banner != "" {
		return errorStyle.Render(m.banner)
	}

	parts := []string{}
	if s := statusText(snap); s != "" {
		parts = append(parts, s)
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	parts = append(parts, helpStyle.Render("ctrl+p switch · ctrl+] follow · ctrl+o back · f9 preview · ctrl+q quit"))

	return statusStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) relatedView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Links"))
	b.WriteString("\n")

	if len(m.related) == 0 {
		b.WriteString(itemStyle.Render("none"))
		return relatedPanelStyle.Render(b.String())
	}

	for i, entry := range m.related {
		if entry.Exists {
			b.WriteString(linkStyle.Render(entry.Display))
		} else {
			b.WriteString(brokenLinkStyle.Render(entry.Display))
		}
		if i < len(m.related)-1 {
			b.WriteString("\n")
		}
	}

	return relatedPanelStyle.Render(b.String())
}

// statusText maps the session's transient save state to the status bar label.
func statusText(snap session.Snapshot) string {
	switch snap.SaveStatus {
	case session.Saving:
		return "saving…"
	case session.Saved:
		return "saved"
	case session.ReloadedExternally:
		return "reloaded from disk"
	}

	if snap.Dirty {
		return "unsaved changes"
	}
	return ""
}
