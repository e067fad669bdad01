package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pindrop/internal/domain"
	"pindrop/internal/review"
	"pindrop/internal/tui/styles"
)

// Degrees per nudge keypress, roughly 50m of latitude
const nudgeStep = 0.0005

// Vertical chrome: header + status + footer
const chromeHeight = 3

// Model is the Bubble Tea model for the review screen
type Model struct {
	session *review.Session
	keys    KeyMap

	spinner     spinner.Model
	filterInput textinput.Model

	// Render state
	visible      []domain.Candidate // snapshot of the session's working set
	results      []FilterResult     // active filename filter hits
	filterActive bool
	cursor       int
	offset       int
	width        int
	height       int

	busy   bool // fetch or commit in flight
	status string
	err    error
}

// NewModel creates the review screen model
func NewModel(session *review.Session) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &Model{
		session:     session,
		keys:        DefaultKeyMap(),
		spinner:     sp,
		filterInput: ti,
	}
}

func (m *Model) Init() tea.Cmd {
	m.busy = true
	m.status = "loading first page..."
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		m.busy = false
		m.err = msg.err
		m.reload()
		if msg.err == nil {
			m.status = fmt.Sprintf("%d candidates loaded", len(m.visible))
		}
		return m, nil

	case commitDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.reload()
			m.status = "committed; waiting for server to geocode..."
		}
		return m, nil

	case RefetchedMsg:
		m.err = msg.Err
		m.reload()
		if msg.Err == nil {
			m.status = fmt.Sprintf("refreshed, %d candidates remaining", len(m.visible))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing mode: route everything to the filter input
	if m.filterActive && m.filterInput.Focused() {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.clearFilter()
			return m, nil
		case msg.String() == "enter":
			m.filterInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.filterActive {
			m.clearFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filterActive = true
		m.filterInput.Focus()
		m.applyFilter()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = m.rowCount() - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Toggle):
		if c, ok := m.current(); ok {
			m.session.ToggleAccepted(c.Asset.ID)
			m.reload()
		}

	case key.Matches(msg, m.keys.Hide):
		if c, ok := m.current(); ok {
			if err := m.session.Hide(c.Asset.ID); err != nil {
				m.err = err
			}
			m.reload()
		}

	case key.Matches(msg, m.keys.UnhideAll):
		if err := m.session.UnhideAll(); err != nil {
			m.err = err
		}
		m.reload()

	case key.Matches(msg, m.keys.FetchMore):
		if m.busy || !m.session.HasMore() {
			return m, nil
		}
		m.busy = true
		m.status = "fetching..."
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())

	case key.Matches(msg, m.keys.Commit), key.Matches(msg, m.keys.CommitHide):
		if m.busy {
			return m, nil
		}
		if m.session.ConfirmedCount() == 0 {
			m.status = "nothing accepted to commit"
			return m, nil
		}
		hideRest := key.Matches(msg, m.keys.CommitHide)
		m.busy = true
		m.status = "committing..."
		return m, tea.Batch(m.spinner.Tick, m.commitCmd(hideRest))

	case key.Matches(msg, m.keys.NudgeNorth):
		m.nudge(nudgeStep, 0)
	case key.Matches(msg, m.keys.NudgeSouth):
		m.nudge(-nudgeStep, 0)
	case key.Matches(msg, m.keys.NudgeWest):
		m.nudge(0, -nudgeStep)
	case key.Matches(msg, m.keys.NudgeEast):
		m.nudge(0, nudgeStep)
	}

	return m, nil
}

// nudge shifts the current candidate's point, marking the estimate manual
func (m *Model) nudge(dLat, dLng float64) {
	c, ok := m.current()
	if !ok || c.Estimate == nil {
		return
	}
	p := c.Estimate.Point
	m.session.SetPoint(c.Asset.ID, domain.Point{Lat: p.Lat + dLat, Lng: p.Lng + dLng})
	m.reload()
}

// reload refreshes the render snapshot from the session
func (m *Model) reload() {
	m.visible = m.session.Visible()
	if m.filterActive {
		m.applyFilter()
	}
	m.clampCursor()
}

func (m *Model) applyFilter() {
	m.results = filterCandidates(m.filterInput.Value(), m.visible)
	m.clampCursor()
}

func (m *Model) clearFilter() {
	m.filterActive = false
	m.filterInput.Blur()
	m.filterInput.SetValue("")
	m.results = nil
	m.clampCursor()
}

func (m *Model) rowCount() int {
	if m.filterActive && m.filterInput.Value() != "" {
		return len(m.results)
	}
	return len(m.visible)
}

// current returns the candidate under the cursor
func (m *Model) current() (domain.Candidate, bool) {
	if m.filterActive && m.filterInput.Value() != "" {
		if m.cursor < 0 || m.cursor >= len(m.results) {
			return domain.Candidate{}, false
		}
		return m.visible[m.results[m.cursor].Index], true
	}
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Candidate{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := m.rowCount()
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	maxVisible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if maxVisible > 0 && m.cursor >= m.offset+maxVisible {
		m.offset = m.cursor - maxVisible + 1
	}
}

func (m *Model) listHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m *Model) headerView() string {
	title := styles.TitleStyle.Render("pindrop")
	info := styles.SubtitleStyle.Render(fmt.Sprintf(
		" %d candidates · %d accepted · %d hidden · next page %d",
		len(m.visible), m.session.ConfirmedCount(), m.session.HiddenCount(), m.session.Page(),
	))
	return title + info
}

func (m *Model) listView() string {
	count := m.rowCount()
	if count == 0 {
		if m.busy {
			return styles.DimStyle.Render("  " + m.spinner.View() + " working...")
		}
		return styles.DimStyle.Render("  nothing to review")
	}

	maxVisible := m.listHeight()
	end := m.offset + maxVisible
	if end > count {
		end = count
	}

	var rows []string
	for row := m.offset; row < end; row++ {
		rows = append(rows, m.rowView(row))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) rowView(row int) string {
	var c domain.Candidate
	var matched []int
	if m.filterActive && m.filterInput.Value() != "" {
		res := m.results[row]
		c = m.visible[res.Index]
		matched = res.MatchedIndexes
	} else {
		c = m.visible[row]
	}

	mark := styles.NoFixMark
	if c.Estimate != nil {
		if c.Accepted {
			mark = styles.AcceptedMark
		} else {
			mark = styles.RejectedMark
		}
	}

	name := highlightMatches(c.Asset.OriginalFileName, matched)
	when := styles.DimStyle.Render(c.Asset.TakenAt.Format("2006-01-02 15:04"))

	var where string
	switch {
	case c.Estimate == nil:
		where = styles.DimStyle.Render("no fix")
	case c.Estimate.Source == domain.ConfidenceExact:
		where = styles.SuccessStyle.Render(c.Estimate.Point.String())
	case c.Estimate.Source == domain.ConfidenceManual:
		where = styles.AccentStyle.Render(c.Estimate.Point.String() + " (manual)")
	default:
		where = styles.WarnStyle.Render(c.Estimate.Point.String() + " (interpolated)")
	}

	var tags string
	if review.LooksLikeScreenshot(c.Asset.OriginalFileName) {
		tags = " " + styles.DimStyle.Render("[screenshot]")
	}

	line := fmt.Sprintf(" %s %-36s %s  %s%s", mark, name, when, where, tags)
	if row == m.cursor {
		return styles.SelectedStyle.Render("▸") + line
	}
	return " " + line
}

// highlightMatches underlines the characters a filter query matched
func highlightMatches(name string, matched []int) string {
	if len(matched) == 0 {
		return name
	}
	set := make(map[int]struct{}, len(matched))
	for _, i := range matched {
		set[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		if _, ok := set[i]; ok {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *Model) footerView() string {
	if m.filterActive {
		return m.filterInput.View()
	}

	var status string
	switch {
	case m.err != nil:
		status = styles.ErrorStyle.Render(m.err.Error())
	case m.busy:
		status = m.spinner.View() + " " + styles.DimStyle.Render(m.status)
	default:
		status = styles.DimStyle.Render(m.status)
	}

	help := styles.DimStyle.Render("space accept · x hide · u unhide · c commit · C commit+hide · m more · / filter · q quit")
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(help)
	if gap < 1 {
		return status
	}
	return status + strings.Repeat(" ", gap) + help
}
