// Package tui renders a saved hand in the terminal: a replay viewer
// with seat-by-seat state, boards, pots and the action ledger, driven
// by the engine's snapshot history.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/deck"
	"github.com/lox/handtracker/internal/engine"
)

// tickMsg advances the replay cursor while auto-play is on.
type tickMsg time.Time

// ViewerModel is the Bubble Tea model for the replay viewer.
type ViewerModel struct {
	engine *engine.Engine
	logger *log.Logger

	ledgerViewport viewport.Model

	playing  bool
	interval time.Duration
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewViewer creates a replay viewer for an engine that has a hand
// record loaded.
func NewViewer(e *engine.Engine, logger *log.Logger) *ViewerModel {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &ViewerModel{
		engine:         e,
		logger:         logger.WithPrefix("tui"),
		ledgerViewport: vp,
		interval:       e.ReplayInterval(),
	}
}

// Run starts the viewer and blocks until the user quits.
func (m *ViewerModel) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the viewer model.
func (m *ViewerModel) Init() tea.Cmd {
	return nil
}

func (m *ViewerModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages for the viewer.
func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ledgerViewport.Width = msg.Width - 4
		ledgerHeight := msg.Height - 18
		if ledgerHeight < 3 {
			ledgerHeight = 3
		}
		m.ledgerViewport.Height = ledgerHeight
		m.initialized = true

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.engine.NavigateHistory(1)
		if m.atEnd() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "left", "h":
			m.playing = false
			m.engine.NavigateHistory(-1)
		case "right", "l":
			m.playing = false
			m.engine.NavigateHistory(1)
		case "home", "g":
			m.playing = false
			m.engine.RestartReplay()
		case "end", "G":
			m.playing = false
			m.engine.NavigateHistory(len(m.engine.History()))
		case " ":
			if m.playing {
				m.playing = false
				return m, nil
			}
			if m.atEnd() {
				m.engine.RestartReplay()
			}
			m.playing = true
			return m, m.tick()
		case "+", "=":
			m.setInterval(m.interval / 2)
		case "-":
			m.setInterval(m.interval * 2)
		}
	}

	var cmd tea.Cmd
	m.ledgerViewport, cmd = m.ledgerViewport.Update(msg)
	return m, cmd
}

func (m *ViewerModel) setInterval(d time.Duration) {
	if d < 250*time.Millisecond {
		d = 250 * time.Millisecond
	}
	if d > 16*time.Second {
		d = 16 * time.Second
	}
	m.interval = d
	m.engine.SetReplayInterval(d)
}

func (m *ViewerModel) atEnd() bool {
	return m.engine.Cursor() >= len(m.engine.History())-1
}

// View renders the viewer.
func (m *ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	snap, ok := m.engine.CurrentSnapshot()
	if !ok {
		return "No hand loaded."
	}

	var b strings.Builder
	cursor := m.engine.Cursor()
	total := len(m.engine.History())

	header := fmt.Sprintf(" Hand Replay — step %d/%d ", cursor+1, total)
	if m.playing {
		header += "▶ "
	} else {
		header += "⏸ "
	}
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(DescriptionStyle.Render(snap.Description))
	b.WriteString("\n\n")

	for i, board := range snap.Boards {
		label := "Board"
		if len(snap.Boards) == 2 {
			label = fmt.Sprintf("Board %d", i+1)
		}
		b.WriteString(fmt.Sprintf("%-8s %s\n", label+":", renderCards(board)))
	}
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot: %d", snap.TotalPot())))
	if len(snap.Pots) > 1 {
		parts := make([]string, len(snap.Pots))
		for i, pot := range snap.Pots {
			parts[i] = fmt.Sprintf("%d", pot.Amount)
		}
		b.WriteString(PotStyle.Render(fmt.Sprintf(" (%s)", strings.Join(parts, " / "))))
	}
	b.WriteString("\n\n")

	for i := range snap.Players {
		b.WriteString(renderSeat(&snap.Players[i], i == snap.ActivePlayer))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	m.ledgerViewport.SetContent(m.renderLedger())
	b.WriteString(m.ledgerViewport.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("←/→ step · space play/pause · +/- speed · g/G ends · q quit"))

	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// renderLedger renders the full snapshot list with the cursor marked.
func (m *ViewerModel) renderLedger() string {
	history := m.engine.History()
	cursor := m.engine.Cursor()

	var lines []string
	for i, snap := range history {
		line := fmt.Sprintf("%3d  %s", i+1, snap.Description)
		if i == cursor {
			lines = append(lines, LedgerCursorStyle.Render("▸"+line))
		} else {
			lines = append(lines, LedgerStyle.Render(" "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func renderSeat(p *engine.Player, active bool) string {
	marker := " "
	if active {
		marker = "▸"
	}

	var badges []string
	if p.IsDealer {
		badges = append(badges, "D")
	}
	if p.IsSB {
		badges = append(badges, "SB")
	}
	if p.IsBB {
		badges = append(badges, "BB")
	}
	if p.IsStraddle || p.IsMississippi {
		badges = append(badges, "ST")
	}
	if p.IsAllIn {
		badges = append(badges, "ALL-IN")
	}
	badge := ""
	if len(badges) > 0 {
		badge = " [" + strings.Join(badges, ",") + "]"
	}

	status := ""
	if !p.InHand {
		status = " folded"
	} else if p.LastAction != "" {
		status = " " + p.LastAction
	}

	line := fmt.Sprintf("%s %-10s %6d  %s%s%s", marker, p.Name, p.Stack, renderCards(p.Cards), badge, status)
	if p.BetThisRound > 0 {
		line += fmt.Sprintf("  bet %d", p.BetThisRound)
	}

	switch {
	case !p.InHand:
		return FoldedSeatStyle.Render(line)
	case active:
		return ActiveSeatStyle.Render(line)
	default:
		return SeatStyle.Render(line)
	}
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		switch {
		case c.IsZero():
			parts[i] = EmptySlotStyle.Render("__")
		case c.IsRed():
			parts[i] = RedCardStyle.Render(c.String())
		default:
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}
