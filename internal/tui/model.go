package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/console"
	"github.com/hailam/gridchess/internal/session"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

// Model is the bubbletea model of the terminal front end: the registry it
// plays on, the console it runs commands through, the cursor and selection,
// and the log pane.
type Model struct {
	reg *session.Registry
	con *console.Console

	cursor   board.Coord
	selected *board.Coord
	targets  []board.Coord
	flipped  bool

	m        mode
	input    textinput.Model
	logLines []string

	width  int
	height int
}

// NewModel creates the model. A standard game is opened when reg has none.
func NewModel(reg *session.Registry, saved console.GameLister) Model {
	ti := textinput.New()
	ti.Placeholder = "command..."
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 60

	m := Model{
		reg:    reg,
		con:    console.New(reg, saved),
		cursor: board.C(4, 1),
		m:      modeNormal,
		input:  ti,
		logLines: []string{
			"ready (arrows move, enter selects, i for commands, n/s new game, f flips)",
		},
	}
	if reg.Count() == 0 {
		if _, err := reg.NewGame(session.Standard); err != nil {
			m.appendLog(fmt.Sprintf("new game: %v", err))
		}
	}
	return m
}

// Init starts no commands.
func (m Model) Init() tea.Cmd { return nil }

// Update handles window resizes and keys. In input mode keys go to the
// command line until enter or esc.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(80, max(30, m.width-4))
		return m, nil

	case tea.KeyMsg:
		switch m.m {
		case modeNormal:
			return m.updateNormal(msg)

		case modeInput:
			switch msg.String() {
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				cmdline := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				m.m = modeNormal
				m.input.Blur()

				if cmdline != "" {
					if !m.execCommand(cmdline) {
						return m, tea.Quit
					}
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	up, down := 1, -1
	left, right := -1, 1
	if m.flipped {
		up, down, left, right = -1, 1, 1, -1
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "i", ":":
		m.m = modeInput
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.moveCursor(0, up)
	case "down", "j":
		m.moveCursor(0, down)
	case "left", "h":
		m.moveCursor(left, 0)
	case "right", "l":
		m.moveCursor(right, 0)
	case "enter", " ":
		m.activate()
	case "esc":
		m.clearSelection()
	case "n":
		m.clearSelection()
		m.execCommand("new")
	case "s":
		m.clearSelection()
		m.execCommand("shuffle")
	case "f":
		m.flipped = !m.flipped
	case "tab":
		m.clearSelection()
		if n := m.reg.Count(); n > 0 {
			m.reg.SetCurrent((m.reg.CurrentIndex() + 1) % n)
		}
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	g, err := m.reg.Current()
	if err != nil {
		return
	}
	n := g.Board.Length()
	m.cursor = board.C(board.Clamp(m.cursor.X+dx, 0, n-1), board.Clamp(m.cursor.Y+dy, 0, n-1))
}

// activate selects the piece under the cursor, or plays the selected piece
// to the cursor when the cursor is on one of its legal destinations.
func (m *Model) activate() {
	g, err := m.reg.Current()
	if err != nil {
		m.appendLog(err.Error())
		return
	}

	if m.selected != nil {
		for _, t := range m.targets {
			if t == m.cursor {
				from := *m.selected
				m.clearSelection()
				m.play(from, t)
				return
			}
		}
	}

	p := g.Board.PieceAt(m.cursor)
	if p.IsNone() || p.Color != g.Board.Turn() {
		m.clearSelection()
		return
	}
	sel := m.cursor
	m.selected = &sel
	m.targets = g.Board.LegalDestinations(sel)
}

func (m *Model) play(from, to board.Coord) {
	before := len(m.reg.History())
	mv, err := m.reg.Move(from, to)
	if err != nil {
		m.appendLog(fmt.Sprintf("move failed: %v", err))
		return
	}
	m.appendLog(fmt.Sprintf("%s (%s)", mv, mv.UCI()))
	hist := m.reg.History()
	if len(hist) > before+1 {
		for _, line := range hist[before+1:] {
			m.appendLog(line)
		}
	}
}

func (m *Model) clearSelection() {
	m.selected = nil
	m.targets = nil
}

// execCommand runs line through the console command set. It returns false
// when the command asks to quit.
func (m *Model) execCommand(line string) bool {
	m.appendLog("> " + line)

	var out bytes.Buffer
	m.con.SetOutput(&out)
	keep := m.con.Execute(line)
	for _, ln := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if ln != "" {
			m.appendLog("  " + ln)
		}
	}
	m.clearSelection()
	return keep
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
}

// View draws the header, the board beside the log pane and the input line.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	modeStr := "NORMAL"
	if m.m == modeInput {
		modeStr = "INPUT"
	}

	g, err := m.reg.Current()
	var boardStr, status string
	if err != nil {
		boardStr = "no game (press n)"
		status = "-"
	} else {
		boardStr = RenderBoard(g.Board, boardView{
			cursor:   m.cursor,
			selected: m.selected,
			targets:  m.targets,
			flipped:  m.flipped,
		})
		status = statusLine(g)
	}

	header := titleStyle.Render(fmt.Sprintf("gridchess  game %d/%d  %s  mode:%s",
		m.reg.CurrentIndex()+1, m.reg.Count(), status, modeStr))

	boardBox := boxStyle.Render(boardStr)

	// Log pane beside the board
	logHeight := max(5, lipgloss.Height(boardBox)-2)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logWidth := max(20, m.width-lipgloss.Width(boardBox)-2)
	logBox := boxStyle.Width(logWidth).Height(logHeight).Render(logBody)

	// Input pane
	var inputLine string
	if m.m == modeInput {
		inputLine = m.input.View()
	} else {
		inputLine = "press i to enter command"
	}
	inputBox := boxStyle.Width(max(20, m.width-2)).Render(inputLine)

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, logBox)
	return header + "\n" + body + "\n" + inputBox + "\n"
}

func statusLine(g *session.Game) string {
	b := g.Board
	switch {
	case b.Finished():
		return fmt.Sprintf("%s wins", g.Winner())
	case b.InCheck(b.Turn()):
		return fmt.Sprintf("%s to move (check)", b.Turn())
	default:
		return fmt.Sprintf("%s to move", b.Turn())
	}
}
