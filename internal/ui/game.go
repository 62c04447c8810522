package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout().
var UIScale = 1.0

// Game implements ebiten.Game on top of a session registry.
type Game struct {
	reg *session.Registry

	// UI state
	selected *board.Coord
	targets  []board.Coord
	lastMove *board.Move

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	scale float64
}

// NewGame creates the desktop game. st may be nil, in which case
// preferences are not persisted.
func NewGame(reg *session.Registry, st *storage.Storage) *Game {
	g := &Game{
		reg:      reg,
		storage:  st,
		renderer: NewRenderer(BoardSize),
		input:    NewInputHandler(),
		scale:    1.0,
	}
	g.loadPreferences()
	g.panel = NewPanel(g)

	if reg.Count() == 0 {
		g.startGame(g.defaultMode())
	}
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}

	g.renderer.SetFlipped(g.prefs.FlipBoard)
	g.reg.SetStrictCastling(g.prefs.StrictCastling)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.FlipBoard = g.renderer.Flipped()
	g.prefs.LastPlayed = time.Now()
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func (g *Game) defaultMode() session.Mode {
	if g.prefs.ShuffleByDefault {
		return session.Shuffle
	}
	return session.Standard
}

// Update advances one frame.
func (g *Game) Update() error {
	g.input.Update()

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyS):
		g.ShuffleGameAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyTab):
		if n := g.reg.Count(); n > 0 {
			g.reg.SetCurrent((g.reg.CurrentIndex() + 1) % n)
			g.clearSelection()
			g.lastMove = nil
		}
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.clearSelection()
	}

	if g.panel.HandleInput(g.input) {
		return nil
	}
	g.handleBoardInput()

	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
	return nil
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	cur, err := g.reg.Current()
	if err == nil {
		g.renderer.DrawBoard(screen, cur.Board)
		g.renderer.DrawChecks(screen, cur.Board)
		g.renderer.DrawHighlights(screen, g.selected, g.targets, g.lastMove)
		g.renderer.DrawPieces(screen, cur.Board)
	}

	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	UIScale = g.scale
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput selects a piece on the first click and plays it on a
// second click at one of its legal destinations.
func (g *Game) handleBoardInput() {
	if !g.input.IsLeftJustPressed() {
		return
	}
	mx, my := g.input.MousePosition()
	if mx >= BoardSize || my >= BoardSize {
		return
	}

	cur, err := g.reg.Current()
	if err != nil || cur.Board.Finished() {
		return
	}
	b := cur.Board
	c := g.input.BoardCoord(b, BoardSize, g.renderer.Flipped())

	if g.selected != nil {
		for _, t := range g.targets {
			if t == c {
				g.makeMove(*g.selected, c)
				return
			}
		}
	}

	p := b.PieceAt(c)
	if !p.IsNone() && p.Color == b.Turn() {
		g.selected = &c
		g.targets = b.LegalDestinations(c)
		return
	}
	g.clearSelection()
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.targets = nil
}

func (g *Game) makeMove(from, to board.Coord) {
	g.clearSelection()
	m, err := g.reg.Move(from, to)
	if err != nil {
		log.Printf("[MOVE] %s%s rejected: %v", from, to, err)
		return
	}
	g.lastMove = &m
}

func (g *Game) startGame(mode session.Mode) {
	if _, err := g.reg.NewGame(mode); err != nil {
		log.Printf("Warning: Failed to start %s game: %v", mode, err)
		return
	}
	g.clearSelection()
	g.lastMove = nil
	g.panel.scrollY = 0
}

// NewGameAction opens a standard game.
func (g *Game) NewGameAction() {
	g.startGame(session.Standard)
}

// ShuffleGameAction opens a game with shuffled back ranks.
func (g *Game) ShuffleGameAction() {
	g.startGame(session.Shuffle)
}

// FlipAction turns the board around and remembers the choice.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// Close saves preferences. The caller owns the storage handle.
func (g *Game) Close() {
	g.savePreferences()
}
