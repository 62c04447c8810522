// Package console implements a line-oriented text protocol for playing and
// inspecting games held by a session registry.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/perft"
	"github.com/hailam/gridchess/internal/session"
)

// GameLister lists saved games. *storage.Storage satisfies it.
type GameLister interface {
	ListGames() ([]session.GameRecord, error)
}

// Console drives a registry from text commands.
type Console struct {
	reg   *session.Registry
	saved GameLister // may be nil
	out   io.Writer
	table *perft.Table // created by the first perft
}

// New creates a console for reg. saved may be nil.
func New(reg *session.Registry, saved GameLister) *Console {
	return &Console{reg: reg, saved: saved, out: io.Discard}
}

// SetOutput directs replies of subsequent Execute calls to w.
func (c *Console) SetOutput(w io.Writer) {
	c.out = w
}

// Run reads commands from in until "quit" or end of input, writing replies
// to out.
func (c *Console) Run(in io.Reader, out io.Writer) error {
	c.SetOutput(out)
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.Execute(line) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns false once the console
// should stop.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		c.handleHelp()
	case "new":
		err = c.handleNew(session.Standard, nil)
	case "shuffle":
		err = c.handleNew(session.Shuffle, args)
	case "position":
		err = c.handlePosition(args)
	case "legal":
		err = c.handleLegal(args)
	case "move":
		err = c.handleMove(args)
	case "castle":
		err = c.handleCastle(args)
	case "d":
		err = c.handleDisplay()
	case "checks":
		err = c.handleChecks()
	case "captures":
		err = c.handleCaptures()
	case "history":
		for _, h := range c.reg.History() {
			fmt.Fprintln(c.out, h)
		}
	case "perft":
		err = c.handlePerft(args, false)
	case "divide":
		err = c.handlePerft(args, true)
	case "games":
		err = c.handleGames()
	case "select":
		err = c.handleSelect(args)
	case "resume":
		err = c.handleResume(args)
	case "end":
		err = c.handleEnd(args)
	default:
		// A bare move such as "e2e4" or "Nf3".
		err = c.handleMove(parts)
	}

	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
	return true
}

func (c *Console) handleHelp() {
	fmt.Fprintln(c.out, "commands:")
	for _, h := range []string{
		"new                      start a standard game",
		"shuffle [seed]           start a game with shuffled back ranks",
		"position startpos|fen <fen> [moves ...]",
		"legal <square>           list legal destinations",
		"move <from> <to>         play a move (or type e2e4 / Nf3 directly)",
		"castle <king> <+2|-2>    castle the king on the given square",
		"d                        show the board",
		"checks                   show kings in check and checkmate",
		"captures                 show captured pieces and scores",
		"history                  show the move history",
		"perft [depth]            count leaf nodes",
		"divide [depth]           count leaf nodes per root move",
		"games                    list open and saved games",
		"select <n>               make game n current",
		"resume <id>              reopen a saved game",
		"end [n]                  close game n (default: current)",
		"quit",
	} {
		fmt.Fprintln(c.out, "  "+h)
	}
}

func (c *Console) handleNew(mode session.Mode, args []string) error {
	if len(args) > 0 {
		seed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", args[0], err)
		}
		c.reg.SetSeed(seed)
	}
	idx, err := c.reg.NewGame(mode)
	if err != nil {
		return err
	}
	return c.announce(idx)
}

func (c *Console) announce(idx int) error {
	g, err := c.reg.Get(idx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "game %d %s %s\n", idx, g.ID, g.Mode)
	return nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	// Find "moves" keyword
	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	var idx int
	var err error
	switch args[0] {
	case "startpos":
		idx, err = c.reg.NewGame(session.Standard)
	case "fen":
		idx, err = c.reg.NewGameFromFEN(strings.Join(args[1:fenEnd], " "))
	default:
		return fmt.Errorf("unknown position type %q", args[0])
	}
	if err != nil {
		return err
	}

	for _, s := range args[moveStart:] {
		if _, err := c.reg.MoveString(s); err != nil {
			return fmt.Errorf("move %s: %w", s, err)
		}
	}
	return c.announce(idx)
}

func (c *Console) handleLegal(args []string) error {
	g, err := c.reg.Current()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		var all []string
		for _, m := range g.Board.GenerateLegalMoves() {
			all = append(all, m.UCI())
		}
		fmt.Fprintln(c.out, strings.Join(all, " "))
		return nil
	}

	from, err := board.ParseCoord(args[0])
	if err != nil {
		return err
	}
	var dests []string
	for _, to := range g.Board.LegalDestinations(from) {
		dests = append(dests, to.String())
	}
	fmt.Fprintf(c.out, "%s: %s\n", from, strings.Join(dests, " "))
	return nil
}

func (c *Console) handleMove(args []string) error {
	var (
		m   board.Move
		err error
	)
	switch len(args) {
	case 1:
		m, err = c.reg.MoveString(args[0])
	case 2:
		from, ferr := board.ParseCoord(args[0])
		to, terr := board.ParseCoord(args[1])
		if err = errors.Join(ferr, terr); err != nil {
			return err
		}
		m, err = c.reg.Move(from, to)
	default:
		return fmt.Errorf("unknown command %q", strings.Join(args, " "))
	}
	if err != nil {
		return err
	}
	c.reportMove(m)
	return nil
}

func (c *Console) handleCastle(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: castle <king-square> <+2|-2>")
	}
	from, err := board.ParseCoord(args[0])
	if err != nil {
		return err
	}
	dir, err := strconv.Atoi(args[1])
	if err != nil || (dir != 2 && dir != -2) {
		return fmt.Errorf("castling direction must be +2 or -2, got %q", args[1])
	}
	m, err := c.reg.Move(from, from.Add(board.C(dir, 0)))
	if err != nil {
		return err
	}
	c.reportMove(m)
	return nil
}

func (c *Console) reportMove(m board.Move) {
	suffix := ""
	switch {
	case m.Mate:
		suffix = " mate"
	case m.Check:
		suffix = " check"
	}
	fmt.Fprintf(c.out, "played %s (%s)%s\n", m, m.UCI(), suffix)
}

func (c *Console) handleDisplay() error {
	g, err := c.reg.Current()
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, g.Board.String())
	fmt.Fprintf(c.out, "Fen: %s\n", g.Board.FEN())
	fmt.Fprintf(c.out, "Key: %016X\n", g.Board.Hash())
	return nil
}

func (c *Console) handleChecks() error {
	g, err := c.reg.Current()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "check: %s\n", colorList(g.Board.KingsInCheck()))
	fmt.Fprintf(c.out, "checkmate: %s\n", colorList(g.Board.KingsInCheckmate()))
	return nil
}

func colorList(cs []board.Color) string {
	if len(cs) == 0 {
		return "-"
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}

func (c *Console) handleCaptures() error {
	g, err := c.reg.Current()
	if err != nil {
		return err
	}
	for _, col := range []board.Color{board.White, board.Black} {
		taken := g.Board.Captured(col)
		list := strings.Join(taken, " ")
		if list == "" {
			list = "-"
		}
		fmt.Fprintf(c.out, "%s: %s (score %d)\n", col, list, g.Board.Score(col))
	}
	return nil
}

// handlePerft runs a perft test on the current game.
func (c *Console) handlePerft(args []string, divide bool) error {
	g, err := c.reg.Current()
	if err != nil {
		return err
	}
	depth := 3
	if len(args) > 0 {
		if depth, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid depth %q", args[0])
		}
	}

	if c.table == nil {
		c.table = perft.NewTable(16)
	}
	start := time.Now()
	res, err := perft.Divide(context.Background(), g.Board, depth, perft.Options{Table: c.table})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if divide {
		for _, s := range res.Splits {
			fmt.Fprintf(c.out, "%s: %d\n", s.Move.UCI(), s.Nodes)
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintf(c.out, "Nodes: %d\n", res.Nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(res.Nodes) / elapsed.Seconds()
		fmt.Fprintf(c.out, "NPS: %.0f\n", nps)
	}
	return nil
}

func (c *Console) handleGames() error {
	current := c.reg.CurrentIndex()
	for i, g := range c.reg.Games() {
		marker := " "
		if i == current {
			marker = "*"
		}
		state := "playing"
		if g.Board.Finished() {
			state = "finished"
		}
		fmt.Fprintf(c.out, "%s %d %s %s %d moves %s\n", marker, i, g.ID, g.Mode, len(g.Moves()), state)
	}

	if c.saved == nil {
		return nil
	}
	recs, err := c.saved.ListGames()
	if err != nil {
		return err
	}
	if len(recs) > 0 {
		fmt.Fprintln(c.out, "saved:")
	}
	for _, rec := range recs {
		result := rec.Result
		if result == "" {
			result = "*"
		}
		fmt.Fprintf(c.out, "  %s %s %d moves %s %s\n", rec.ID, rec.Mode, len(rec.Steps), result,
			rec.Updated.Format(time.DateTime))
	}
	return nil
}

func (c *Console) handleSelect(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid game number %q", args[0])
	}
	idx := c.reg.SetCurrent(n)
	if idx < 0 {
		return session.ErrNoGame
	}
	return c.announce(idx)
}

func (c *Console) handleResume(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: resume <id>")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", args[0], err)
	}
	idx, err := c.reg.Resume(id)
	if err != nil {
		return err
	}
	return c.announce(idx)
}

func (c *Console) handleEnd(args []string) error {
	idx := c.reg.CurrentIndex()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid game number %q", args[0])
		}
		idx = n
	}
	if err := c.reg.End(idx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "ended game %d\n", idx)
	return nil
}
