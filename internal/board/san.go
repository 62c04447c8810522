package board

import (
	"fmt"
	"strings"
)

// ParseMove resolves a move typed by a player against the legal moves of the
// side to move. It accepts coordinate form ("e2e4"), castling ("0-0",
// "O-O-O") and short algebraic form with optional capture marker and
// disambiguation ("e4", "Nf3", "Nxe5", "Rad1", "exd5+").
func (b *Board) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Move{}, fmt.Errorf("%w: empty move", ErrIllegalMove)
	}

	legal := b.GenerateLegalMoves()

	// Handle castling
	switch s {
	case "O-O", "0-0":
		return pickCastle(legal, 2, s)
	case "O-O-O", "0-0-0":
		return pickCastle(legal, -2, s)
	}

	if from, to, ok := parseCoordinatePair(s); ok {
		for _, m := range legal {
			if m.From == from && m.To == to {
				return m, nil
			}
		}
		return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}

	// Remove check/checkmate markers
	s = strings.TrimRight(s, "+#")

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		p := PieceFromChar(s[0])
		if p.IsNone() {
			return Move{}, fmt.Errorf("%w: unknown piece %q", ErrIllegalMove, s[0])
		}
		pt = p.Type
		s = s[1:]
	}

	// The destination is the trailing file letter plus rank digits.
	split := len(s)
	for split > 0 && s[split-1] >= '0' && s[split-1] <= '9' {
		split--
	}
	if split == 0 || split == len(s) {
		return Move{}, fmt.Errorf("%w: no destination in %q", ErrIllegalMove, s)
	}
	dest, err := ParseCoord(s[split-1:])
	if err != nil {
		return Move{}, err
	}
	s = s[:split-1]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	if s != "" {
		if s[0] >= 'a' && s[0] <= 'z' {
			disambigFile = int(s[0] - 'a')
			s = s[1:]
		}
		if s != "" {
			var r int
			if _, err := fmt.Sscanf(s, "%d", &r); err == nil {
				disambigRank = r - 1
			}
		}
	}

	var found []Move
	for _, m := range legal {
		if m.To != dest || m.Piece.Type != pt {
			continue
		}
		if disambigFile >= 0 && m.From.X != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Y != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		found = append(found, m)
	}

	switch len(found) {
	case 0:
		return Move{}, fmt.Errorf("%w: no legal move matches %q", ErrIllegalMove, dest.String())
	case 1:
		return found[0], nil
	default:
		return Move{}, fmt.Errorf("%w: ambiguous move to %s", ErrIllegalMove, dest)
	}
}

func pickCastle(legal []Move, dir int, s string) (Move, error) {
	for _, m := range legal {
		if m.Castle == dir {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: cannot castle %s", ErrIllegalMove, s)
}

// parseCoordinatePair splits "e2e4" or "j10j9" into two coordinates.
func parseCoordinatePair(s string) (Coord, Coord, bool) {
	if len(s) < 4 || s[0] < 'a' || s[0] > 'z' {
		return Coord{}, Coord{}, false
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 1 || i == len(s) {
		return Coord{}, Coord{}, false
	}
	from, err := ParseCoord(s[:i])
	if err != nil {
		return Coord{}, Coord{}, false
	}
	to, err := ParseCoord(s[i:])
	if err != nil {
		return Coord{}, Coord{}, false
	}
	return from, to, true
}
