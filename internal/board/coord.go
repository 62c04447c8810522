// Package board implements a square-grid chess rules engine: board state,
// offset-table move generation, attack maps, check/checkmate detection and
// move application including castling and capture bookkeeping.
package board

import (
	"fmt"
	"strconv"
)

// Coord is a file/rank pair. It is used both for absolute board positions
// and for relative move offsets.
// X is the file (0 = a), Y is the rank (0 = rank 1).
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{x, y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the component-wise sum.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y}
}

// Sub returns the component-wise difference.
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y}
}

// Scale multiplies both components by k.
func (c Coord) Scale(k int) Coord {
	return Coord{c.X * k, c.Y * k}
}

// Step returns the offset one square further out along the same ray.
// Zero components stay zero.
func (c Coord) Step() Coord {
	return Coord{c.X + sign(c.X), c.Y + sign(c.Y)}
}

// SameRay reports whether candidate lies on the same axis or diagonal
// quadrant as c and is at least as far out on every non-zero axis.
// A blocked offset c therefore rules out itself and everything behind it.
func (c Coord) SameRay(candidate Coord) bool {
	a, b := c, candidate

	// Horizontal axis
	if a.Y == 0 && b.Y == 0 {
		if a.X > 0 && b.X > 0 {
			return b.X >= a.X
		}
		if a.X < 0 && b.X < 0 {
			return b.X <= a.X
		}
	}

	// Vertical axis
	if a.X == 0 && b.X == 0 {
		if a.Y > 0 && b.Y > 0 {
			return b.Y >= a.Y
		}
		if a.Y < 0 && b.Y < 0 {
			return b.Y <= a.Y
		}
	}

	// Diagonal quadrants
	if a.X == 0 || a.Y == 0 || b.X == 0 || b.Y == 0 {
		return false
	}
	if sign(a.X) != sign(b.X) || sign(a.Y) != sign(b.Y) {
		return false
	}
	return abs(b.X) >= abs(a.X) && abs(b.Y) >= abs(a.Y)
}

// String returns algebraic notation ("e4") when the file fits a..z,
// otherwise a raw "(x,y)" pair.
func (c Coord) String() string {
	if c.X >= 0 && c.X < 26 && c.Y >= 0 {
		return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
	}
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ParseCoord parses algebraic notation such as "e4" or "j10".
func ParseCoord(s string) (Coord, error) {
	if len(s) < 2 {
		return Coord{}, fmt.Errorf("invalid square: %q", s)
	}
	file := int(s[0]) - 'a'
	if file < 0 || file >= 26 {
		return Coord{}, fmt.Errorf("invalid square: %q", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 {
		return Coord{}, fmt.Errorf("invalid square: %q", s)
	}
	return Coord{file, rank - 1}, nil
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(hi, max(v, lo))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
