package board

// Square is one cell of the board. It owns at most one piece and carries
// the transient attack state recomputed after every move.
type Square struct {
	pos       Coord
	piece     Piece
	attacked  bool
	attackers ColorSet
}

func newSquare(pos Coord) Square {
	return Square{pos: pos, piece: NoPiece}
}

// Coord returns the square's board coordinate.
func (s *Square) Coord() Coord {
	return s.pos
}

// Piece returns the occupant, or NoPiece.
func (s *Square) Piece() Piece {
	return s.piece
}

// HasPiece reports whether the square is occupied.
func (s *Square) HasPiece() bool {
	return !s.piece.IsNone()
}

// put places p on the square and returns the previous occupant.
func (s *Square) put(p Piece) Piece {
	prev := s.piece
	s.piece = p
	return prev
}

// take removes and returns the occupant.
func (s *Square) take() Piece {
	return s.put(NoPiece)
}

// Attacked reports whether any piece currently attacks the square.
func (s *Square) Attacked() bool {
	return s.attacked
}

// AttackingColors returns the set of colors attacking the square.
func (s *Square) AttackingColors() ColorSet {
	return s.attackers
}

func (s *Square) clearAttack() {
	s.attacked = false
	s.attackers = 0
}

func (s *Square) markAttacked(by Color) {
	s.attacked = true
	s.attackers.Add(by)
}

// attackedByOther reports whether a color other than c attacks the square.
func (s *Square) attackedByOther(c Color) bool {
	return s.attacked && s.attackers.HasOtherThan(c)
}
