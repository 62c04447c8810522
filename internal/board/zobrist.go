package board

import "sync"

// Zobrist keys are generated per board length from a fixed seed, so equal
// positions hash equally across runs.
type zobristKeys struct {
	piece [MaxPlayers][6][]uint64 // [Color][PieceType][x*length+y]
	moved []uint64               // XOR when the occupant of a square has moved
	turn  [MaxPlayers]uint64
}

var zobristCache sync.Map // int -> *zobristKeys

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func zobristFor(length int) *zobristKeys {
	if k, ok := zobristCache.Load(length); ok {
		return k.(*zobristKeys)
	}

	rng := &prng{state: 0x98F107A2BEEF1234 ^ uint64(length)}
	n := length * length
	k := &zobristKeys{moved: make([]uint64, n)}
	for c := range k.piece {
		for pt := range k.piece[c] {
			k.piece[c][pt] = make([]uint64, n)
			for i := range n {
				k.piece[c][pt][i] = rng.next()
			}
		}
	}
	for i := range n {
		k.moved[i] = rng.next()
	}
	for c := range k.turn {
		k.turn[c] = rng.next()
	}

	actual, _ := zobristCache.LoadOrStore(length, k)
	return actual.(*zobristKeys)
}

// Hash returns the Zobrist hash of the occupants, their moved flags and the
// side to move. Attack and check state is derived and not hashed.
func (b *Board) Hash() uint64 {
	keys := zobristFor(b.length)
	var h uint64
	for x := range b.squares {
		for y := range b.squares[x] {
			p := b.squares[x][y].piece
			if p.IsNone() {
				continue
			}
			i := x*b.length + y
			h ^= keys.piece[p.Color][p.Type][i]
			if p.HasMoved() {
				h ^= keys.moved[i]
			}
		}
	}
	return h ^ keys.turn[b.turn]
}
