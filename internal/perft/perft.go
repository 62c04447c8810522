// Package perft counts move-tree leaves in parallel, splitting the work at
// the root and sharing a hash table of subtree counts between workers.
package perft

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/gridchess/internal/board"
)

// Split is the leaf count below one root move.
type Split struct {
	Move  board.Move
	Nodes int64
}

// Result is the outcome of a divided perft run.
type Result struct {
	Nodes  int64
	Splits []Split // in UCI order of the root moves
}

// Options configures a run. The zero value uses one worker per CPU and no
// table.
type Options struct {
	Workers int
	Table   *Table
}

// Divide counts leaves to depth below b, reporting the count per root move.
// b is not modified. It stops early with ctx.Err() when ctx is cancelled.
func Divide(ctx context.Context, b *board.Board, depth int, opts Options) (Result, error) {
	if depth <= 0 {
		return Result{Nodes: 1}, nil
	}

	roots := b.GenerateLegalMoves()
	slices.SortFunc(roots, func(x, y board.Move) bool {
		return strings.Compare(x.UCI(), y.UCI()) < 0
	})
	splits := make([]Split, len(roots))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range roots {
		g.Go(func() error {
			child := b.Clone()
			play(child, m)
			n, err := count(ctx, child, depth-1, opts.Table)
			splits[i] = Split{Move: m, Nodes: n}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Splits: splits}
	for _, s := range splits {
		res.Nodes += s.Nodes
	}
	return res, nil
}

// Count is Divide without the per-move breakdown.
func Count(ctx context.Context, b *board.Board, depth int, opts Options) (int64, error) {
	res, err := Divide(ctx, b, depth, opts)
	return res.Nodes, err
}

func play(b *board.Board, m board.Move) {
	if m.IsCastling() {
		b.CastleMove(m.From, m.Castle)
		return
	}
	b.ApplyMove(m.From, m.To)
}

func count(ctx context.Context, b *board.Board, depth int, tt *Table) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var hash uint64
	if tt != nil {
		hash = b.Hash()
		if n, ok := tt.Probe(hash, depth); ok {
			return n, nil
		}
	}

	moves := b.GenerateLegalMoves()
	var nodes int64
	if depth == 1 {
		nodes = int64(len(moves))
	} else {
		for _, m := range moves {
			child := b.Clone()
			play(child, m)
			n, err := count(ctx, child, depth-1, tt)
			if err != nil {
				return 0, err
			}
			nodes += n
		}
	}

	if tt != nil {
		tt.Store(hash, depth, nodes)
	}
	return nodes, nil
}
