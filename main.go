// GridChess - a square-grid chess board built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
	"github.com/hailam/gridchess/internal/ui"
)

var seed = flag.Int64("seed", 0, "seed for shuffled layouts (0: random)")

func main() {
	flag.Parse()

	var store session.Store
	st, err := storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	} else {
		defer st.Close()
		store = st
	}

	reg := session.NewRegistry(store)
	if *seed != 0 {
		reg.SetSeed(*seed)
	}

	game := ui.NewGame(reg, st)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("GridChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
