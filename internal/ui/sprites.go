// Package ui implements the desktop board using Ebitengine.
package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/gridchess/internal/board"
)

// Piece outlines on a 45x45 canvas. %[1]s is the fill, %[2]s the stroke.
var pieceSVG = map[board.PieceType]string{
	board.Pawn: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<path d="M22.5 9 C19.5 9 17.5 11.5 17.5 14 C17.5 16 18.5 17.5 20 18.5 C17 20 15.5 23 15.5 26.5 C15.5 28 16 29 16.5 30 C13 32 11.5 35.5 11.5 38.5 L33.5 38.5 C33.5 35.5 32 32 28.5 30 C29 29 29.5 28 29.5 26.5 C29.5 23 28 20 25 18.5 C26.5 17.5 27.5 16 27.5 14 C27.5 11.5 25.5 9 22.5 9 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
</svg>`,
	board.Knight: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<path d="M22 10 C32.5 11 38.5 18 38 39 L15 39 C15 30 25 32.5 23 18 C20 21 19 24 16 25 C13 26 11 27 10 29 C8.5 28 8 26 9 24 C10 22 12 19 13 17 C14 15 15 13 16 12 L15 8 L19 10 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<circle cx="14" cy="20" r="1.2" fill="%[2]s"/>
</svg>`,
	board.Bishop: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<circle cx="22.5" cy="8" r="2.5" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<path d="M22.5 11 C17 15 15 20 15 24 C15 28 18 30 22.5 30 C27 30 30 28 30 24 C30 20 28 15 22.5 11 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<path d="M15 32 L30 32 L30 34 L15 34 Z M9 36 L36 36 L36 38.5 L9 38.5 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
</svg>`,
	board.Rook: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<path d="M11 9 L15 9 L15 12 L20 12 L20 9 L25 9 L25 12 L30 12 L30 9 L34 9 L34 15 L31 17 L31 30 L34 32 L34 35 L11 35 L11 32 L14 30 L14 17 L11 15 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<path d="M9 36 L36 36 L36 39 L9 39 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
</svg>`,
	board.Queen: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<path d="M9 26 L7 12 L14 23 L15 10 L20 22 L22.5 9 L25 22 L30 10 L31 23 L38 12 L36 26 C36 29 33 31 22.5 31 C12 31 9 29 9 26 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<path d="M11 33 L34 33 L35 38.5 L10 38.5 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
</svg>`,
	board.King: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<path d="M21.5 5 L23.5 5 L23.5 8 L26.5 8 L26.5 10 L23.5 10 L23.5 13 L21.5 13 L21.5 10 L18.5 10 L18.5 8 L21.5 8 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1"/>
<path d="M22.5 14 C27 14 29 18 29 20 C33 17 39 19 38 25 C37 29 33 31 32 32 L13 32 C12 31 8 29 7 25 C6 19 12 17 16 20 C16 18 18 14 22.5 14 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
<path d="M12 34 L33 34 L34 38.5 L11 38.5 Z" fill="%[1]s" stroke="%[2]s" stroke-width="1.5"/>
</svg>`,
}

// pieceFill holds fill and stroke per player color.
var pieceFill = map[board.Color][2]string{
	board.White: {"#ffffff", "#000000"},
	board.Black: {"#202020", "#e0e0e0"},
	board.Grey:  {"#9a9a9a", "#000000"},
	board.Red:   {"#d04040", "#000000"},
	board.Green: {"#40a060", "#000000"},
	board.Blue:  {"#4070d0", "#000000"},
}

type spriteKey struct {
	pt board.PieceType
	c  board.Color
}

// SpriteManager rasterizes piece sprites for one square size.
type SpriteManager struct {
	pieces      map[spriteKey]*ebiten.Image
	size        int
	renderScale float64 // render above display size for sharp downscaling
}

// NewSpriteManager creates a sprite manager for squares of the given size.
// Sprites are rasterized on first use.
func NewSpriteManager(size int) *SpriteManager {
	return &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
}

// Size returns the display size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}

// GetPiece returns the sprite for p, or nil for an empty square.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	if p.IsNone() {
		return nil
	}
	k := spriteKey{p.Type, p.Color}
	if img, ok := sm.pieces[k]; ok {
		return img
	}
	rgba, err := rasterizePiece(p.Type, p.Color, int(float64(sm.size)*sm.renderScale))
	if err != nil {
		log.Printf("Failed to render %s %s: %v", p.Color, p.Type, err)
		sm.pieces[k] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(rgba)
	sm.pieces[k] = img
	return img
}

// rasterizePiece renders the outline for pt in color c to a size×size image.
func rasterizePiece(pt board.PieceType, c board.Color, size int) (*image.RGBA, error) {
	tmpl, ok := pieceSVG[pt]
	if !ok {
		return nil, fmt.Errorf("no outline for %s", pt)
	}
	fill, ok := pieceFill[c]
	if !ok {
		return nil, fmt.Errorf("no fill for %s", c)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(fmt.Sprintf(tmpl, fill[0], fill[1])))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// DrawPieceAt draws p with its top-left corner at x, y.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := float64(sm.size) / float64(sprite.Bounds().Dx())
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
