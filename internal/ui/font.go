package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	labelFontSize   = 11.0
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

func init() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// face returns a face of the given logical size, scaled for the display.
func face(bold bool, size float64) *text.GoTextFace {
	src := regularSource
	if bold {
		src = boldSource
	}
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size * UIScale}
}

// drawText draws s with its top-left corner at logical x, y.
func drawText(screen *ebiten.Image, s string, f *text.GoTextFace, x, y int, c color.Color) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)*UIScale, float64(y)*UIScale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, f, op)
}

// drawTextCentered draws s centered on logical cx, cy.
func drawTextCentered(screen *ebiten.Image, s string, f *text.GoTextFace, cx, cy int, c color.Color) {
	if f == nil {
		return
	}
	w, h := text.Measure(s, f, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx)*UIScale-w/2, float64(cy)*UIScale-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, f, op)
}
