package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var fpsImage *ebiten.Image

// drawFPS overlays the current FPS and TPS in the top-left corner. Since
// frames are only drawn on demand, FPS reads low while the UI is idle.
func drawFPS(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	if fpsImage == nil {
		fpsImage = ebiten.NewImage(100, 32)
	}
	fpsImage.Clear()
	fpsImage.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(fpsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	screen.DrawImage(fpsImage, nil)
}
