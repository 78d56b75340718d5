// Board Touch - an interactive chessboard built with Ebitengine
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/boardtouch/internal/storage"
	"github.com/hailam/boardtouch/internal/ui"
)

func main() {
	fen := flag.String("fen", "", "start position (default: stored position or the standard start)")
	dataDir := flag.String("data", "", "directory for preferences (default: platform data dir)")
	mute := flag.Bool("mute", false, "disable sound effects")
	material := flag.String("material", "", "piece set: classic, marble, wood or neon")
	flag.Parse()

	set, err := storage.ParseMaterialSet(*material)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	game, err := ui.NewGame(ui.Options{
		Position: *fen,
		DataDir:  *dataDir,
		Mute:     *mute,
		Material: set,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Board Touch")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}
