package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Pursuit-Ring/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	var g *game.Game
	if seed != 0 {
		g = game.NewSeeded(seed)
	} else {
		g = game.New()
	}

	ebiten.SetWindowTitle("Pursuit Ring")
	ebiten.SetWindowSize(1328, 768)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
