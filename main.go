package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ketchup/prefabs"
	"github.com/milk9111/ketchup/round"
)

func main() {
	variant := flag.String("variant", "classic", "variant name in prefabs/variants ("+strings.Join(prefabs.VariantNames(), ", ")+")")
	seed := flag.Uint64("seed", 0, "spawn seed; 0 picks a fresh one")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload variants and scripts from prefabs/ when they change")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := round.LoadConfig(*variant)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	ebiten.SetWindowSize(int(cfg.FieldWidth), int(cfg.FieldHeight))
	ebiten.SetWindowTitle("ketchup")

	game, err := NewGame(cfg, GameOptions{
		Variant: *variant,
		Seed:    *seed,
		Debug:   *debug,
		Watch:   *watch,
		Mute:    *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
