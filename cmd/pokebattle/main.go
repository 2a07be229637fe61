// Command pokebattle runs one battle and steps through its log in the
// terminal, one record per keypress.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pokebattle/arena"
	"pokebattle/internal/cache"
	"pokebattle/internal/pokeapi"
	"pokebattle/internal/pokedex"
)

func main() {
	pokemon1 := flag.String("p1", "charizard", "first pokemon")
	pokemon2 := flag.String("p2", "blastoise", "second pokemon")
	moves1 := flag.String("p1-moves", "", "comma separated moves for the first pokemon")
	moves2 := flag.String("p2-moves", "", "comma separated moves for the second pokemon")
	level := flag.Uint("level", 50, "battle level")
	seed := flag.Uint64("seed", 0, "battle seed, 0 for random")
	policy := flag.String("policy", "max-damage", "move policy: first, random or max-damage")
	apiURL := flag.String("api", pokeapi.DefaultBaseURL, "pokeapi base url")
	cachePath := flag.String("cache", "pokebattle.db", "cache database path")
	flag.Parse()

	logger := zerolog.Nop()

	store, err := cache.Open(*cachePath, time.Hour, logger)
	if err != nil {
		fail("cache open failed: %v", err)
	}
	defer store.Close()

	client := pokeapi.NewClient(*apiURL, 15*time.Second, logger)
	dex := pokedex.NewService(client, store, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	first, err := dex.BattleSet(ctx, *pokemon1, splitMoves(*moves1))
	if err != nil {
		fail("%s: %v", *pokemon1, err)
	}
	second, err := dex.BattleSet(ctx, *pokemon2, splitMoves(*moves2))
	if err != nil {
		fail("%s: %v", *pokemon2, err)
	}

	pcgSeed := arena.CreateRandomSeed()
	if *seed != 0 {
		pcgSeed = arena.SeedFromUint64(*seed)
	}

	battle, err := arena.NewBattle(first, second, *level, pcgSeed)
	if err != nil {
		fail("battle setup failed: %v", err)
	}
	battle.SetSelector(arena.SelectorByName(*policy))

	combatants := battle.Combatants()
	result := battle.Run()

	if _, err := tea.NewProgram(newViewer(combatants, result), tea.WithAltScreen()).Run(); err != nil {
		fail("tui failed: %v", err)
	}
}

func splitMoves(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	moves := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			moves = append(moves, trimmed)
		}
	}

	return moves
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
