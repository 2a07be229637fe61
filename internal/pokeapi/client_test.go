package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const pikachuJson = `{
	"id": 25,
	"name": "pikachu",
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp", "url": ""}},
		{"base_stat": 55, "stat": {"name": "attack", "url": ""}},
		{"base_stat": 40, "stat": {"name": "defense", "url": ""}},
		{"base_stat": 50, "stat": {"name": "special-attack", "url": ""}},
		{"base_stat": 50, "stat": {"name": "special-defense", "url": ""}},
		{"base_stat": 90, "stat": {"name": "speed", "url": ""}}
	],
	"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
	"moves": [
		{"move": {"name": "thunderbolt", "url": ""}},
		{"move": {"name": "thunder-wave", "url": ""}}
	]
}`

const thunderboltJson = `{
	"id": 85,
	"name": "thunderbolt",
	"power": 90,
	"accuracy": 100,
	"damage_class": {"name": "special", "url": ""},
	"type": {"name": "electric", "url": ""},
	"meta": {"ailment": {"name": "paralysis", "url": ""}, "ailment_chance": 10}
}`

const toxicJson = `{
	"id": 92,
	"name": "toxic",
	"power": null,
	"accuracy": 90,
	"damage_class": {"name": "status", "url": ""},
	"type": {"name": "poison", "url": ""},
	"meta": {"ailment": {"name": "poison", "url": ""}, "ailment_chance": 0}
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(pikachuJson))
	})
	mux.HandleFunc("/move/thunderbolt", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(thunderboltJson))
	})
	mux.HandleFunc("/move/toxic", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(toxicJson))
	})
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"count": 2, "results": [{"name": "bulbasaur", "url": ""}, {"name": "ivysaur", "url": ""}]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func testClient(t *testing.T) *Client {
	return NewClient(testServer(t).URL, time.Second, zerolog.Nop())
}

func TestGetPokemon(t *testing.T) {
	client := testClient(t)

	pokemon, err := client.GetPokemon(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("GetPokemon failed: %v", err)
	}

	if pokemon.Id != 25 || pokemon.Name != "pikachu" {
		t.Fatalf("unexpected record: %+v", pokemon)
	}
	if pokemon.BaseStats["speed"] != 90 || pokemon.BaseStats["hp"] != 35 {
		t.Fatalf("unexpected stats: %+v", pokemon.BaseStats)
	}
	if len(pokemon.Types) != 1 || pokemon.Types[0] != "electric" {
		t.Fatalf("unexpected types: %+v", pokemon.Types)
	}
	if len(pokemon.Moves) != 2 {
		t.Fatalf("unexpected moves: %+v", pokemon.Moves)
	}
}

func TestGetMoveFlattensNulls(t *testing.T) {
	client := testClient(t)

	thunderbolt, err := client.GetMove(context.Background(), "thunderbolt")
	if err != nil {
		t.Fatalf("GetMove failed: %v", err)
	}
	if thunderbolt.Power != 90 || thunderbolt.Accuracy != 100 {
		t.Fatalf("unexpected numbers: %+v", thunderbolt)
	}
	if thunderbolt.Ailment != "paralysis" || thunderbolt.AilmentChance != 10 {
		t.Fatalf("unexpected ailment: %+v", thunderbolt)
	}

	toxic, err := client.GetMove(context.Background(), "toxic")
	if err != nil {
		t.Fatalf("GetMove failed: %v", err)
	}
	if toxic.Power != 0 {
		t.Fatalf("null power should flatten to 0, got %d", toxic.Power)
	}
	if toxic.AilmentChance != 100 {
		t.Fatalf("status move with chance 0 should flatten to 100, got %d", toxic.AilmentChance)
	}
}

func TestGetPokemonNotFound(t *testing.T) {
	client := testClient(t)

	_, err := client.GetPokemon(context.Background(), "missingno")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListPokemon(t *testing.T) {
	client := testClient(t)

	names, err := client.ListPokemon(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("ListPokemon failed: %v", err)
	}
	if len(names) != 2 || names[0] != "bulbasaur" {
		t.Fatalf("unexpected names: %+v", names)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Pikachu":       "pikachu",
		" Thunder Wave": "thunder-wave",
		"mr. mime":      "mr.-mime",
		"toxic":         "toxic",
	}

	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q): got %q, want %q", in, got, want)
		}
	}
}
