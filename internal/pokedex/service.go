// Package pokedex turns raw PokeAPI records into battle-ready arena types.
// It sits between the transport layers and the pokeapi client, caching
// every fetch and validating that what came over the wire can actually
// fight.
package pokedex

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pokebattle/arena"
	"pokebattle/internal/cache"
	"pokebattle/internal/pokeapi"
)

// ErrUnusableSpecies marks a species whose data cannot produce a legal
// combatant, e.g. no damaging or status move among its candidates.
var ErrUnusableSpecies = errors.New("pokedex: species has no usable moves")

// moveCandidateLimit bounds how many learnable moves get fetched when
// picking a battle set automatically. PokeAPI lists hundreds per species.
const moveCandidateLimit = 12

const (
	pokemonTTL = time.Hour
	moveTTL    = time.Hour
)

var titleCaser = cases.Title(language.English)

// fetcher is the slice of the pokeapi client this service needs.
type fetcher interface {
	GetPokemon(ctx context.Context, name string) (pokeapi.Pokemon, error)
	GetMove(ctx context.Context, name string) (pokeapi.MoveData, error)
	ListPokemon(ctx context.Context, limit int, offset int) ([]string, error)
}

type Service struct {
	client fetcher
	store  *cache.Store
	logger zerolog.Logger
}

func NewService(client fetcher, store *cache.Store, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger.With().Str("component", "pokedex").Logger(),
	}
}

// Pokemon fetches the flattened species record, cache first.
func (s *Service) Pokemon(ctx context.Context, name string) (pokeapi.Pokemon, error) {
	key := "pokemon:" + pokeapi.NormalizeName(name)

	var cached pokeapi.Pokemon
	if found, err := s.store.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through to api")
	}

	pokemon, err := s.client.GetPokemon(ctx, name)
	if err != nil {
		return pokeapi.Pokemon{}, err
	}

	if err := s.store.Set(ctx, key, pokemon, pokemonTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return pokemon, nil
}

// Move fetches one flattened move record, cache first.
func (s *Service) Move(ctx context.Context, name string) (pokeapi.MoveData, error) {
	key := "move:" + pokeapi.NormalizeName(name)

	var cached pokeapi.MoveData
	if found, err := s.store.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through to api")
	}

	move, err := s.client.GetMove(ctx, name)
	if err != nil {
		return pokeapi.MoveData{}, err
	}

	if err := s.store.Set(ctx, key, move, moveTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return move, nil
}

// ListPokemon pages the species index straight through to the client.
func (s *Service) ListPokemon(ctx context.Context, limit int, offset int) ([]string, error) {
	return s.client.ListPokemon(ctx, limit, offset)
}

// Species converts a PokeAPI record into battle reference data.
func (s *Service) Species(ctx context.Context, name string) (*arena.Species, error) {
	pokemon, err := s.Pokemon(ctx, name)
	if err != nil {
		return nil, err
	}

	return speciesFromRecord(pokemon)
}

func speciesFromRecord(pokemon pokeapi.Pokemon) (*arena.Species, error) {
	if len(pokemon.Types) == 0 {
		return nil, fmt.Errorf("pokedex: species %q has no types", pokemon.Name)
	}

	type1, ok := arena.TYPE_MAP[titleCaser.String(pokemon.Types[0])]
	if !ok {
		return nil, fmt.Errorf("pokedex: species %q has unknown type %q", pokemon.Name, pokemon.Types[0])
	}

	var type2 *arena.PokemonType
	if len(pokemon.Types) > 1 {
		type2, ok = arena.TYPE_MAP[titleCaser.String(pokemon.Types[1])]
		if !ok {
			return nil, fmt.Errorf("pokedex: species %q has unknown type %q", pokemon.Name, pokemon.Types[1])
		}
	}

	return &arena.Species{
		Name:  pokemon.Name,
		Type1: type1,
		Type2: type2,
		Stats: arena.StatBlock{
			Hp:       uint(pokemon.BaseStats["hp"]),
			Attack:   uint(pokemon.BaseStats["attack"]),
			Def:      uint(pokemon.BaseStats["defense"]),
			SpAttack: uint(pokemon.BaseStats["special-attack"]),
			SpDef:    uint(pokemon.BaseStats["special-defense"]),
			Speed:    uint(pokemon.BaseStats["speed"]),
		},
	}, nil
}

// BattleMove converts a flattened move into engine form. Moves whose
// damage class the engine doesn't model come back as errors.
func BattleMove(move pokeapi.MoveData) (arena.Move, error) {
	switch move.DamageClass {
	case arena.DAMAGETYPE_PHYSICAL, arena.DAMAGETYPE_SPECIAL, arena.DAMAGETYPE_STATUS:
	default:
		return arena.Move{}, fmt.Errorf("pokedex: move %q has unsupported damage class %q", move.Name, move.DamageClass)
	}

	power := move.Power
	if move.DamageClass == arena.DAMAGETYPE_STATUS {
		power = 0
	}

	return arena.Move{
		Name:        move.Name,
		Type:        titleCaser.String(move.Type),
		Power:       power,
		DamageClass: move.DamageClass,
		Accuracy:    move.Accuracy,
		Ailment: arena.Ailment{
			Condition: arena.StatusFromAilment(move.Ailment),
			Chance:    move.AilmentChance,
		},
	}, nil
}

// BattleSet assembles a validated combatant spec for one species. Explicit
// move names win; otherwise the strongest two of the species' first few
// learnable moves are picked, falling back to a status move when nothing
// does damage.
func (s *Service) BattleSet(ctx context.Context, name string, moveNames []string) (arena.CombatantSpec, error) {
	pokemon, err := s.Pokemon(ctx, name)
	if err != nil {
		return arena.CombatantSpec{}, err
	}

	species, err := speciesFromRecord(pokemon)
	if err != nil {
		return arena.CombatantSpec{}, err
	}

	var moves []arena.Move
	if len(moveNames) > 0 {
		moves, err = s.explicitMoves(ctx, moveNames)
	} else {
		moves, err = s.autoMoves(ctx, pokemon)
	}
	if err != nil {
		return arena.CombatantSpec{}, err
	}

	return arena.CombatantSpec{Species: species, Moves: moves}, nil
}

func (s *Service) explicitMoves(ctx context.Context, names []string) ([]arena.Move, error) {
	if len(names) > 2 {
		return nil, fmt.Errorf("pokedex: %d moves requested, max is 2", len(names))
	}

	moves := make([]arena.Move, 0, len(names))
	for _, name := range names {
		data, err := s.Move(ctx, name)
		if err != nil {
			return nil, err
		}

		move, err := BattleMove(data)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

func (s *Service) autoMoves(ctx context.Context, pokemon pokeapi.Pokemon) ([]arena.Move, error) {
	candidates := pokemon.Moves
	if len(candidates) > moveCandidateLimit {
		candidates = candidates[:moveCandidateLimit]
	}

	var usable []arena.Move
	for _, name := range candidates {
		data, err := s.Move(ctx, name)
		if err != nil {
			if errors.Is(err, pokeapi.ErrNotFound) {
				continue
			}
			return nil, err
		}

		move, err := BattleMove(data)
		if err != nil {
			continue
		}
		usable = append(usable, move)
	}

	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnusableSpecies, pokemon.Name)
	}

	// damaging moves first, strongest first; status moves fill the second
	// slot only when the species has nothing better
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Power > usable[j].Power
	})

	damaging := lo.Filter(usable, func(move arena.Move, _ int) bool {
		return move.Power > 0
	})

	switch {
	case len(damaging) >= 2:
		return damaging[:2], nil
	case len(damaging) == 1 && len(usable) >= 2:
		return []arena.Move{damaging[0], usable[len(usable)-1]}, nil
	default:
		if len(usable) > 2 {
			usable = usable[:2]
		}
		return usable, nil
	}
}
