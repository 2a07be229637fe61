package arena

import (
	"math"
	"math/rand/v2"
)

// lowSource and highSource pin every draw to the bottom or top of its
// range: lowSource forces crits (Float64 == 0) and the 0.85 spread,
// highSource forces no crit, the 1.00 spread, and a 100 accuracy roll.
type lowSource struct{}

func (lowSource) Uint64() uint64 {
	return 0
}

type highSource struct{}

func (highSource) Uint64() uint64 {
	return math.MaxUint64
}

func lowRng() *rand.Rand {
	return rand.New(lowSource{})
}

func highRng() *rand.Rand {
	return rand.New(highSource{})
}

func charizardSpecies() *Species {
	return &Species{
		Name:  "charizard",
		Type1: &TYPE_FIRE,
		Type2: &TYPE_FLYING,
		Stats: StatBlock{Hp: 78, Attack: 84, Def: 78, SpAttack: 109, SpDef: 85, Speed: 100},
	}
}

func blastoiseSpecies() *Species {
	return &Species{
		Name:  "blastoise",
		Type1: &TYPE_WATER,
		Stats: StatBlock{Hp: 79, Attack: 83, Def: 100, SpAttack: 85, SpDef: 105, Speed: 78},
	}
}

// dummySpecies is a plain Normal-type with uniform stats, handy when a test
// only cares about one mechanic.
func dummySpecies(name string) *Species {
	return &Species{
		Name:  name,
		Type1: &TYPE_NORMAL,
		Stats: StatBlock{Hp: 80, Attack: 80, Def: 80, SpAttack: 80, SpDef: 80, Speed: 80},
	}
}

func surfMove() Move {
	return Move{Name: "surf", Type: TYPENAME_WATER, Power: 90, DamageClass: DAMAGETYPE_SPECIAL, Accuracy: 100}
}

func tackleMove() Move {
	return Move{Name: "tackle", Type: TYPENAME_NORMAL, Power: 40, DamageClass: DAMAGETYPE_PHYSICAL, Accuracy: 100}
}

func earthquakeMove() Move {
	return Move{Name: "earthquake", Type: TYPENAME_GROUND, Power: 100, DamageClass: DAMAGETYPE_PHYSICAL, Accuracy: 100}
}

func toxicMove() Move {
	return Move{
		Name:        "toxic",
		Type:        TYPENAME_POISON,
		Power:       0,
		DamageClass: DAMAGETYPE_STATUS,
		Accuracy:    0, // always hits in this model
		Ailment:     Ailment{Condition: STATUS_POISON, Chance: 100},
	}
}

func testCombatant(species *Species, level uint, moves ...Move) Combatant {
	return newCombatant(species, moves, level)
}
