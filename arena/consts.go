package arena

const (
	MIN_LEVEL = 1
	MAX_LEVEL = 100

	// MAX_BATTLE_TURNS is the hard cap before a battle is called as a draw.
	// Two walls with status moves only could otherwise stall forever.
	MAX_BATTLE_TURNS = 100
)

const (
	DAMAGETYPE_PHYSICAL = "physical"
	DAMAGETYPE_SPECIAL  = "special"
	DAMAGETYPE_STATUS   = "status"
)

const (
	TYPENAME_NORMAL   = "Normal"
	TYPENAME_FIRE     = "Fire"
	TYPENAME_WATER    = "Water"
	TYPENAME_ELECTRIC = "Electric"
	TYPENAME_GRASS    = "Grass"
	TYPENAME_ICE      = "Ice"
	TYPENAME_FIGHTING = "Fighting"
	TYPENAME_POISON   = "Poison"
	TYPENAME_GROUND   = "Ground"
	TYPENAME_FLYING   = "Flying"
	TYPENAME_PSYCHIC  = "Psychic"
	TYPENAME_BUG      = "Bug"
	TYPENAME_ROCK     = "Rock"
	TYPENAME_GHOST    = "Ghost"
	TYPENAME_DRAGON   = "Dragon"
	TYPENAME_DARK     = "Dark"
	TYPENAME_STEEL    = "Steel"
	TYPENAME_FAIRY    = "Fairy"
)

// critChance is the base critical hit rate. No high-crit moves here.
const critChance = 1.0 / 24.0

var TYPE_MAP = map[string]*PokemonType{
	TYPENAME_NORMAL:   &TYPE_NORMAL,
	TYPENAME_FIRE:     &TYPE_FIRE,
	TYPENAME_WATER:    &TYPE_WATER,
	TYPENAME_ELECTRIC: &TYPE_ELECTRIC,
	TYPENAME_GRASS:    &TYPE_GRASS,
	TYPENAME_ICE:      &TYPE_ICE,
	TYPENAME_FIGHTING: &TYPE_FIGHTING,
	TYPENAME_POISON:   &TYPE_POISON,
	TYPENAME_GROUND:   &TYPE_GROUND,
	TYPENAME_FLYING:   &TYPE_FLYING,
	TYPENAME_PSYCHIC:  &TYPE_PSYCHIC,
	TYPENAME_BUG:      &TYPE_BUG,
	TYPENAME_ROCK:     &TYPE_ROCK,
	TYPENAME_GHOST:    &TYPE_GHOST,
	TYPENAME_DRAGON:   &TYPE_DRAGON,
	TYPENAME_DARK:     &TYPE_DARK,
	TYPENAME_STEEL:    &TYPE_STEEL,
	TYPENAME_FAIRY:    &TYPE_FAIRY,
}

// Every type only lists its exceptions; a missing pair reads as 1x.
// That default lives in AttackEffectiveness, not in these tables.

var TYPE_NORMAL = PokemonType{
	TYPENAME_NORMAL,
	map[string]float64{
		TYPENAME_ROCK:  0.5,
		TYPENAME_STEEL: 0.5,

		TYPENAME_GHOST: 0,
	},
}

var TYPE_FIRE = PokemonType{
	TYPENAME_FIRE,
	map[string]float64{
		TYPENAME_GRASS: 2,
		TYPENAME_ICE:   2,
		TYPENAME_BUG:   2,
		TYPENAME_STEEL: 2,

		TYPENAME_FIRE:   .5,
		TYPENAME_WATER:  .5,
		TYPENAME_ROCK:   .5,
		TYPENAME_DRAGON: .5,
	},
}

var TYPE_WATER = PokemonType{
	TYPENAME_WATER,
	map[string]float64{
		TYPENAME_FIRE:   2,
		TYPENAME_GROUND: 2,
		TYPENAME_ROCK:   2,

		TYPENAME_WATER:  .5,
		TYPENAME_GRASS:  .5,
		TYPENAME_DRAGON: .5,
	},
}

var TYPE_ELECTRIC = PokemonType{
	TYPENAME_ELECTRIC,
	map[string]float64{
		TYPENAME_WATER:  2,
		TYPENAME_FLYING: 2,

		TYPENAME_ELECTRIC: .5,
		TYPENAME_GRASS:    .5,
		TYPENAME_DRAGON:   .5,

		TYPENAME_GROUND: 0,
	},
}

var TYPE_GRASS = PokemonType{
	TYPENAME_GRASS,
	map[string]float64{
		TYPENAME_WATER:  2,
		TYPENAME_GROUND: 2,
		TYPENAME_ROCK:   2,

		TYPENAME_FIRE:   .5,
		TYPENAME_GRASS:  .5,
		TYPENAME_POISON: .5,
		TYPENAME_FLYING: .5,
		TYPENAME_BUG:    .5,
		TYPENAME_DRAGON: .5,
		TYPENAME_STEEL:  .5,
	},
}

var TYPE_ICE = PokemonType{
	TYPENAME_ICE,
	map[string]float64{
		TYPENAME_GRASS:  2,
		TYPENAME_GROUND: 2,
		TYPENAME_FLYING: 2,
		TYPENAME_DRAGON: 2,

		TYPENAME_FIRE:  .5,
		TYPENAME_WATER: .5,
		TYPENAME_ICE:   .5,
		TYPENAME_STEEL: .5,
	},
}

var TYPE_FIGHTING = PokemonType{
	TYPENAME_FIGHTING,
	map[string]float64{
		TYPENAME_NORMAL: 2,
		TYPENAME_ICE:    2,
		TYPENAME_ROCK:   2,
		TYPENAME_DARK:   2,
		TYPENAME_STEEL:  2,

		TYPENAME_POISON:  .5,
		TYPENAME_FLYING:  .5,
		TYPENAME_PSYCHIC: .5,
		TYPENAME_BUG:     .5,
		TYPENAME_FAIRY:   .5,

		TYPENAME_GHOST: 0,
	},
}

var TYPE_POISON = PokemonType{
	TYPENAME_POISON,
	map[string]float64{
		TYPENAME_GRASS: 2,
		TYPENAME_FAIRY: 2,

		TYPENAME_POISON: .5,
		TYPENAME_GROUND: .5,
		TYPENAME_ROCK:   .5,
		TYPENAME_GHOST:  .5,

		TYPENAME_STEEL: 0,
	},
}

var TYPE_GROUND = PokemonType{
	TYPENAME_GROUND,
	map[string]float64{
		TYPENAME_FIRE:     2,
		TYPENAME_ELECTRIC: 2,
		TYPENAME_POISON:   2,
		TYPENAME_ROCK:     2,
		TYPENAME_STEEL:    2,

		TYPENAME_GRASS: .5,
		TYPENAME_BUG:   .5,

		TYPENAME_FLYING: 0,
	},
}

var TYPE_FLYING = PokemonType{
	TYPENAME_FLYING,
	map[string]float64{
		TYPENAME_GRASS:    2,
		TYPENAME_FIGHTING: 2,
		TYPENAME_BUG:      2,

		TYPENAME_ELECTRIC: .5,
		TYPENAME_ROCK:     .5,
		TYPENAME_STEEL:    .5,
	},
}

var TYPE_PSYCHIC = PokemonType{
	TYPENAME_PSYCHIC,
	map[string]float64{
		TYPENAME_FIGHTING: 2,
		TYPENAME_POISON:   2,

		TYPENAME_PSYCHIC: .5,
		TYPENAME_STEEL:   .5,

		TYPENAME_DARK: 0,
	},
}

var TYPE_BUG = PokemonType{
	TYPENAME_BUG,
	map[string]float64{
		TYPENAME_GRASS:   2,
		TYPENAME_PSYCHIC: 2,
		TYPENAME_DARK:    2,

		TYPENAME_FIRE:     .5,
		TYPENAME_FIGHTING: .5,
		TYPENAME_POISON:   .5,
		TYPENAME_FLYING:   .5,
		TYPENAME_GHOST:    .5,
		TYPENAME_STEEL:    .5,
		TYPENAME_FAIRY:    .5,
	},
}

var TYPE_ROCK = PokemonType{
	TYPENAME_ROCK,
	map[string]float64{
		TYPENAME_FIRE:   2,
		TYPENAME_ICE:    2,
		TYPENAME_FLYING: 2,
		TYPENAME_BUG:    2,

		TYPENAME_FIGHTING: .5,
		TYPENAME_GROUND:   .5,
		TYPENAME_STEEL:    .5,
	},
}

var TYPE_GHOST = PokemonType{
	TYPENAME_GHOST,
	map[string]float64{
		TYPENAME_PSYCHIC: 2,
		TYPENAME_GHOST:   2,

		TYPENAME_DARK: .5,

		TYPENAME_NORMAL: 0,
	},
}

var TYPE_DRAGON = PokemonType{
	TYPENAME_DRAGON,
	map[string]float64{
		TYPENAME_DRAGON: 2,

		TYPENAME_STEEL: .5,

		TYPENAME_FAIRY: 0,
	},
}

var TYPE_DARK = PokemonType{
	TYPENAME_DARK,
	map[string]float64{
		TYPENAME_PSYCHIC: 2,
		TYPENAME_GHOST:   2,

		TYPENAME_FIGHTING: .5,
		TYPENAME_DARK:     .5,
		TYPENAME_FAIRY:    .5,
	},
}

var TYPE_STEEL = PokemonType{
	TYPENAME_STEEL,
	map[string]float64{
		TYPENAME_ICE:   2,
		TYPENAME_ROCK:  2,
		TYPENAME_FAIRY: 2,

		TYPENAME_FIRE:     .5,
		TYPENAME_WATER:    .5,
		TYPENAME_ELECTRIC: .5,
		TYPENAME_STEEL:    .5,
	},
}

var TYPE_FAIRY = PokemonType{
	TYPENAME_FAIRY,
	map[string]float64{
		TYPENAME_FIGHTING: 2,
		TYPENAME_DRAGON:   2,
		TYPENAME_DARK:     2,

		TYPENAME_FIRE:   .5,
		TYPENAME_POISON: .5,
		TYPENAME_STEEL:  .5,
	},
}

var TYPE_TYPELESS = PokemonType{
	"typeless",
	map[string]float64{},
}

// GetAttackTypeMapping resolves a type name to its chart entry,
// falling back to a typeless entry whose every matchup is neutral.
func GetAttackTypeMapping(t string) *PokemonType {
	mapped_type := TYPE_MAP[t]
	if mapped_type == nil {
		mapped_type = &TYPE_TYPELESS
	}

	return mapped_type
}
