package arena

// Effectiveness labels as they appear in turn records and API responses.
// A 4x hit keeps the "super effective" label; the raw multiplier is
// surfaced separately for callers that care about magnitude.
const (
	LABEL_NO_EFFECT          = "no effect"
	LABEL_NOT_VERY_EFFECTIVE = "not very effective"
	LABEL_NORMAL             = "normal"
	LABEL_SUPER_EFFECTIVE    = "super effective"
)

// Effectiveness computes the combined multiplier of an attacking type
// against one or two defending types. Immunity dominates: any 0 factor
// zeroes the whole product.
func Effectiveness(attackType *PokemonType, defendingTypes []*PokemonType) float64 {
	total := 1.0
	for _, def := range defendingTypes {
		if def == nil {
			continue
		}
		total *= attackType.AttackEffectiveness(*def)
	}

	return total
}

// EffectivenessLabel maps a multiplier onto its human-readable label.
func EffectivenessLabel(multiplier float64) string {
	switch {
	case multiplier == 0:
		return LABEL_NO_EFFECT
	case multiplier < 1:
		return LABEL_NOT_VERY_EFFECTIVE
	case multiplier > 1:
		return LABEL_SUPER_EFFECTIVE
	default:
		return LABEL_NORMAL
	}
}

// TypeNames lists all 18 canonical type names in chart order.
func TypeNames() []string {
	return []string{
		TYPENAME_NORMAL, TYPENAME_FIRE, TYPENAME_WATER, TYPENAME_ELECTRIC,
		TYPENAME_GRASS, TYPENAME_ICE, TYPENAME_FIGHTING, TYPENAME_POISON,
		TYPENAME_GROUND, TYPENAME_FLYING, TYPENAME_PSYCHIC, TYPENAME_BUG,
		TYPENAME_ROCK, TYPENAME_GHOST, TYPENAME_DRAGON, TYPENAME_DARK,
		TYPENAME_STEEL, TYPENAME_FAIRY,
	}
}
