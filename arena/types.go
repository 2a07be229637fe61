// Package arena implements a deterministic 1v1 Pokemon battle engine:
// an 18-type effectiveness chart, the Gen 9 damage formula, a three-status
// lifecycle (paralysis, burn, poison) and a synchronous turn orchestrator.
// The package performs no I/O; species and move data are handed in already
// validated, and all randomness flows through an injected *rand.Rand so a
// battle is a pure function of its inputs and seed.
package arena

import "math"

type PokemonType struct {
	Name          string
	Effectiveness map[string]float64
}

// AttackEffectiveness gives the multiplier of an attack of this type against
// a single defending type. Pairs absent from the chart are neutral; the 1.0
// default is deliberate here rather than a zero-value accident.
func (t PokemonType) AttackEffectiveness(defenseType PokemonType) float64 {
	effectiveness, ok := t.Effectiveness[defenseType.Name]
	if !ok {
		return 1
	}

	return effectiveness
}

// StatBlock holds the six battle stats, either base values straight from
// species data or values already scaled to a level.
type StatBlock struct {
	Hp       uint `json:"hp"`
	Attack   uint `json:"attack"`
	Def      uint `json:"defense"`
	SpAttack uint `json:"special_attack"`
	SpDef    uint `json:"special_defense"`
	Speed    uint `json:"speed"`
}

// ScaleStats derives battle stats at a level from base stats with the flat
// scaling formula: HP is (2*base*level)/100 + level + 10, everything else is
// (2*base*level)/100 + 5. Every stat lands at 1 or higher.
func ScaleStats(base StatBlock, level uint) StatBlock {
	scale := func(stat uint) uint {
		v := (2*stat*level)/100 + 5
		if v < 1 {
			v = 1
		}
		return v
	}

	return StatBlock{
		Hp:       (2*base.Hp*level)/100 + level + 10,
		Attack:   scale(base.Attack),
		Def:      scale(base.Def),
		SpAttack: scale(base.SpAttack),
		SpDef:    scale(base.SpDef),
		Speed:    scale(base.Speed),
	}
}

// Species is reference data for one Pokemon, as if it were a PokeDex entry.
type Species struct {
	Name  string
	Type1 *PokemonType
	Type2 *PokemonType
	Stats StatBlock
}

func (s Species) HasType(t *PokemonType) bool {
	return s.Type1 == t || s.Type2 == t
}

// Types returns the species' one or two types.
func (s Species) Types() []*PokemonType {
	if s.Type2 != nil {
		return []*PokemonType{s.Type1, s.Type2}
	}
	return []*PokemonType{s.Type1}
}

// Ailment is the status a move may inflict on a connecting hit,
// with a percent chance in [0, 100].
type Ailment struct {
	Condition StatusCondition `json:"condition"`
	Chance    int             `json:"chance"`
}

// Move is immutable reference data. Power 0 marks a status-only move.
// Accuracy 0 means the move never misses (PokeAPI reports null accuracy
// for moves like Swift).
type Move struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Power       int     `json:"power"`
	DamageClass string  `json:"damage_class"`
	Accuracy    int     `json:"accuracy"`
	Ailment     Ailment `json:"ailment,omitempty"`
}

func (m Move) IsNil() bool {
	return m.Name == ""
}

// Combatant is one side of a battle: scaled stats, current HP, status and a
// fixed pair of moves. It is created at setup and mutated only by the
// orchestrator.
type Combatant struct {
	Species *Species
	Level   uint
	Stats   StatBlock
	MaxHp   uint
	Hp      uint
	Status  StatusCondition
	Moves   [2]Move
}

func newCombatant(species *Species, moves []Move, level uint) Combatant {
	scaled := ScaleStats(species.Stats, level)

	c := Combatant{
		Species: species,
		Level:   level,
		Stats:   scaled,
		MaxHp:   scaled.Hp,
		Hp:      scaled.Hp,
		Status:  STATUS_NONE,
	}
	copy(c.Moves[:], moves)

	return c
}

func (c Combatant) Name() string {
	return c.Species.Name
}

func (c Combatant) Alive() bool {
	return c.Hp > 0
}

func (c Combatant) HasType(pokemonType *PokemonType) bool {
	return c.Species.HasType(pokemonType)
}

// DefenseEffectiveness gets the combined effectiveness of an attack type
// against this combatant's one or two types. Any 0 collapses the product.
func (c Combatant) DefenseEffectiveness(attackType *PokemonType) float64 {
	effectiveness1 := attackType.AttackEffectiveness(*c.Species.Type1)

	var effectiveness2 float64 = 1
	if c.Species.Type2 != nil {
		effectiveness2 = attackType.AttackEffectiveness(*c.Species.Type2)
	}

	return effectiveness1 * effectiveness2
}

// ApplyDamage drops current HP by dmg, flooring at 0.
func (c *Combatant) ApplyDamage(dmg uint) {
	cappedNewHealth := uint(math.Max(0, float64(int(c.Hp)-int(dmg))))
	c.Hp = cappedNewHealth

	// Should be unreachable: HP only ever decreases from MaxHp.
	if c.Hp > c.MaxHp {
		panic(ErrInternalInvariant)
	}
}
