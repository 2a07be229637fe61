package arena

import "math/rand/v2"

// StatusCondition is a closed enumeration. A combatant carries at most one
// status for the rest of the battle; there is no cure mechanism. Every
// switch over a StatusCondition in this package handles all four cases so
// a new status can't silently no-op its way through the lifecycle.
type StatusCondition int

const (
	STATUS_NONE StatusCondition = iota
	STATUS_PARA
	STATUS_BURN
	STATUS_POISON
)

const paralysisSkipChance = 0.25

func (s StatusCondition) String() string {
	switch s {
	case STATUS_NONE:
		return "none"
	case STATUS_PARA:
		return "paralysis"
	case STATUS_BURN:
		return "burn"
	case STATUS_POISON:
		return "poison"
	}

	return "unknown"
}

// StatusFromAilment maps a PokeAPI ailment name onto the engine's closed
// status set. Ailments outside the modeled three come back as STATUS_NONE.
var statusNameMap = map[string]StatusCondition{
	"paralysis": STATUS_PARA,
	"burn":      STATUS_BURN,
	"poison":    STATUS_POISON,
}

func StatusFromAilment(name string) StatusCondition {
	return statusNameMap[name]
}

// FullyParalyzed is the pre-action check: a paralyzed combatant has a 25%
// chance of losing its action for the turn. No other status skips actions.
func FullyParalyzed(c Combatant, rng *rand.Rand) bool {
	switch c.Status {
	case STATUS_PARA:
		return rng.Float64() < paralysisSkipChance
	case STATUS_BURN, STATUS_POISON, STATUS_NONE:
		return false
	}

	return false
}

// EffectiveSpeed recomputes speed from the stored stat every call.
// Paralysis halves it; the stored StatBlock is never mutated, so the
// modifier can't drift or stack.
func (c Combatant) EffectiveSpeed() uint {
	speed := c.Stats.Speed

	switch c.Status {
	case STATUS_PARA:
		speed = speed / 2
	case STATUS_BURN, STATUS_POISON, STATUS_NONE:
	}

	return speed
}

// EffectiveAttack gives the offensive stat for a damage class, with the
// burn penalty applied to physical attacks only.
func (c Combatant) EffectiveAttack(damageClass string) uint {
	if damageClass == DAMAGETYPE_SPECIAL {
		return c.Stats.SpAttack
	}

	attack := c.Stats.Attack

	switch c.Status {
	case STATUS_BURN:
		attack = attack / 2
	case STATUS_PARA, STATUS_POISON, STATUS_NONE:
	}

	return attack
}

// EffectiveDefense gives the defensive stat for a damage class. No status
// in the modeled set touches defenses.
func (c Combatant) EffectiveDefense(damageClass string) uint {
	if damageClass == DAMAGETYPE_SPECIAL {
		return c.Stats.SpDef
	}

	return c.Stats.Def
}

// EndOfTurnDamage is the per-turn status tick: burn costs maxHP/16, poison
// maxHP/8, both integer division. This damage ignores defenses entirely,
// and there is no minimum of 1 -- a tick that floors to 0 deals nothing.
func EndOfTurnDamage(c Combatant) uint {
	switch c.Status {
	case STATUS_BURN:
		return c.MaxHp / 16
	case STATUS_POISON:
		return c.MaxHp / 8
	case STATUS_PARA, STATUS_NONE:
		return 0
	}

	return 0
}

// CanInflict reports whether a status can land on a combatant. A combatant
// already holding any status is immune to new ones (first status wins), and
// the classic type immunities apply: Electric can't be paralyzed, Fire
// can't be burned, Poison and Steel can't be poisoned.
func CanInflict(c Combatant, status StatusCondition) bool {
	if status == STATUS_NONE {
		return false
	}

	if c.Status != STATUS_NONE {
		return false
	}

	switch status {
	case STATUS_PARA:
		return !c.HasType(&TYPE_ELECTRIC)
	case STATUS_BURN:
		return !c.HasType(&TYPE_FIRE)
	case STATUS_POISON:
		return !c.HasType(&TYPE_POISON) && !c.HasType(&TYPE_STEEL)
	case STATUS_NONE:
	}

	return false
}
