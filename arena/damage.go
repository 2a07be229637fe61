package arena

import (
	"math"
	"math/rand/v2"

	"github.com/go-logr/logr"
)

var damageLogger = func() logr.Logger {
	return internalLogger.WithName("damage")
}

// DamageResult carries everything a turn record needs about one hit.
// Effectiveness is the raw multiplier; Label its presentation form.
type DamageResult struct {
	Damage        uint
	Effectiveness float64
	Label         string
	Crit          bool
}

// Damage runs the Gen 9 damage formula for one hit:
//
//	base = ((2*level/5 + 2) * power * A/D) / 50 + 2
//
// then STAB (1.5x), type effectiveness, a 1/24 critical roll (1.5x) and a
// uniform random factor in [0.85, 1.00]. The whole product stays in float64
// and truncates once at the end; rounding at every step compounds error.
//
// Immunity is absolute: effectiveness 0 short-circuits to 0 damage before
// the random factor is drawn. The crit trial is still taken so the flag is
// honest and the rng stream doesn't depend on the defender's typing. A
// connecting damaging move always deals at least 1.
func Damage(attacker Combatant, defender Combatant, move Move, rng *rand.Rand) DamageResult {
	if move.Power == 0 {
		// status move, no damage path
		return DamageResult{Damage: 0, Effectiveness: 1, Label: "", Crit: false}
	}

	a := attacker.EffectiveAttack(move.DamageClass)
	d := defender.EffectiveDefense(move.DamageClass)
	if d < 1 {
		d = 1
	}

	attackType := GetAttackTypeMapping(move.Type)
	effectiveness := defender.DefenseEffectiveness(attackType)

	crit := rng.Float64() < critChance

	if effectiveness == 0 {
		damageLogger().V(1).Info("attack had no effect",
			"move", move.Name,
			"defender", defender.Name())
		return DamageResult{Damage: 0, Effectiveness: 0, Label: LABEL_NO_EFFECT, Crit: crit}
	}

	level := float64(attacker.Level)
	power := float64(move.Power)

	damage := ((2*level/5+2)*power*float64(a)/float64(d))/50 + 2

	stab := 1.0
	if move.Type == attacker.Species.Type1.Name || (attacker.Species.Type2 != nil && move.Type == attacker.Species.Type2.Name) {
		stab = 1.5
	}
	damage *= stab

	damage *= effectiveness

	if crit {
		damage *= 1.5
	}

	// 16 possible spreads, 0.85 through 1.00 inclusive
	randomSpread := float64(rng.UintN(16)+85) / 100.0
	damage *= randomSpread

	finalDamage := uint(math.Floor(damage))
	if finalDamage < 1 {
		finalDamage = 1
	}

	damageLogger().V(1).Info("damage roll",
		"move", move.Name,
		"power", move.Power,
		"attackerLevel", attacker.Level,
		"attackValue", a,
		"defValue", d,
		"stab", stab,
		"effectiveness", effectiveness,
		"crit", crit,
		"randomSpread", randomSpread,
		"damage", finalDamage)

	return DamageResult{
		Damage:        finalDamage,
		Effectiveness: effectiveness,
		Label:         EffectivenessLabel(effectiveness),
		Crit:          crit,
	}
}

// ExpectedDamage estimates a move's damage with no crit and no random
// spread, for move-selection policies. It never touches an rng, so
// selectors built on it can't perturb the battle's random stream.
func ExpectedDamage(attacker Combatant, defender Combatant, move Move) uint {
	if move.Power == 0 {
		return 0
	}

	a := attacker.EffectiveAttack(move.DamageClass)
	d := defender.EffectiveDefense(move.DamageClass)
	if d < 1 {
		d = 1
	}

	effectiveness := defender.DefenseEffectiveness(GetAttackTypeMapping(move.Type))
	if effectiveness == 0 {
		return 0
	}

	level := float64(attacker.Level)
	power := float64(move.Power)

	damage := ((2*level/5+2)*power*float64(a)/float64(d))/50 + 2

	if move.Type == attacker.Species.Type1.Name || (attacker.Species.Type2 != nil && move.Type == attacker.Species.Type2.Name) {
		damage *= 1.5
	}

	damage *= effectiveness

	expected := uint(math.Floor(damage))
	if expected < 1 {
		expected = 1
	}

	return expected
}
