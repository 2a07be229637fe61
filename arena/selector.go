package arena

import "math/rand/v2"

// MoveSelector picks the index of the move a combatant uses this turn.
// Move choice is policy, not engine mechanics, so it is injected into the
// orchestrator. A selector must return an index of a non-nil move.
type MoveSelector func(attacker Combatant, defender Combatant, rng *rand.Rand) int

// SelectFirstMove always uses the first usable move.
func SelectFirstMove(attacker Combatant, _ Combatant, _ *rand.Rand) int {
	for i, move := range attacker.Moves {
		if !move.IsNil() {
			return i
		}
	}

	return 0
}

// SelectRandomMove picks uniformly among the usable moves.
func SelectRandomMove(attacker Combatant, _ Combatant, rng *rand.Rand) int {
	usable := make([]int, 0, len(attacker.Moves))
	for i, move := range attacker.Moves {
		if !move.IsNil() {
			usable = append(usable, i)
		}
	}

	if len(usable) == 0 {
		return 0
	}

	return usable[rng.IntN(len(usable))]
}

// SelectMaxDamage picks the move with the highest expected damage, crits
// assumed not to happen. Status moves only win when nothing can deal
// damage at all (both moves immune or status-only).
func SelectMaxDamage(attacker Combatant, defender Combatant, _ *rand.Rand) int {
	bestIndex := -1
	var bestDamage uint

	for i, move := range attacker.Moves {
		if move.IsNil() {
			continue
		}

		expected := ExpectedDamage(attacker, defender, move)
		if bestIndex == -1 || expected > bestDamage {
			bestIndex = i
			bestDamage = expected
		}
	}

	if bestIndex == -1 {
		return 0
	}

	return bestIndex
}

// SelectorByName resolves a policy name from config or an API request.
// Unknown names fall back to the max-damage policy.
func SelectorByName(name string) MoveSelector {
	switch name {
	case "first":
		return SelectFirstMove
	case "random":
		return SelectRandomMove
	case "max-damage", "":
		return SelectMaxDamage
	}

	return SelectMaxDamage
}
