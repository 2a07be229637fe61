package arena

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

// Battle state machine. A battle moves Setup -> InProgress -> Complete in
// one synchronous Run call; there is no pause or resume.
const (
	STATE_SETUP = iota
	STATE_IN_PROGRESS
	STATE_COMPLETE
)

// TurnRecord kinds, in the order they can appear within a turn.
const (
	RECORD_BATTLE_START    = "battle_start"
	RECORD_ATTACK          = "attack"
	RECORD_MISS            = "miss"
	RECORD_FULLY_PARALYZED = "fully_paralyzed"
	RECORD_STATUS_APPLIED  = "status_applied"
	RECORD_STATUS_DAMAGE   = "status_damage"
	RECORD_FAINT           = "faint"
)

// TurnRecord is one append-only battle log entry. Append order is temporal
// order: the first attacker of a turn logs first, status ticks log after
// both actions.
type TurnRecord struct {
	Turn          int    `json:"turn"`
	Kind          string `json:"kind"`
	Actor         string `json:"actor"`
	Target        string `json:"target,omitempty"`
	Move          string `json:"move,omitempty"`
	Damage        uint   `json:"damage"`
	Effectiveness string `json:"effectiveness,omitempty"`
	Crit          bool   `json:"critical_hit"`
	Status        string `json:"status,omitempty"`
	Message       string `json:"message"`
}

type BattleStats struct {
	CriticalHits         int `json:"critical_hits"`
	StatusProcs          int `json:"status_procs"`
	SuperEffectiveHits   int `json:"super_effective_hits"`
	NotVeryEffectiveHits int `json:"not_very_effective_hits"`
}

type CombatantSummary struct {
	Name    string `json:"name"`
	Hp      uint   `json:"hp"`
	MaxHp   uint   `json:"max_hp"`
	Status  string `json:"status"`
	Fainted bool   `json:"fainted"`
}

// BattleResult is the terminal snapshot. Winner and Loser are empty when
// Draw is set (double knockout or turn-cap stalemate).
type BattleResult struct {
	Winner  string              `json:"winner,omitempty"`
	Loser   string              `json:"loser,omitempty"`
	Draw    bool                `json:"draw"`
	Turns   int                 `json:"turns"`
	Records []TurnRecord        `json:"records"`
	Stats   BattleStats         `json:"stats"`
	Final   [2]CombatantSummary `json:"final"`
}

// CombatantSpec is the validated input contract for one side: a species
// and its fixed pair of selected moves (one or two).
type CombatantSpec struct {
	Species *Species
	Moves   []Move
}

type Battle struct {
	combatants [2]Combatant
	selector   MoveSelector
	rng        *rand.Rand
	turnCap    int
	turn       int
	state      int
	records    []TurnRecord
	result     BattleResult
}

// NewBattle validates both specs and the shared level, scales stats and
// readies the state machine. All validation happens here: a battle that
// failed setup never mutated anything and is never partially run.
func NewBattle(first CombatantSpec, second CombatantSpec, level uint, seed rand.PCG) (*Battle, error) {
	if level < MIN_LEVEL || level > MAX_LEVEL {
		return nil, invalidInputf("level %d outside [%d, %d]", level, MIN_LEVEL, MAX_LEVEL)
	}

	for _, spec := range []CombatantSpec{first, second} {
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
	}

	return &Battle{
		combatants: [2]Combatant{
			newCombatant(first.Species, first.Moves, level),
			newCombatant(second.Species, second.Moves, level),
		},
		selector: SelectMaxDamage,
		rng:      CreateRNG(&seed),
		turnCap:  MAX_BATTLE_TURNS,
		state:    STATE_SETUP,
	}, nil
}

func validateSpec(spec CombatantSpec) error {
	if spec.Species == nil {
		return invalidInputf("combatant has no species")
	}
	if spec.Species.Type1 == nil {
		return invalidInputf("species %q has no primary type", spec.Species.Name)
	}
	if len(spec.Moves) == 0 {
		return invalidInputf("species %q has no usable moves", spec.Species.Name)
	}
	if len(spec.Moves) > 2 {
		return invalidInputf("species %q has %d moves, max is 2", spec.Species.Name, len(spec.Moves))
	}

	for _, move := range spec.Moves {
		if move.IsNil() {
			return invalidInputf("species %q has an unnamed move", spec.Species.Name)
		}
		if move.Power < 0 {
			return invalidInputf("move %q has negative power", move.Name)
		}
		if move.Accuracy < 0 || move.Accuracy > 100 {
			return invalidInputf("move %q accuracy %d outside [0, 100]", move.Name, move.Accuracy)
		}
		switch move.DamageClass {
		case DAMAGETYPE_PHYSICAL, DAMAGETYPE_SPECIAL:
		case DAMAGETYPE_STATUS:
			if move.Power > 0 {
				return invalidInputf("status move %q has power %d", move.Name, move.Power)
			}
		default:
			return invalidInputf("move %q has unknown damage class %q", move.Name, move.DamageClass)
		}
	}

	return nil
}

// SetSelector swaps the move-selection policy. Only valid before Run.
func (b *Battle) SetSelector(selector MoveSelector) {
	if b.state == STATE_SETUP && selector != nil {
		b.selector = selector
	}
}

// SetTurnCap overrides the stalemate cap. Only valid before Run.
func (b *Battle) SetTurnCap(cap int) {
	if b.state == STATE_SETUP && cap > 0 {
		b.turnCap = cap
	}
}

// Combatants exposes read-only snapshots of both sides, mainly for
// prediction and presentation layers.
func (b *Battle) Combatants() [2]Combatant {
	return b.combatants
}

// Run plays the battle to completion and returns the terminal snapshot.
// Calling Run again returns the same result without replaying anything.
func (b *Battle) Run() BattleResult {
	if b.state == STATE_COMPLETE {
		return b.result
	}

	b.state = STATE_IN_PROGRESS
	b.logRecord(TurnRecord{
		Turn:    0,
		Kind:    RECORD_BATTLE_START,
		Actor:   b.combatants[0].Name(),
		Target:  b.combatants[1].Name(),
		Message: fmt.Sprintf("Battle begins! %s vs %s!", b.combatants[0].Name(), b.combatants[1].Name()),
	})

	for b.turn = 1; b.turn <= b.turnCap; b.turn++ {
		internalLogger.V(1).Info("turn start",
			"turn", b.turn,
			"hp_0", b.combatants[0].Hp,
			"hp_1", b.combatants[1].Hp)

		first, second := b.turnOrder()

		b.takeAction(first, second)

		// A fainted combatant never acts; a KO by the first actor also
		// skips the end-of-turn phase and goes straight to termination.
		if b.combatants[second].Alive() {
			b.takeAction(second, first)
			b.endOfTurnPhase()
		}

		if result, over := b.checkTermination(); over {
			return b.complete(result)
		}
	}

	// Degenerate stalemate: the cap fired. Surfaced as a draw, not an error.
	internalLogger.Info("turn cap reached, battle is a draw", "cap", b.turnCap)
	b.turn = b.turnCap
	return b.complete(BattleResult{Draw: true})
}

// turnOrder gives combatant indices in action order: higher effective speed
// first, exact ties broken alphabetically by species name so replays don't
// depend on anything but the seed.
func (b *Battle) turnOrder() (int, int) {
	c0 := b.combatants[0]
	c1 := b.combatants[1]

	speedComp := cmp.Compare(c1.EffectiveSpeed(), c0.EffectiveSpeed())
	if speedComp < 0 {
		return 0, 1
	}
	if speedComp > 0 {
		return 1, 0
	}

	if strings.Compare(c0.Name(), c1.Name()) <= 0 {
		return 0, 1
	}
	return 1, 0
}

func (b *Battle) takeAction(attacker int, defender int) {
	att := &b.combatants[attacker]
	def := &b.combatants[defender]

	if FullyParalyzed(*att, b.rng) {
		internalLogger.V(1).Info("action skipped by paralysis", "combatant", att.Name())
		b.logRecord(TurnRecord{
			Turn:    b.turn,
			Kind:    RECORD_FULLY_PARALYZED,
			Actor:   att.Name(),
			Status:  STATUS_PARA.String(),
			Message: fmt.Sprintf("%s is fully paralyzed! It can't move!", att.Name()),
		})
		return
	}

	moveIndex := b.selector(*att, *def, b.rng)
	if moveIndex < 0 || moveIndex >= len(att.Moves) || att.Moves[moveIndex].IsNil() {
		moveIndex = SelectFirstMove(*att, *def, b.rng)
	}
	move := att.Moves[moveIndex]

	// Accuracy 0 always hits; otherwise one roll in [1, 100].
	if move.Accuracy > 0 && int(b.rng.UintN(100))+1 > move.Accuracy {
		b.logRecord(TurnRecord{
			Turn:    b.turn,
			Kind:    RECORD_MISS,
			Actor:   att.Name(),
			Target:  def.Name(),
			Move:    move.Name,
			Message: fmt.Sprintf("%s used %s, but it missed!", att.Name(), move.Name),
		})
		return
	}

	result := Damage(*att, *def, move, b.rng)
	def.ApplyDamage(result.Damage)

	b.logRecord(TurnRecord{
		Turn:          b.turn,
		Kind:          RECORD_ATTACK,
		Actor:         att.Name(),
		Target:        def.Name(),
		Move:          move.Name,
		Damage:        result.Damage,
		Effectiveness: result.Label,
		Crit:          result.Crit,
		Message:       attackMessage(*att, *def, move, result),
	})

	if !def.Alive() {
		b.logRecord(TurnRecord{
			Turn:    b.turn,
			Kind:    RECORD_FAINT,
			Actor:   def.Name(),
			Message: fmt.Sprintf("%s fainted!", def.Name()),
		})
		return
	}

	b.tryInflictStatus(att, def, move, result)
}

// tryInflictStatus rolls a move's ailment against a surviving defender.
// Damaging moves must have connected for damage; a pure status move only
// needs to have passed its accuracy check. First status wins: a defender
// already holding any status is immune for the rest of the battle.
func (b *Battle) tryInflictStatus(att *Combatant, def *Combatant, move Move, result DamageResult) {
	ailment := move.Ailment
	if ailment.Condition == STATUS_NONE || ailment.Chance <= 0 {
		return
	}

	connected := result.Damage > 0 || move.Power == 0
	if !connected || !CanInflict(*def, ailment.Condition) {
		return
	}

	if int(b.rng.UintN(100)) >= ailment.Chance {
		return
	}

	def.Status = ailment.Condition
	internalLogger.V(1).Info("status inflicted",
		"status", ailment.Condition.String(),
		"target", def.Name())

	b.logRecord(TurnRecord{
		Turn:    b.turn,
		Kind:    RECORD_STATUS_APPLIED,
		Actor:   att.Name(),
		Target:  def.Name(),
		Move:    move.Name,
		Status:  ailment.Condition.String(),
		Message: fmt.Sprintf("%s %s", def.Name(), statusAppliedText(ailment.Condition)),
	})
}

// endOfTurnPhase ticks burn and poison on every combatant still standing,
// faster combatant first. The tick ignores defenses and can be 0 when the
// fraction floors to 0; only nonzero ticks are logged.
func (b *Battle) endOfTurnPhase() {
	first, second := b.turnOrder()

	for _, i := range []int{first, second} {
		c := &b.combatants[i]
		if !c.Alive() {
			continue
		}

		tick := EndOfTurnDamage(*c)
		if tick == 0 {
			continue
		}

		c.ApplyDamage(tick)
		b.logRecord(TurnRecord{
			Turn:    b.turn,
			Kind:    RECORD_STATUS_DAMAGE,
			Actor:   c.Name(),
			Damage:  tick,
			Status:  c.Status.String(),
			Message: fmt.Sprintf("%s is hurt by its %s! Lost %d HP.", c.Name(), c.Status, tick),
		})

		if !c.Alive() {
			b.logRecord(TurnRecord{
				Turn:    b.turn,
				Kind:    RECORD_FAINT,
				Actor:   c.Name(),
				Message: fmt.Sprintf("%s fainted!", c.Name()),
			})
		}
	}
}

// checkTermination resolves the battle once at least one side is at 0 HP.
// Both at 0 in the same resolution step is a double knockout and an
// explicit draw; the engine never invents a winner.
func (b *Battle) checkTermination() (BattleResult, bool) {
	alive0 := b.combatants[0].Alive()
	alive1 := b.combatants[1].Alive()

	switch {
	case !alive0 && !alive1:
		return BattleResult{Draw: true}, true
	case !alive0:
		return BattleResult{Winner: b.combatants[1].Name(), Loser: b.combatants[0].Name()}, true
	case !alive1:
		return BattleResult{Winner: b.combatants[0].Name(), Loser: b.combatants[1].Name()}, true
	}

	return BattleResult{}, false
}

func (b *Battle) complete(result BattleResult) BattleResult {
	result.Turns = b.turn
	result.Records = b.records
	result.Stats = b.aggregateStats()
	for i, c := range b.combatants {
		result.Final[i] = CombatantSummary{
			Name:    c.Name(),
			Hp:      c.Hp,
			MaxHp:   c.MaxHp,
			Status:  c.Status.String(),
			Fainted: !c.Alive(),
		}
	}

	b.state = STATE_COMPLETE
	b.result = result

	internalLogger.Info("battle complete",
		"winner", result.Winner,
		"draw", result.Draw,
		"turns", result.Turns)

	return result
}

func (b *Battle) aggregateStats() BattleStats {
	return BattleStats{
		CriticalHits: lo.CountBy(b.records, func(r TurnRecord) bool {
			return r.Kind == RECORD_ATTACK && r.Crit && r.Damage > 0
		}),
		StatusProcs: lo.CountBy(b.records, func(r TurnRecord) bool {
			return r.Kind == RECORD_STATUS_APPLIED || r.Kind == RECORD_STATUS_DAMAGE || r.Kind == RECORD_FULLY_PARALYZED
		}),
		SuperEffectiveHits: lo.CountBy(b.records, func(r TurnRecord) bool {
			return r.Kind == RECORD_ATTACK && r.Effectiveness == LABEL_SUPER_EFFECTIVE
		}),
		NotVeryEffectiveHits: lo.CountBy(b.records, func(r TurnRecord) bool {
			return r.Kind == RECORD_ATTACK && r.Effectiveness == LABEL_NOT_VERY_EFFECTIVE
		}),
	}
}

func (b *Battle) logRecord(record TurnRecord) {
	b.records = append(b.records, record)
}

func attackMessage(att Combatant, def Combatant, move Move, result DamageResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s used %s!", att.Name(), move.Name)

	if result.Damage > 0 {
		fmt.Fprintf(&sb, " It dealt %d damage.", result.Damage)
	}
	if result.Crit && result.Damage > 0 {
		sb.WriteString(" A critical hit!")
	}

	switch result.Label {
	case LABEL_NO_EFFECT:
		fmt.Fprintf(&sb, " It doesn't affect %s...", def.Name())
	case LABEL_NOT_VERY_EFFECTIVE:
		sb.WriteString(" It's not very effective...")
	case LABEL_SUPER_EFFECTIVE:
		sb.WriteString(" It's super effective!")
	}

	return sb.String()
}

func statusAppliedText(status StatusCondition) string {
	switch status {
	case STATUS_PARA:
		return "was paralyzed! It may be unable to move!"
	case STATUS_BURN:
		return "was burned!"
	case STATUS_POISON:
		return "was poisoned!"
	case STATUS_NONE:
	}

	return "was afflicted!"
}
