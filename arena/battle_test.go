package arena

import (
	"errors"
	"reflect"
	"testing"
)

func flamethrowerMove() Move {
	return Move{Name: "flamethrower", Type: TYPENAME_FIRE, Power: 90, DamageClass: DAMAGETYPE_SPECIAL, Accuracy: 100}
}

func thunderWaveMove() Move {
	return Move{
		Name:        "thunder-wave",
		Type:        TYPENAME_ELECTRIC,
		Power:       0,
		DamageClass: DAMAGETYPE_STATUS,
		Accuracy:    90,
		Ailment:     Ailment{Condition: STATUS_PARA, Chance: 100},
	}
}

func classicMatchup(t *testing.T, seed uint64) *Battle {
	t.Helper()

	battle, err := NewBattle(
		CombatantSpec{Species: charizardSpecies(), Moves: []Move{flamethrowerMove()}},
		CombatantSpec{Species: blastoiseSpecies(), Moves: []Move{surfMove()}},
		50,
		SeedFromUint64(seed),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	return battle
}

func TestBattleIsDeterministic(t *testing.T) {
	first := classicMatchup(t, 1234).Run()
	second := classicMatchup(t, 1234).Run()

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed and inputs produced different results")
	}

	// seeds exist to change outcomes somewhere; at minimum the logs differ
	// across a spread of seeds for this matchup
	varied := false
	for seed := uint64(0); seed < 20; seed++ {
		other := classicMatchup(t, seed).Run()
		if !reflect.DeepEqual(first.Records, other.Records) {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("20 different seeds replayed the exact same battle")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	battle := classicMatchup(t, 7)

	first := battle.Run()
	second := battle.Run()

	if !reflect.DeepEqual(first, second) {
		t.Fatal("second Run call replayed the battle")
	}
}

func TestBlastoiseBeatsCharizard(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		result := classicMatchup(t, seed).Run()

		if result.Draw || result.Winner != "blastoise" || result.Loser != "charizard" {
			t.Fatalf("seed %d: winner %q loser %q draw %v", seed, result.Winner, result.Loser, result.Draw)
		}
		if result.Turns > 2 {
			t.Fatalf("seed %d: two surfs always finish charizard, took %d turns", seed, result.Turns)
		}
		if result.Stats.SuperEffectiveHits == 0 {
			t.Fatalf("seed %d: surf hits never counted as super effective", seed)
		}

		if result.Records[0].Kind != RECORD_BATTLE_START {
			t.Fatalf("seed %d: first record is %q", seed, result.Records[0].Kind)
		}
		last := result.Records[len(result.Records)-1]
		if last.Kind != RECORD_FAINT || last.Actor != "charizard" {
			t.Fatalf("seed %d: last record %+v, want charizard faint", seed, last)
		}
	}
}

func TestFaintedCombatantNeverActs(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		result := classicMatchup(t, seed).Run()

		fainted := map[string]bool{}
		for _, record := range result.Records {
			if fainted[record.Actor] && record.Kind != RECORD_FAINT {
				t.Fatalf("seed %d: %s acted after fainting: %+v", seed, record.Actor, record)
			}
			if record.Kind == RECORD_FAINT {
				fainted[record.Actor] = true
			}
		}
	}
}

func TestDoubleKnockoutIsDraw(t *testing.T) {
	// 10 base HP scales to 70 max HP at level 50; a poison tick of 70/8 = 8
	// per turn drops both to 0 on the same end-of-turn phase of turn 9
	frail := func(name string) *Species {
		return &Species{
			Name:  name,
			Type1: &TYPE_NORMAL,
			Stats: StatBlock{Hp: 10, Attack: 80, Def: 80, SpAttack: 80, SpDef: 80, Speed: 80},
		}
	}

	battle, err := NewBattle(
		CombatantSpec{Species: frail("abra"), Moves: []Move{toxicMove()}},
		CombatantSpec{Species: frail("brabra"), Moves: []Move{toxicMove()}},
		50,
		SeedFromUint64(99),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result := battle.Run()

	if !result.Draw {
		t.Fatalf("double knockout should be a draw, got winner %q", result.Winner)
	}
	if result.Winner != "" || result.Loser != "" {
		t.Fatalf("draw must not name a winner: %q / %q", result.Winner, result.Loser)
	}
	if result.Turns != 9 {
		t.Fatalf("got %d turns, want 9", result.Turns)
	}
	for _, summary := range result.Final {
		if !summary.Fainted || summary.Hp != 0 {
			t.Fatalf("%s should have fainted at 0 HP: %+v", summary.Name, summary)
		}
		if summary.Status != "poison" {
			t.Fatalf("%s final status: got %q, want poison", summary.Name, summary.Status)
		}
	}
}

func TestTurnCapIsDraw(t *testing.T) {
	// two Electric types are immune to each other's paralysis and carry no
	// damaging move, so nothing can ever end this battle
	electric := func(name string) *Species {
		return &Species{
			Name:  name,
			Type1: &TYPE_ELECTRIC,
			Stats: StatBlock{Hp: 80, Attack: 80, Def: 80, SpAttack: 80, SpDef: 80, Speed: 80},
		}
	}

	battle, err := NewBattle(
		CombatantSpec{Species: electric("plusle"), Moves: []Move{thunderWaveMove()}},
		CombatantSpec{Species: electric("minun"), Moves: []Move{thunderWaveMove()}},
		50,
		SeedFromUint64(5),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	battle.SetTurnCap(12)

	result := battle.Run()

	if !result.Draw {
		t.Fatal("stalemate should end as a draw")
	}
	if result.Turns != 12 {
		t.Fatalf("got %d turns, want the cap of 12", result.Turns)
	}
	for _, summary := range result.Final {
		if summary.Fainted || summary.Hp != summary.MaxHp {
			t.Fatalf("%s took damage in a stall: %+v", summary.Name, summary)
		}
	}
}

func TestMissDealsNoDamageAndSkipsStatus(t *testing.T) {
	hydroPump := Move{Name: "hydro-pump", Type: TYPENAME_WATER, Power: 110, DamageClass: DAMAGETYPE_SPECIAL, Accuracy: 80}

	battle, err := NewBattle(
		CombatantSpec{Species: dummySpecies("aron"), Moves: []Move{hydroPump}},
		CombatantSpec{Species: dummySpecies("bidoof"), Moves: []Move{thunderWaveMove()}},
		50,
		SeedFromUint64(1),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	// the forced high source rolls 100 on every accuracy check, so both
	// moves miss every turn; neither move is a sure hit
	battle.rng = highRng()
	battle.SetTurnCap(3)

	result := battle.Run()

	if !result.Draw {
		t.Fatal("an all-miss stall should hit the turn cap and end in a draw")
	}

	misses := 0
	for _, record := range result.Records {
		switch record.Kind {
		case RECORD_BATTLE_START:
		case RECORD_MISS:
			misses++
			if record.Damage != 0 {
				t.Errorf("miss by %s dealt %d damage", record.Actor, record.Damage)
			}
			if record.Crit {
				t.Errorf("miss by %s flagged a crit", record.Actor)
			}
		default:
			t.Errorf("unexpected %q record on turn %d", record.Kind, record.Turn)
		}
	}
	if misses != 6 {
		t.Fatalf("got %d miss records, want 6 (both sides, three turns)", misses)
	}

	for _, summary := range result.Final {
		if summary.Hp != summary.MaxHp {
			t.Errorf("%s lost hp to missed attacks", summary.Name)
		}
		if summary.Status != STATUS_NONE.String() {
			t.Errorf("%s was inflicted with %s by a missed move", summary.Name, summary.Status)
		}
	}
	if result.Stats.StatusProcs != 0 {
		t.Errorf("got %d status procs, want 0", result.Stats.StatusProcs)
	}
}

func TestSpeedTieBreaksAlphabetically(t *testing.T) {
	// identical stats, passed in reverse order: "alpha" still acts first
	battle, err := NewBattle(
		CombatantSpec{Species: dummySpecies("beta"), Moves: []Move{tackleMove()}},
		CombatantSpec{Species: dummySpecies("alpha"), Moves: []Move{tackleMove()}},
		50,
		SeedFromUint64(3),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result := battle.Run()

	for _, record := range result.Records {
		if record.Kind == RECORD_ATTACK || record.Kind == RECORD_MISS {
			if record.Actor != "alpha" {
				t.Fatalf("first action by %q, want alpha", record.Actor)
			}
			return
		}
	}

	t.Fatal("no action records found")
}

func TestFasterCombatantActsFirst(t *testing.T) {
	battle := classicMatchup(t, 11)
	result := battle.Run()

	// charizard at 105 speed outpaces blastoise at 83
	for _, record := range result.Records {
		if record.Kind == RECORD_ATTACK || record.Kind == RECORD_MISS {
			if record.Actor != "charizard" {
				t.Fatalf("first action by %q, want charizard", record.Actor)
			}
			return
		}
	}

	t.Fatal("no action records found")
}

func TestStatusMoveInflictsThroughBattle(t *testing.T) {
	battle, err := NewBattle(
		CombatantSpec{Species: dummySpecies("attacker"), Moves: []Move{toxicMove()}},
		CombatantSpec{Species: dummySpecies("defender"), Moves: []Move{toxicMove()}},
		50,
		SeedFromUint64(21),
	)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	battle.SetTurnCap(1)

	result := battle.Run()

	applied := 0
	ticked := 0
	for _, record := range result.Records {
		switch record.Kind {
		case RECORD_STATUS_APPLIED:
			applied++
			if record.Status != "poison" {
				t.Fatalf("applied status %q, want poison", record.Status)
			}
		case RECORD_STATUS_DAMAGE:
			ticked++
			if record.Damage != 17 {
				t.Fatalf("poison tick of %d, want 17 (140/8)", record.Damage)
			}
		}
	}

	if applied != 2 {
		t.Fatalf("got %d status applications, want 2", applied)
	}
	if ticked != 2 {
		t.Fatalf("got %d status ticks, want 2", ticked)
	}
	if result.Stats.StatusProcs != 4 {
		t.Fatalf("status procs: got %d, want 4", result.Stats.StatusProcs)
	}
}

func TestNewBattleValidation(t *testing.T) {
	valid := CombatantSpec{Species: dummySpecies("ok"), Moves: []Move{tackleMove()}}
	seed := SeedFromUint64(1)

	cases := []struct {
		name   string
		first  CombatantSpec
		second CombatantSpec
		level  uint
	}{
		{"level zero", valid, valid, 0},
		{"level above max", valid, valid, 101},
		{"nil species", CombatantSpec{Moves: []Move{tackleMove()}}, valid, 50},
		{"no primary type", CombatantSpec{Species: &Species{Name: "x", Stats: valid.Species.Stats}, Moves: []Move{tackleMove()}}, valid, 50},
		{"no moves", CombatantSpec{Species: dummySpecies("x")}, valid, 50},
		{"too many moves", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{tackleMove(), tackleMove(), tackleMove()}}, valid, 50},
		{"unnamed move", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{{}}}, valid, 50},
		{"negative power", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{{Name: "m", Type: TYPENAME_NORMAL, Power: -5, DamageClass: DAMAGETYPE_PHYSICAL, Accuracy: 100}}}, valid, 50},
		{"accuracy above 100", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{{Name: "m", Type: TYPENAME_NORMAL, Power: 40, DamageClass: DAMAGETYPE_PHYSICAL, Accuracy: 101}}}, valid, 50},
		{"unknown damage class", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{{Name: "m", Type: TYPENAME_NORMAL, Power: 40, DamageClass: "weird", Accuracy: 100}}}, valid, 50},
		{"status move with power", CombatantSpec{Species: dummySpecies("x"), Moves: []Move{{Name: "m", Type: TYPENAME_NORMAL, Power: 40, DamageClass: DAMAGETYPE_STATUS, Accuracy: 100}}}, valid, 50},
	}

	for _, tc := range cases {
		_, err := NewBattle(tc.first, tc.second, tc.level, seed)
		if err == nil {
			t.Errorf("%s: expected an error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: error %v is not ErrInvalidInput", tc.name, err)
		}
	}

	if _, err := NewBattle(valid, valid, 50, seed); err != nil {
		t.Fatalf("valid setup rejected: %v", err)
	}
}

func TestCombatantsSnapshot(t *testing.T) {
	battle := classicMatchup(t, 2)

	combatants := battle.Combatants()
	if combatants[0].Name() != "charizard" || combatants[1].Name() != "blastoise" {
		t.Fatalf("unexpected combatants %q, %q", combatants[0].Name(), combatants[1].Name())
	}
	if combatants[0].Hp != combatants[0].MaxHp {
		t.Fatal("combatants should start at full HP")
	}
}
