package arena

import "testing"

func TestDualTypeEffectivenessIsProduct(t *testing.T) {
	for _, attackName := range TypeNames() {
		attack := TYPE_MAP[attackName]

		for _, defName1 := range TypeNames() {
			for _, defName2 := range TypeNames() {
				def1 := TYPE_MAP[defName1]
				def2 := TYPE_MAP[defName2]

				single1 := Effectiveness(attack, []*PokemonType{def1})
				single2 := Effectiveness(attack, []*PokemonType{def2})
				combined := Effectiveness(attack, []*PokemonType{def1, def2})

				if combined != single1*single2 {
					t.Fatalf("%s vs %s/%s: got %v, want %v*%v", attackName, defName1, defName2, combined, single1, single2)
				}

				if (single1 == 0 || single2 == 0) && combined != 0 {
					t.Fatalf("%s vs %s/%s: immunity did not dominate, got %v", attackName, defName1, defName2, combined)
				}
			}
		}
	}
}

func TestUnknownPairDefaultsToNeutral(t *testing.T) {
	if got := TYPE_NORMAL.AttackEffectiveness(TYPE_FIRE); got != 1 {
		t.Fatalf("normal vs fire should be neutral, got %v", got)
	}

	typeless := GetAttackTypeMapping("not-a-type")
	if got := Effectiveness(typeless, []*PokemonType{&TYPE_STEEL, &TYPE_FAIRY}); got != 1 {
		t.Fatalf("typeless attack should be neutral everywhere, got %v", got)
	}
}

func TestWaterVsFireFlying(t *testing.T) {
	got := Effectiveness(&TYPE_WATER, []*PokemonType{&TYPE_FIRE, &TYPE_FLYING})
	if got != 2.0 {
		t.Fatalf("water vs fire/flying: got %v, want 2.0", got)
	}
}

func TestGroundVsFlyingIsImmune(t *testing.T) {
	got := Effectiveness(&TYPE_GROUND, []*PokemonType{&TYPE_FLYING})
	if got != 0 {
		t.Fatalf("ground vs flying: got %v, want 0", got)
	}
}

func TestQuadrupleWeakness(t *testing.T) {
	// rock vs fire/flying stacks 2x and 2x
	got := Effectiveness(&TYPE_ROCK, []*PokemonType{&TYPE_FIRE, &TYPE_FLYING})
	if got != 4.0 {
		t.Fatalf("rock vs fire/flying: got %v, want 4.0", got)
	}

	if EffectivenessLabel(got) != LABEL_SUPER_EFFECTIVE {
		t.Fatalf("4x should still label as super effective, got %q", EffectivenessLabel(got))
	}
}

func TestEffectivenessLabels(t *testing.T) {
	cases := map[float64]string{
		0:    LABEL_NO_EFFECT,
		0.25: LABEL_NOT_VERY_EFFECTIVE,
		0.5:  LABEL_NOT_VERY_EFFECTIVE,
		1:    LABEL_NORMAL,
		2:    LABEL_SUPER_EFFECTIVE,
		4:    LABEL_SUPER_EFFECTIVE,
	}

	for mult, want := range cases {
		if got := EffectivenessLabel(mult); got != want {
			t.Errorf("label for %v: got %q, want %q", mult, got, want)
		}
	}
}

func TestEveryTypeHasChartEntry(t *testing.T) {
	for _, name := range TypeNames() {
		if TYPE_MAP[name] == nil {
			t.Fatalf("type %q missing from TYPE_MAP", name)
		}
		if TYPE_MAP[name].Name != name {
			t.Fatalf("type %q maps to entry named %q", name, TYPE_MAP[name].Name)
		}
	}
}
