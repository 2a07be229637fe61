package pokeapi

// NamedApiResource is PokeAPI's universal reference shape: a name plus the
// URL where the full resource lives.
type NamedApiResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

// pokemonResponse mirrors the slice of /pokemon/{name} this service reads.
// PokeAPI returns far more; unknown fields fall away during unmarshal.
type pokemonResponse struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Stats []struct {
		BaseStat int              `json:"base_stat"`
		Stat     NamedApiResource `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int              `json:"slot"`
		Type NamedApiResource `json:"type"`
	} `json:"types"`
	Moves []struct {
		Move NamedApiResource `json:"move"`
	} `json:"moves"`
}

// moveResponse mirrors /move/{name}. Power and Accuracy are pointers
// because PokeAPI reports null for status moves and never-miss moves.
type moveResponse struct {
	Id          int              `json:"id"`
	Name        string           `json:"name"`
	Power       *int             `json:"power"`
	Accuracy    *int             `json:"accuracy"`
	DamageClass NamedApiResource `json:"damage_class"`
	Type        NamedApiResource `json:"type"`
	Meta        *struct {
		Ailment       NamedApiResource `json:"ailment"`
		AilmentChance int              `json:"ailment_chance"`
	} `json:"meta"`
}

type listResponse struct {
	Count   int                `json:"count"`
	Results []NamedApiResource `json:"results"`
}

// Pokemon is the flattened species record handed to callers: base stats
// keyed by PokeAPI stat name, type names in slot order, and the full
// learnable move list.
type Pokemon struct {
	Id        int            `json:"id"`
	Name      string         `json:"name"`
	BaseStats map[string]int `json:"base_stats"`
	Types     []string       `json:"types"`
	Moves     []string       `json:"moves"`
}

// MoveData is the flattened move record. Power 0 means a status move,
// Accuracy 0 a move that never misses; the nulls are collapsed here so
// downstream code never touches a pointer.
type MoveData struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Power         int    `json:"power"`
	Accuracy      int    `json:"accuracy"`
	DamageClass   string `json:"damage_class"`
	Ailment       string `json:"ailment,omitempty"`
	AilmentChance int    `json:"ailment_chance,omitempty"`
}

func (p pokemonResponse) flatten() Pokemon {
	out := Pokemon{
		Id:        p.Id,
		Name:      p.Name,
		BaseStats: make(map[string]int, len(p.Stats)),
		Types:     make([]string, 0, len(p.Types)),
		Moves:     make([]string, 0, len(p.Moves)),
	}

	for _, stat := range p.Stats {
		out.BaseStats[stat.Stat.Name] = stat.BaseStat
	}
	for _, t := range p.Types {
		out.Types = append(out.Types, t.Type.Name)
	}
	for _, m := range p.Moves {
		out.Moves = append(out.Moves, m.Move.Name)
	}

	return out
}

func (m moveResponse) flatten() MoveData {
	out := MoveData{
		Id:          m.Id,
		Name:        m.Name,
		Type:        m.Type.Name,
		DamageClass: m.DamageClass.Name,
	}

	if m.Power != nil {
		out.Power = *m.Power
	}
	if m.Accuracy != nil {
		out.Accuracy = *m.Accuracy
	}
	if m.Meta != nil && m.Meta.Ailment.Name != "none" {
		out.Ailment = m.Meta.Ailment.Name
		out.AilmentChance = m.Meta.AilmentChance

		// PokeAPI encodes "always inflicts" as chance 0 on moves whose
		// whole point is the ailment, e.g. toxic and thunder-wave
		if out.AilmentChance == 0 && out.Power == 0 {
			out.AilmentChance = 100
		}
	}

	return out
}
