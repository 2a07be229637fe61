package api

import (
	"encoding/json"
	"net/http"

	"pokebattle/arena"
)

type predictRequest struct {
	Pokemon1 string `json:"pokemon1"`
	Pokemon2 string `json:"pokemon2"`
	Level    uint   `json:"level,omitempty"`
}

type predictSide struct {
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	WinChance  int      `json:"predicted_win_chance"`
	Advantages []string `json:"key_advantages"`
}

type predictResponse struct {
	Pokemon1        predictSide                `json:"pokemon1"`
	Pokemon2        predictSide                `json:"pokemon2"`
	PredictedWinner string                     `json:"predicted_winner"`
	Confidence      string                     `json:"confidence_level"`
	DecisiveFactors []string                   `json:"decisive_factors"`
	StatComparison  map[string]map[string]uint `json:"stat_comparison"`
}

// matchupFactors scores one side of a matchup against the other. Winner
// fields hold the advantaged combatant's name, or "" for a tie.
type matchupFactors struct {
	speedWinner string
	typeWinner  string
	statWinner  string
	bulkWinner  string
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.Pokemon1 == "" || req.Pokemon2 == "" {
		s.respondError(w, http.StatusBadRequest, "pokemon1 and pokemon2 are required")
		return
	}

	level := req.Level
	if level == 0 {
		level = s.cfg.Battle.DefaultLevel
	}
	if level < arena.MIN_LEVEL || level > arena.MAX_LEVEL {
		s.respondError(w, http.StatusBadRequest, "level must be between 1 and 100")
		return
	}

	species1, err := s.dex.Species(r.Context(), req.Pokemon1)
	if err != nil {
		s.respondDexError(w, err)
		return
	}
	species2, err := s.dex.Species(r.Context(), req.Pokemon2)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, predict(species1, species2, level))
}

// predict compares two species without running a battle: scaled stats,
// typing pressure and bulk, weighted into a win chance for each side.
func predict(species1 *arena.Species, species2 *arena.Species, level uint) predictResponse {
	stats1 := arena.ScaleStats(species1.Stats, level)
	stats2 := arena.ScaleStats(species2.Stats, level)

	factors := analyzeFactors(species1, species2, stats1, stats2)

	score1 := predictionScore(species1.Name, species2.Name, factors)
	score2 := 100 - score1

	winner := species1.Name
	if score2 > score1 {
		winner = species2.Name
	}

	confidence := "low"
	switch diff := absInt(score1 - score2); {
	case diff > 30:
		confidence = "high"
	case diff > 15:
		confidence = "medium"
	}

	return predictResponse{
		Pokemon1: predictSide{
			Name:       species1.Name,
			Types:      typeNames(species1),
			WinChance:  score1,
			Advantages: keyAdvantages(species1.Name, factors),
		},
		Pokemon2: predictSide{
			Name:       species2.Name,
			Types:      typeNames(species2),
			WinChance:  score2,
			Advantages: keyAdvantages(species2.Name, factors),
		},
		PredictedWinner: winner,
		Confidence:      confidence,
		DecisiveFactors: decisiveFactors(factors),
		StatComparison:  statComparison(species1.Name, species2.Name, stats1, stats2),
	}
}

func analyzeFactors(species1 *arena.Species, species2 *arena.Species, stats1 arena.StatBlock, stats2 arena.StatBlock) matchupFactors {
	factors := matchupFactors{}

	factors.speedWinner = pickWinner(species1.Name, species2.Name,
		int(stats1.Speed), int(stats2.Speed))

	// typing pressure: the best multiplier either side's own types can
	// land on the other's defensive typing
	best1 := bestOffense(species1, species2)
	best2 := bestOffense(species2, species1)
	switch {
	case best1 > best2:
		factors.typeWinner = species1.Name
	case best2 > best1:
		factors.typeWinner = species2.Name
	}

	total1 := stats1.Attack + stats1.Def + stats1.SpAttack + stats1.SpDef + stats1.Speed
	total2 := stats2.Attack + stats2.Def + stats2.SpAttack + stats2.SpDef + stats2.Speed
	factors.statWinner = pickWinner(species1.Name, species2.Name, int(total1), int(total2))

	bulk1 := stats1.Hp * (stats1.Def + stats1.SpDef)
	bulk2 := stats2.Hp * (stats2.Def + stats2.SpDef)
	factors.bulkWinner = pickWinner(species1.Name, species2.Name, int(bulk1), int(bulk2))

	return factors
}

func bestOffense(attacker *arena.Species, defender *arena.Species) float64 {
	best := 0.0
	for _, attackType := range attacker.Types() {
		if multiplier := arena.Effectiveness(attackType, defender.Types()); multiplier > best {
			best = multiplier
		}
	}

	return best
}

// predictionScore starts both sides at 50 and shifts by each factor's
// weight: typing 15, speed, raw stats and bulk 10 apiece. Clamped to
// [5, 95] because a stat sheet can't make a battle certain.
func predictionScore(name1 string, name2 string, factors matchupFactors) int {
	score := 50

	score += factorWeight(factors.speedWinner, name1, name2, 10)
	score += factorWeight(factors.typeWinner, name1, name2, 15)
	score += factorWeight(factors.statWinner, name1, name2, 10)
	score += factorWeight(factors.bulkWinner, name1, name2, 10)

	if score < 5 {
		score = 5
	}
	if score > 95 {
		score = 95
	}

	return score
}

func factorWeight(winner string, name1 string, name2 string, weight int) int {
	switch winner {
	case name1:
		return weight
	case name2:
		return -weight
	}

	return 0
}

func keyAdvantages(name string, factors matchupFactors) []string {
	advantages := []string{}

	if factors.speedWinner == name {
		advantages = append(advantages, "speed")
	}
	if factors.typeWinner == name {
		advantages = append(advantages, "type matchup")
	}
	if factors.statWinner == name {
		advantages = append(advantages, "overall stats")
	}
	if factors.bulkWinner == name {
		advantages = append(advantages, "defensive bulk")
	}

	return advantages
}

func decisiveFactors(factors matchupFactors) []string {
	decisive := []string{}

	if factors.typeWinner != "" {
		decisive = append(decisive, "type advantage")
	}
	if factors.speedWinner != "" {
		decisive = append(decisive, "speed advantage")
	}
	if factors.statWinner != "" {
		decisive = append(decisive, "overall stats")
	}

	if len(decisive) == 0 {
		return []string{"even matchup"}
	}

	return decisive
}

func statComparison(name1 string, name2 string, stats1 arena.StatBlock, stats2 arena.StatBlock) map[string]map[string]uint {
	return map[string]map[string]uint{
		"hp":              {name1: stats1.Hp, name2: stats2.Hp},
		"attack":          {name1: stats1.Attack, name2: stats2.Attack},
		"defense":         {name1: stats1.Def, name2: stats2.Def},
		"special_attack":  {name1: stats1.SpAttack, name2: stats2.SpAttack},
		"special_defense": {name1: stats1.SpDef, name2: stats2.SpDef},
		"speed":           {name1: stats1.Speed, name2: stats2.Speed},
	}
}

func typeNames(species *arena.Species) []string {
	names := make([]string, 0, 2)
	for _, t := range species.Types() {
		names = append(names, t.Name)
	}

	return names
}

func pickWinner(name1 string, name2 string, value1 int, value2 int) string {
	switch {
	case value1 > value2:
		return name1
	case value2 > value1:
		return name2
	}

	return ""
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
