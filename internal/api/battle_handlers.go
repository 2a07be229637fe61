package api

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pokebattle/arena"
)

type battleRequest struct {
	Pokemon1      string   `json:"pokemon1"`
	Pokemon2      string   `json:"pokemon2"`
	Pokemon1Moves []string `json:"pokemon1_moves,omitempty"`
	Pokemon2Moves []string `json:"pokemon2_moves,omitempty"`
	Level         uint     `json:"level,omitempty"`
	Seed          *uint64  `json:"seed,omitempty"`
	MovePolicy    string   `json:"move_policy,omitempty"`
}

type battleResponse struct {
	BattleId   string             `json:"battle_id"`
	Seed       uint64             `json:"seed"`
	Level      uint               `json:"level"`
	MovePolicy string             `json:"move_policy"`
	Result     arena.BattleResult `json:"result"`
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	var req battleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	response, err := s.runBattle(r, req)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, response)
}

// runBattle assembles both sides and plays one seeded battle.
func (s *Server) runBattle(r *http.Request, req battleRequest) (battleResponse, error) {
	if req.Pokemon1 == "" || req.Pokemon2 == "" {
		return battleResponse{}, fmt.Errorf("%w: pokemon1 and pokemon2 are required", arena.ErrInvalidInput)
	}

	level := req.Level
	if level == 0 {
		level = s.cfg.Battle.DefaultLevel
	}

	policy := req.MovePolicy
	if policy == "" {
		policy = s.cfg.Battle.MovePolicy
	}

	first, err := s.dex.BattleSet(r.Context(), req.Pokemon1, req.Pokemon1Moves)
	if err != nil {
		return battleResponse{}, err
	}
	second, err := s.dex.BattleSet(r.Context(), req.Pokemon2, req.Pokemon2Moves)
	if err != nil {
		return battleResponse{}, err
	}

	seed := randomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	battle, err := arena.NewBattle(first, second, level, arena.SeedFromUint64(seed))
	if err != nil {
		return battleResponse{}, err
	}
	battle.SetSelector(arena.SelectorByName(policy))

	result := battle.Run()

	s.logger.Info().
		Str("pokemon1", req.Pokemon1).
		Str("pokemon2", req.Pokemon2).
		Uint64("seed", seed).
		Str("winner", result.Winner).
		Bool("draw", result.Draw).
		Int("turns", result.Turns).
		Msg("battle simulated")

	return battleResponse{
		BattleId:   uuid.NewString(),
		Seed:       seed,
		Level:      level,
		MovePolicy: policy,
		Result:     result,
	}, nil
}

type tournamentRequest struct {
	Pokemon    []string `json:"pokemon"`
	Level      uint     `json:"level,omitempty"`
	Seed       *uint64  `json:"seed,omitempty"`
	MovePolicy string   `json:"move_policy,omitempty"`
}

type tournamentBattle struct {
	BattleNumber int    `json:"battle_number"`
	Pokemon1     string `json:"pokemon1"`
	Pokemon2     string `json:"pokemon2"`
	Winner       string `json:"winner,omitempty"`
	Draw         bool   `json:"draw"`
	Turns        int    `json:"turns"`
}

type tournamentRanking struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

type tournamentResponse struct {
	TournamentId string              `json:"tournament_id"`
	Seed         uint64              `json:"seed"`
	Battles      []tournamentBattle  `json:"battles"`
	Rankings     []tournamentRanking `json:"rankings"`
	Winner       string              `json:"tournament_winner"`
	AverageTurns float64             `json:"average_turns"`
}

// handleTournament plays a round-robin between 2 to 8 species. Every pair
// battles exactly once; pair seeds derive from the tournament seed so the
// whole bracket replays from one number.
func (s *Server) handleTournament(w http.ResponseWriter, r *http.Request) {
	var req tournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if len(req.Pokemon) < 2 {
		s.respondError(w, http.StatusBadRequest, "a tournament needs at least 2 pokemon")
		return
	}
	if len(req.Pokemon) > 8 {
		s.respondError(w, http.StatusBadRequest, "a tournament allows at most 8 pokemon")
		return
	}

	level := req.Level
	if level == 0 {
		level = s.cfg.Battle.DefaultLevel
	}
	policy := req.MovePolicy
	if policy == "" {
		policy = s.cfg.Battle.MovePolicy
	}
	baseSeed := randomSeed()
	if req.Seed != nil {
		baseSeed = *req.Seed
	}

	// fetch every battle set once up front; a single missing species fails
	// the whole tournament before any battle runs
	sets := make([]arena.CombatantSpec, len(req.Pokemon))
	for i, name := range req.Pokemon {
		set, err := s.dex.BattleSet(r.Context(), name, nil)
		if err != nil {
			s.respondDexError(w, err)
			return
		}
		sets[i] = set
	}

	type pairing struct{ i, j int }
	var pairs []pairing
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			pairs = append(pairs, pairing{i, j})
		}
	}

	battles := make([]tournamentBattle, len(pairs))
	errs := make([]error, len(pairs))

	var wg sync.WaitGroup
	for idx, pair := range pairs {
		wg.Add(1)
		go func(idx int, pair pairing) {
			defer wg.Done()

			battle, err := arena.NewBattle(sets[pair.i], sets[pair.j], level,
				arena.SeedFromUint64(baseSeed+uint64(idx)))
			if err != nil {
				errs[idx] = err
				return
			}
			battle.SetSelector(arena.SelectorByName(policy))

			result := battle.Run()
			battles[idx] = tournamentBattle{
				BattleNumber: idx + 1,
				Pokemon1:     sets[pair.i].Species.Name,
				Pokemon2:     sets[pair.j].Species.Name,
				Winner:       result.Winner,
				Draw:         result.Draw,
				Turns:        result.Turns,
			}
		}(idx, pair)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.respondDexError(w, err)
			return
		}
	}

	response := tournamentResponse{
		TournamentId: uuid.NewString(),
		Seed:         baseSeed,
		Battles:      battles,
		Rankings:     rankStandings(sets, battles),
	}
	if len(response.Rankings) > 0 {
		response.Winner = response.Rankings[0].Name
	}

	totalTurns := 0
	for _, battle := range battles {
		totalTurns += battle.Turns
	}
	response.AverageTurns = float64(totalTurns) / float64(len(battles))

	s.respondJSON(w, http.StatusOK, response)
}

func rankStandings(sets []arena.CombatantSpec, battles []tournamentBattle) []tournamentRanking {
	standings := make(map[string]*tournamentRanking, len(sets))
	order := make([]string, 0, len(sets))
	for _, set := range sets {
		name := set.Species.Name
		if _, seen := standings[name]; !seen {
			standings[name] = &tournamentRanking{Name: name}
			order = append(order, name)
		}
	}

	for _, battle := range battles {
		if battle.Draw {
			standings[battle.Pokemon1].Draws++
			standings[battle.Pokemon2].Draws++
			continue
		}

		standings[battle.Winner].Wins++
		if battle.Winner == battle.Pokemon1 {
			standings[battle.Pokemon2].Losses++
		} else {
			standings[battle.Pokemon1].Losses++
		}
	}

	rankings := make([]tournamentRanking, 0, len(order))
	for _, name := range order {
		rankings = append(rankings, *standings[name])
	}

	// wins descending, name ascending for equal records
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Wins != rankings[j].Wins {
			return rankings[i].Wins > rankings[j].Wins
		}
		return rankings[i].Name < rankings[j].Name
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return rankings
}

// streamMessage is the websocket envelope: one message per turn record,
// then a final message carrying the full result.
type streamMessage struct {
	Type   string              `json:"type"`
	Record *arena.TurnRecord   `json:"record,omitempty"`
	Result *arena.BattleResult `json:"result,omitempty"`
}

// handleBattleStream runs one battle and replays its log over a websocket,
// record by record, closing with the terminal result.
func (s *Server) handleBattleStream(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := battleRequest{
		Pokemon1: query.Get("pokemon1"),
		Pokemon2: query.Get("pokemon2"),
		Level:    uint(queryInt(r, "level", 0)),
	}
	if raw := query.Get("seed"); raw != "" {
		var seed uint64
		if _, err := fmt.Sscanf(raw, "%d", &seed); err == nil {
			req.Seed = &seed
		}
	}

	response, err := s.runBattle(r, req)
	if err != nil {
		s.respondDexError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for i := range response.Result.Records {
		if err := conn.WriteJSON(streamMessage{Type: "record", Record: &response.Result.Records[i]}); err != nil {
			s.logger.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}

	if err := conn.WriteJSON(streamMessage{Type: "result", Result: &response.Result}); err != nil {
		s.logger.Warn().Err(err).Msg("websocket write failed")
		return
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func randomSeed() uint64 {
	var raw [8]byte
	if _, err := cryptoRand.Read(raw[:]); err != nil {
		panic(err)
	}

	return binary.LittleEndian.Uint64(raw[:])
}
