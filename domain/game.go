package domain

import "sort"

// Game describes one lottery variant. The catalog is fixed at compile
// time; only the sheet locators are configurable.
type Game struct {
	Type         string `json:"game_type"`
	Name         string `json:"name"`
	MinNumber    int    `json:"min_number"`
	MaxNumber    int    `json:"max_number"`
	NumbersCount int    `json:"numbers_count"`
}

var games = map[string]Game{
	"ultra_lotto_6_58": {Type: "ultra_lotto_6_58", Name: "Ultra Lotto 6/58", MinNumber: 1, MaxNumber: 58, NumbersCount: 6},
	"grand_lotto_6_55": {Type: "grand_lotto_6_55", Name: "Grand Lotto 6/55", MinNumber: 1, MaxNumber: 55, NumbersCount: 6},
	"super_lotto_6_49": {Type: "super_lotto_6_49", Name: "Super Lotto 6/49", MinNumber: 1, MaxNumber: 49, NumbersCount: 6},
	"mega_lotto_6_45":  {Type: "mega_lotto_6_45", Name: "Mega Lotto 6/45", MinNumber: 1, MaxNumber: 45, NumbersCount: 6},
	"lotto_6_42":       {Type: "lotto_6_42", Name: "Lotto 6/42", MinNumber: 1, MaxNumber: 42, NumbersCount: 6},
}

// GameByType looks up a game variant by its identifier.
func GameByType(gameType string) (Game, bool) {
	g, ok := games[gameType]
	return g, ok
}

// AllGames returns the catalog sorted by game type.
func AllGames() []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Type < out[j].Type
	})

	return out
}
