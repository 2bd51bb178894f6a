package match

import (
	"math"
	"sort"
)

// Positions lists the lanes reported in StatsByPosition, in display order.
var Positions = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}

const minFriendGames = 2

type Summary struct {
	GamesUsed       []string        `json:"gamesUsed"`
	Friends         []Friend        `json:"friends"`
	StatsByChamp    []ChampSummary  `json:"statsByChamp"`
	StatsByPosition []PositionCount `json:"statsByPosition"`
}

type Friend struct {
	Name  string `json:"name"`
	Games int    `json:"games"`
	Wins  int    `json:"wins"`
}

type ChampSummary struct {
	ChampionName      string  `json:"championName"`
	Games             int     `json:"games"`
	Wins              int     `json:"wins"`
	KDA               float64 `json:"kda"`
	GoldMin           float64 `json:"goldMin"`
	CSMin             float64 `json:"csMin"`
	VisionMin         float64 `json:"visionMin"`
	KillParticipation float64 `json:"killParticipation"`
	DamageDealt       float64 `json:"damageDealt"`
	DamageTaken       float64 `json:"damageTaken"`
}

type PositionCount struct {
	Position string `json:"position"`
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`
}

type champTotals struct {
	games, wins                        int
	kda, goldMin, csMin, visionMin, kp float64
	damageDealt, damageTaken           float64
}

// Summarize aggregates games already normalized for puuid. champsLimit <= 0 keeps every champion.
func Summarize(games []Game, puuid string, champsLimit int) Summary {
	out := Summary{
		GamesUsed:       make([]string, 0, len(games)),
		Friends:         []Friend{},
		StatsByChamp:    []ChampSummary{},
		StatsByPosition: make([]PositionCount, 0, len(Positions)),
	}

	champs := map[string]*champTotals{}
	positions := map[string]*PositionCount{}
	for _, pos := range Positions {
		positions[pos] = &PositionCount{Position: pos}
	}
	friends := map[string]*Friend{}

	for _, g := range games {
		out.GamesUsed = append(out.GamesUsed, g.MatchID)

		c := champs[g.ChampionName]
		if c == nil {
			c = &champTotals{}
			champs[g.ChampionName] = c
		}
		c.games++
		if g.Win {
			c.wins++
		}
		c.kda += kda(g.Kills, g.Deaths, g.Assists)
		minutes := float64(g.GameDuration) / 60
		if minutes > 0 {
			c.goldMin += float64(g.Gold) / minutes
			c.csMin += float64(g.CS) / minutes
			c.visionMin += float64(g.VisionScore) / minutes
		}
		c.kp += g.KillParticipation
		c.damageDealt += float64(g.DamageDealt)
		c.damageTaken += float64(g.DamageTaken)

		if pc, ok := positions[g.TeamPosition]; ok {
			pc.Games++
			if g.Win {
				pc.Wins++
			}
		}

		teamID := -1
		for _, r := range g.Participants {
			if r.PUUID == puuid {
				teamID = r.TeamID
				break
			}
		}
		for _, r := range g.Participants {
			if r.PUUID == puuid || r.TeamID != teamID {
				continue
			}
			name := r.RiotIDGameName
			if r.RiotIDTagLine != "" {
				name += "#" + r.RiotIDTagLine
			}
			f := friends[name]
			if f == nil {
				f = &Friend{Name: name}
				friends[name] = f
			}
			f.Games++
			if g.Win {
				f.Wins++
			}
		}
	}

	for name, c := range champs {
		n := float64(c.games)
		out.StatsByChamp = append(out.StatsByChamp, ChampSummary{
			ChampionName:      name,
			Games:             c.games,
			Wins:              c.wins,
			KDA:               round2(c.kda / n),
			GoldMin:           round2(c.goldMin / n),
			CSMin:             round2(c.csMin / n),
			VisionMin:         round2(c.visionMin / n),
			KillParticipation: round2(c.kp / n),
			DamageDealt:       round2(c.damageDealt / n),
			DamageTaken:       round2(c.damageTaken / n),
		})
	}
	sort.Slice(out.StatsByChamp, func(i, j int) bool {
		a, b := out.StatsByChamp[i], out.StatsByChamp[j]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.ChampionName < b.ChampionName
	})
	if champsLimit > 0 && len(out.StatsByChamp) > champsLimit {
		out.StatsByChamp = out.StatsByChamp[:champsLimit]
	}

	for _, pos := range Positions {
		out.StatsByPosition = append(out.StatsByPosition, *positions[pos])
	}

	for _, f := range friends {
		if f.Games >= minFriendGames {
			out.Friends = append(out.Friends, *f)
		}
	}
	sort.Slice(out.Friends, func(i, j int) bool {
		if out.Friends[i].Games != out.Friends[j].Games {
			return out.Friends[i].Games > out.Friends[j].Games
		}
		return out.Friends[i].Name < out.Friends[j].Name
	})

	return out
}

// kda treats a deathless game as one death.
func kda(kills, deaths, assists int) float64 {
	if deaths < 1 {
		deaths = 1
	}
	return float64(kills+assists) / float64(deaths)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
