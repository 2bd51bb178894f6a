package mastery

import (
	"sort"
)

// Entry is one champion mastery record as sent upstream, most points first.
type Entry struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// View is the display form of a mastery entry.
type View struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Level  int    `json:"level"`
	Points int    `json:"points"`
}

// ChampionResolver maps a champion id to its name and portrait.
type ChampionResolver interface {
	Champion(id int) (string, error)
	ChampionImage(name string) string
}

// Select keeps the first limit entries in upstream order and returns them ordered by points
// ascending, ties kept in upstream order. limit is clamped to the available count; a limit <= 0
// means defaultLimit. An unknown champion fails the whole list.
func Select(entries []Entry, limit, defaultLimit int, champions ChampionResolver) ([]View, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > len(entries) || limit <= 0 {
		limit = len(entries)
	}

	top := entries[:limit]
	out := make([]View, 0, len(top))
	for _, e := range top {
		name, err := champions.Champion(e.ChampionID)
		if err != nil {
			return nil, err
		}
		out = append(out, View{
			Name:   name,
			Image:  champions.ChampionImage(name),
			Level:  e.ChampionLevel,
			Points: e.ChampionPoints,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points < out[j].Points
	})
	return out, nil
}
