package match

import (
	"fmt"
	"testing"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
)

var testChampions = map[int]string{
	1:  "Annie",
	2:  "Olaf",
	3:  "Galio",
	9:  "FiddleSticks",
	11: "MasterYi",
}

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()

	static, err := catalog.LoadStatic("")
	if err != nil {
		t.Fatalf("load static catalog: %v", err)
	}
	table, err := catalog.NewVersionTable("14.20.1", testChampions)
	if err != nil {
		t.Fatalf("new version table: %v", err)
	}
	return NewNormalizer(static, table)
}

func puuidAt(i int) string {
	return fmt.Sprintf("puuid-%d", i)
}

// newRaw builds an aligned ten-player lobby. Team 100 holds seats 0-4.
func newRaw(queueID int) *Raw {
	raw := &Raw{
		Metadata: Metadata{MatchID: "EUW1_1"},
		Info: Info{
			GameCreation: 1700000000000,
			GameDuration: 1800,
			GameMode:     "CLASSIC",
			QueueID:      queueID,
		},
	}
	positions := []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}
	for i := 0; i < 10; i++ {
		teamID := 100
		if i >= 5 {
			teamID = 200
		}
		raw.Metadata.Participants = append(raw.Metadata.Participants, puuidAt(i))
		raw.Info.Participants = append(raw.Info.Participants, Participant{
			PUUID:                puuidAt(i),
			SummonerName:         fmt.Sprintf("summoner%d", i),
			RiotIDGameName:       fmt.Sprintf("player%d", i),
			RiotIDTagline:        "EUW",
			TeamID:               teamID,
			TeamPosition:         positions[i%5],
			ChampionID:           1,
			ChampionName:         "Annie",
			ChampLevel:           18,
			Win:                  teamID == 100,
			Kills:                i + 1,
			Deaths:               2,
			Assists:              3,
			GoldEarned:           12000,
			NeutralMinionsKilled: 10,
			TotalMinionsKilled:   170,
			VisionScore:          30,
			Item0:                3089,
			Item6:                3340,
			Summoner1ID:          4,
			Summoner2ID:          14,
			Perks: Perks{Styles: []PerkStyle{
				{Style: 8100, Selections: []PerkSelection{{Perk: 8112}}},
				{Style: 8000, Selections: []PerkSelection{{Perk: 8009}}},
			}},
		})
	}
	raw.Info.Teams = []Team{
		{
			TeamID: 100,
			Win:    true,
			Bans:   []Ban{{ChampionID: 2, PickTurn: 1}, {ChampionID: noBan, PickTurn: 2}},
			Objectives: map[string]Objective{
				"tower": {First: true, Kills: 9},
				"baron": {First: false, Kills: 1},
			},
		},
		{
			TeamID: 200,
			Bans:   []Ban{{ChampionID: 3, PickTurn: 6}},
		},
	}
	return raw
}

// newArenaRaw turns the lobby into an arena match. Arena pages carry a single rune style.
func newArenaRaw() *Raw {
	raw := newRaw(FreeForAllQueueID)
	raw.Info.GameMode = "CHERRY"
	for i := range raw.Info.Participants {
		p := &raw.Info.Participants[i]
		p.Perks = Perks{Styles: []PerkStyle{
			{Style: 8100, Selections: []PerkSelection{{Perk: 8112}}},
		}}
		p.PlayerAugment1 = 1
		p.PlayerAugment2 = 0
		p.PlayerAugment3 = 2
		p.Placement = i%8 + 1
		p.SubteamPlacement = i%4 + 1
	}
	raw.Info.Teams = nil
	return raw
}
