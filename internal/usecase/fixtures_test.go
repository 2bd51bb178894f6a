package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/domain/match"
	"github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/platform/logging"
)

func newFrontDoor(t *testing.T) *cache.FrontDoor {
	t.Helper()

	fd, err := cache.NewFrontDoor(cache.NewMemoryBackend(time.Hour), cache.Options{
		Enabled:      true,
		WriteWorkers: 2,
		Logger:       logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("new front door: %v", err)
	}
	t.Cleanup(fd.Close)
	return fd
}

func newCatalogs(t *testing.T) (*catalog.Static, *catalog.VersionTable) {
	t.Helper()

	static, err := catalog.LoadStatic("")
	if err != nil {
		t.Fatalf("load static catalog: %v", err)
	}
	table, err := catalog.NewVersionTable("14.20.1", map[int]string{1: "Annie", 2: "Olaf", 62: "MonkeyKing"})
	if err != nil {
		t.Fatalf("new version table: %v", err)
	}
	return static, table
}

func puuidAt(i int) string {
	return fmt.Sprintf("puuid-%d", i)
}

// matchPayload builds a valid ten-player match. Team 100 (seats 0-4) wins.
func matchPayload(t *testing.T, matchID string, queueID int) []byte {
	t.Helper()
	return marshalRaw(t, newRaw(matchID, queueID))
}

func newRaw(matchID string, queueID int) *match.Raw {
	raw := &match.Raw{
		Metadata: match.Metadata{MatchID: matchID},
		Info: match.Info{
			GameCreation: 1700000000000,
			GameDuration: 1200,
			GameMode:     "CLASSIC",
			QueueID:      queueID,
		},
	}
	for i := 0; i < 10; i++ {
		teamID := 100
		if i >= 5 {
			teamID = 200
		}
		raw.Metadata.Participants = append(raw.Metadata.Participants, puuidAt(i))
		raw.Info.Participants = append(raw.Info.Participants, match.Participant{
			PUUID:          puuidAt(i),
			SummonerName:   fmt.Sprintf("summoner%d", i),
			RiotIDGameName: fmt.Sprintf("player%d", i),
			RiotIDTagline:  "EUW",
			TeamID:         teamID,
			TeamPosition:   "MIDDLE",
			ChampionID:     1,
			ChampionName:   "Annie",
			Win:            teamID == 100,
			Kills:          2,
			Deaths:         1,
			Assists:        2,
			GoldEarned:     8000,
			Perks: match.Perks{Styles: []match.PerkStyle{
				{Style: 8100, Selections: []match.PerkSelection{{Perk: 8112}}},
				{Style: 8000, Selections: []match.PerkSelection{}},
			}},
		})
	}
	raw.Info.Teams = []match.Team{
		{TeamID: 100, Win: true, Bans: []match.Ban{{ChampionID: 2, PickTurn: 1}}, Objectives: map[string]match.Objective{}},
		{TeamID: 200, Bans: []match.Ban{}, Objectives: map[string]match.Objective{}},
	}
	return raw
}

func marshalRaw(t *testing.T, raw *match.Raw) []byte {
	t.Helper()

	payload, err := sonic.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal match: %v", err)
	}
	return payload
}
